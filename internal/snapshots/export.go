package snapshots

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
)

// ExportPage writes the page as indented JSON.
func ExportPage(w io.Writer, page aggregate.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return nil
}

// ExportFile writes the page to path, replacing any previous export atomically.
func ExportFile(path string, page aggregate.Page) error {
	if path == "" {
		return fmt.Errorf("export path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}
