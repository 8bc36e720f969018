package snapshots

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
)

func TestExportPageWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportPage(&buf, pageAt(t, "r1", fixedNow)); err != nil {
		t.Fatalf("export: %v", err)
	}
	var decoded aggregate.Page
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if decoded.RefreshID != "r1" {
		t.Fatalf("unexpected refresh id %q", decoded.RefreshID)
	}
}

func TestExportFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "page.json")
	if err := ExportFile(path, pageAt(t, "r2", fixedNow)); err != nil {
		t.Fatalf("export file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Contains(data, []byte(`"refreshId": "r2"`)) {
		t.Fatalf("expected refresh id in export, got %s", data)
	}
	if _, err := os.Stat(path + ".tmp"); err == nil {
		t.Fatalf("expected temp file to be renamed away")
	}
}

func TestExportFileRequiresPath(t *testing.T) {
	if err := ExportFile("", aggregate.Page{}); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
