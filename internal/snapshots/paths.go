package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	pagesDir     = "pages"
	manifestFile = "manifest.json"
)

// PageSnapshotPath builds the path to the page snapshot for a date (YYYY-MM-DD).
func PageSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, pagesDir, fmt.Sprintf("%s.json", date))
}

// ManifestPath builds the path to the manifest under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}
