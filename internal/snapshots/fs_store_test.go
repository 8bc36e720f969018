package snapshots

import (
	"errors"
	"os"
	"testing"
)

func TestFSStoreLoadLatest(t *testing.T) {
	w := newTestWriter(t, 30)
	writePage(t, w, pageAt(t, "earlier", fixedNow.AddDate(0, 0, -2)))
	writePage(t, w, pageAt(t, "today", fixedNow))

	page, err := NewFSStore(w.BasePath()).LoadLatest()
	if err != nil {
		t.Fatalf("load latest: %v", err)
	}
	if page.RefreshID != "today" || len(page.Leagues) != 1 || page.Leagues[0].League.ID != "nba" {
		t.Fatalf("unexpected page %+v", page)
	}
	if len(page.Leagues[0].Failed) != 1 || page.Favorites[0] != "nba:13" {
		t.Fatalf("expected failures and favorites to round trip, got %+v", page)
	}
}

func TestFSStoreMissingSnapshot(t *testing.T) {
	s := NewFSStore(t.TempDir())
	if _, err := s.LoadLatest(); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot without manifest, got %v", err)
	}
	if _, err := s.LoadPage("2024-01-01"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot for missing date, got %v", err)
	}
	if _, err := s.LoadPage(""); err == nil {
		t.Fatalf("expected error for empty date")
	}
}

func TestFSStoreCorruptManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ManifestPath(dir), []byte("{"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := NewFSStore(dir).Manifest()
	if err == nil || errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestFSStoreNil(t *testing.T) {
	var s *FSStore
	if _, err := s.LoadPage("2024-01-01"); err == nil {
		t.Fatalf("expected error for nil store")
	}
	if _, err := s.Manifest(); err == nil {
		t.Fatalf("expected error for nil store")
	}
}
