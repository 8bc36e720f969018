package snapshots

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/domain/leagues"
)

var fixedNow = time.Date(2024, 10, 20, 15, 0, 0, 0, time.UTC)

func newTestWriter(t *testing.T, retentionDays int) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retentionDays)
	w.now = func() time.Time { return fixedNow }
	return w
}

func pageAt(t *testing.T, id string, at time.Time) aggregate.Page {
	t.Helper()
	nba, ok := leagues.Lookup("nba")
	if !ok {
		t.Fatalf("nba missing from registry")
	}
	return aggregate.Page{
		RefreshID:   id,
		GeneratedAt: at,
		Favorites:   []string{"nba:13"},
		Leagues:     []aggregate.LeagueView{{League: nba, Failed: []string{"teams"}}},
	}
}

func writePage(t *testing.T, w *Writer, page aggregate.Page) {
	t.Helper()
	if err := w.WritePageSnapshot(page); err != nil {
		t.Fatalf("write snapshot %s: %v", page.RefreshID, err)
	}
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if _, err := os.Stat(PageSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
