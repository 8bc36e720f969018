package testutil

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/snapshots"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir whose clock is fixed at SampleTime.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention).WithClock(NowAt(SampleTime))
}

// WriteSnapshot writes the sample page for refreshID and returns it.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, refreshID string) aggregate.Page {
	t.Helper()
	page, err := writeSnapshotPayload(w, refreshID)
	if err != nil {
		t.Fatalf("failed to write snapshot %s: %v", refreshID, err)
	}
	return page
}

func writeSnapshotPayload(w *snapshots.Writer, refreshID string) (aggregate.Page, error) {
	if w == nil {
		return aggregate.Page{}, errors.New("nil snapshot writer")
	}
	page := SamplePage(refreshID)
	return page, w.WritePageSnapshot(page)
}

// SnapshotPath returns the expected file path for the snapshot of a page.
func SnapshotPath(w *snapshots.Writer, page aggregate.Page) string {
	return snapshots.PageSnapshotPath(w.BasePath(), timeutil.FormatDate(page.GeneratedAt.UTC()))
}
