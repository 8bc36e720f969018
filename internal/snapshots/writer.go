package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
	"github.com/preston-bernstein/sports-page-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists page snapshots, one file per day, with a manifest and rolling retention.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath. Non-positive retention falls back to 14 days.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock retention is measured against.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WritePageSnapshot writes the page under the UTC date it was generated and prunes expired days.
// A later page for the same day replaces the earlier one.
func (w *Writer) WritePageSnapshot(page aggregate.Page) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if page.GeneratedAt.IsZero() {
		return errors.New("page has no generation time")
	}
	date := timeutil.FormatDate(page.GeneratedAt.UTC())
	target := PageSnapshotPath(w.basePath, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}
	if existing, err := os.ReadFile(target); err != nil || !bytes.Equal(existing, data) {
		if err := writeAtomic(target, data); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
	return w.updateManifest(date, page.RefreshID)
}

func (w *Writer) updateManifest(date, refreshID string) error {
	now := w.now()
	m, _ := readManifest(ManifestPath(w.basePath), w.retentionDays, now)

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}

	m.Version = manifestVersion
	m.Pages.Dates = w.prune(dates, now)
	m.Pages.LastRefreshed = now
	m.Pages.LastRefreshID = refreshID
	m.Retention.PagesDays = w.retentionDays
	return writeManifest(w.basePath, m, now)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, pagesDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}

// prune deletes snapshots older than the retention window. Names that are not dates are kept.
func (w *Writer) prune(dates []string, now time.Time) []string {
	cutoff := timeutil.StartOfDay(now, time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(PageSnapshotPath(w.basePath, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
