package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/preston-bernstein/sports-page-service/internal/aggregate"
)

// ErrNoSnapshot is returned when no page snapshot has been written yet.
var ErrNoSnapshot = errors.New("no page snapshot")

// Store defines how page snapshots are loaded.
type Store interface {
	LoadPage(date string) (aggregate.Page, error)
	LoadLatest() (aggregate.Page, error)
}

// FSStore loads page snapshots written by Writer.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadPage reads the snapshot for a date (YYYY-MM-DD).
func (s *FSStore) LoadPage(date string) (aggregate.Page, error) {
	if s == nil {
		return aggregate.Page{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return aggregate.Page{}, errors.New("snapshot date required")
	}
	var page aggregate.Page
	if err := decodeFile(PageSnapshotPath(s.basePath, date), &page); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return aggregate.Page{}, fmt.Errorf("%w for %s", ErrNoSnapshot, date)
		}
		return aggregate.Page{}, err
	}
	return page, nil
}

// LoadLatest reads the newest snapshot named by the manifest.
func (s *FSStore) LoadLatest() (aggregate.Page, error) {
	m, err := s.Manifest()
	if err != nil {
		return aggregate.Page{}, err
	}
	date, ok := m.Latest()
	if !ok {
		return aggregate.Page{}, ErrNoSnapshot
	}
	return s.LoadPage(date)
}

// Manifest reads the manifest. A missing manifest is ErrNoSnapshot.
func (s *FSStore) Manifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	m, err := readManifest(ManifestPath(s.basePath), 0, time.Time{})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, ErrNoSnapshot
		}
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	return m, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
