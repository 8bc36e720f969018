package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

const manifestVersion = 1

// Manifest tracks which page snapshots exist and when the newest was written.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Pages       PagesMeta `json:"pages"`
}

type Retention struct {
	PagesDays int `json:"pagesDays"`
}

type PagesMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	LastRefreshID string    `json:"lastRefreshId,omitempty"`
}

// Latest returns the newest snapshot date listed, if any.
func (m Manifest) Latest() (string, bool) {
	if len(m.Pages.Dates) == 0 {
		return "", false
	}
	return m.Pages.Dates[len(m.Pages.Dates)-1], true
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     manifestVersion,
		GeneratedAt: now,
		Retention:   Retention{PagesDays: retentionDays},
		Pages:       PagesMeta{Dates: []string{}},
	}
}

func readManifest(path string, retentionDays int, now time.Time) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retentionDays, now), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retentionDays, now), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
