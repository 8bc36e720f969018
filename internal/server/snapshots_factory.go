package server

import (
	"github.com/preston-bernstein/sports-page-service/internal/config"
	"github.com/preston-bernstein/sports-page-service/internal/poller"
	"github.com/preston-bernstein/sports-page-service/internal/snapshots"
)

// snapshotComponents are left nil when snapshots are disabled.
type snapshotComponents struct {
	store  snapshots.Store
	writer poller.SnapshotWriter
}

func buildSnapshots(cfg config.Config) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Folder == "" {
		return snapshotComponents{}
	}
	basePath := cfg.Snapshots.Folder
	return snapshotComponents{
		store:  snapshots.NewFSStore(basePath),
		writer: snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays),
	}
}
