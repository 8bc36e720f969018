package config

// SnapshotConfig controls on-disk page snapshots.
type SnapshotConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Folder        string `yaml:"folder"`
	RetentionDays int    `yaml:"retention_days"`
}

func defaultSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       true,
		Folder:        defaultSnapshotFolder,
		RetentionDays: defaultSnapshotRetention,
	}
}

func (s SnapshotConfig) fromEnv() SnapshotConfig {
	s.Enabled = boolEnvOrDefault(envSnapshotsOn, s.Enabled)
	s.Folder = envOrDefault(envSnapshotFolder, s.Folder)
	s.RetentionDays = intEnvOrDefault(envSnapshotRetention, s.RetentionDays)
	return s
}
