// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Default configuration constants.
const (
	defaultAddr           = ":9080"
	defaultDataSource     = "data/players.json"
	defaultFetchTimeoutMS = 30_000
	defaultMaxAgeMinutes  = 60
	defaultSnapshotKey    = "chestboard:snapshot"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataSource identifies where the raw dataset lives: an http(s) URL
	// or a local file path.
	DataSource string `koanf:"data_source"`

	// FetchTimeoutMS bounds a single dataset fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// SnapshotMaxAgeMin is the staleness window for a persisted snapshot,
	// in minutes. A snapshot at exactly this age is already stale.
	SnapshotMaxAgeMin int `koanf:"snapshot_max_age_min"`

	// RedisAddr enables the Redis snapshot store when non-empty.
	// Empty keeps snapshots in process memory only.
	RedisAddr string `koanf:"redis_addr"`

	// SnapshotKey is the key the snapshot is persisted under.
	SnapshotKey string `koanf:"snapshot_key"`

	// ReloadOnStart triggers an initial dataset load when no usable
	// persisted snapshot exists.
	ReloadOnStart bool `koanf:"reload_on_start"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              defaultAddr,
		DataSource:        defaultDataSource,
		FetchTimeoutMS:    defaultFetchTimeoutMS,
		SnapshotMaxAgeMin: defaultMaxAgeMinutes,
		RedisAddr:         "",
		SnapshotKey:       defaultSnapshotKey,
		ReloadOnStart:     true,
	}
}
