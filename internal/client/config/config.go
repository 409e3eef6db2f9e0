package config

import "time"

// Config holds runtime settings for the snipcli client.
//
// Fields:
//   - BaseURL: scheme://host:port of the SnipURL backend.
//   - RequestTimeout: upper bound applied to every gateway call.
//   - DebounceInterval: quiet period before a search edit becomes effective.
//   - PageSize: fixed page size for the URL list view.
//   - DatabasePath: sqlite file holding the persisted credential slot.
//   - KeyPath: machine-local key file protecting the credential slot.
//   - ExportDir: directory (under cwd) for analytics export files.
type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	DebounceInterval time.Duration
	PageSize         int
	DatabasePath     string
	KeyPath          string
	ExportDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
	c.DebounceInterval = 500 * time.Millisecond
	c.PageSize = 20
	c.DatabasePath = "snipcli.db"
	c.KeyPath = "snipcli.key"
	c.ExportDir = "exports"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
