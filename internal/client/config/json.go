package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/avelichko/snipcli/internal/flagx"
	"github.com/avelichko/snipcli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	BaseURL          string         `json:"base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	DebounceInterval timex.Duration `json:"debounce_interval"`
	PageSize         int            `json:"page_size"`
	DatabasePath     string         `json:"database_path"`
	KeyPath          string         `json:"key_path"`
	ExportDir        string         `json:"export_dir"`
}

// parseJson overlays Config with values loaded from a JSON file found via the
// -c/-config flags. Missing file path means no overlay. Zero values in the
// JSON leave the current Config value untouched.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DebounceInterval.Duration != 0 {
		cfg.DebounceInterval = time.Duration(jc.DebounceInterval.Duration)
	}
	if jc.PageSize != 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyPath != "" {
		cfg.KeyPath = jc.KeyPath
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
}
