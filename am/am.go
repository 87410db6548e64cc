// Package am holds qresp configuration ("I am").
//
// Configuration is merged from TOML files and QRESP_* environment variables by viper;
// see load.go for precedence.
package am

// Config represents the qresp configuration
type Config struct {
	Log       LogConfig       `mapstructure:"log" toml:"log"`
	Trace     TraceConfig     `mapstructure:"trace" toml:"trace"`
	Collector CollectorConfig `mapstructure:"collector" toml:"collector"`
	Pump      PumpConfig      `mapstructure:"pump" toml:"pump"`
	Journal   JournalConfig   `mapstructure:"journal" toml:"journal"`
	Reply     ReplyConfig     `mapstructure:"reply" toml:"reply"`
}

// LogConfig configures the global zap logger
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`           // Structured JSON output on stderr
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"` // Same scale as -v flags; flags add to it
}

// TraceConfig configures per-message collector tracing
type TraceConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"` // Emit debug lines for every ingested/skipped message
}

// CollectorConfig configures response buffering
type CollectorConfig struct {
	Synchronized      bool `mapstructure:"synchronized" toml:"synchronized"`             // Guard the buffer with a mutex
	ExpectedResponses int  `mapstructure:"expected_responses" toml:"expected_responses"` // Preallocated buffer capacity (0 = grow on demand)
}

// PumpConfig configures how replayed batches reach the collector
type PumpConfig struct {
	Producers int `mapstructure:"producers" toml:"producers"` // Concurrent producer goroutines (default: 4)
	Buffer    int `mapstructure:"buffer" toml:"buffer"`       // Channel buffer in batches (0 = unbuffered)
}

// JournalConfig configures the SQLite session journal
type JournalConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`
}

// ReplyConfig configures LSP reply rendering
type ReplyConfig struct {
	Markdown           bool `mapstructure:"markdown" toml:"markdown"`
	MaxCompletionItems int  `mapstructure:"max_completion_items" toml:"max_completion_items"` // 0 = no cap
}

// File and directory constants
const (
	EnvPrefix             = "QRESP"
	ConfigFileName        = "am.toml"
	UserConfigDir         = ".qresp"
	SystemConfigPath      = "/etc/qresp/am.toml"
	DefaultDirPermissions = 0755
	DefaultFilePerms      = 0644
)
