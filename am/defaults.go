package am

import "github.com/spf13/viper"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)

	v.SetDefault("trace.enabled", false)

	v.SetDefault("collector.synchronized", false)
	v.SetDefault("collector.expected_responses", 16) // Responses overlapping one location, not file size

	v.SetDefault("pump.producers", 4)
	v.SetDefault("pump.buffer", 0)

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.path", "qresp.db")

	v.SetDefault("reply.markdown", true)
	v.SetDefault("reply.max_completion_items", 100)
}

// newIsolatedViper returns a viper instance carrying only defaults, without files or env
func newIsolatedViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}
