package am

import "github.com/teranos/qresp/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return errors.Newf("log.verbosity must be >= 0, got %d", c.Log.Verbosity)
	}

	// 0 = grow on demand, negative = invalid
	if c.Collector.ExpectedResponses < 0 {
		return errors.Newf("collector.expected_responses must be >= 0, got %d", c.Collector.ExpectedResponses)
	}

	// At least one producer must feed the pump
	if c.Pump.Producers <= 0 {
		return errors.WithHint(
			errors.Newf("pump.producers must be > 0, got %d", c.Pump.Producers),
			"use pump.producers = 1 for strictly sequential replay",
		)
	}
	if c.Pump.Buffer < 0 {
		return errors.Newf("pump.buffer must be >= 0, got %d", c.Pump.Buffer)
	}

	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path cannot be empty when journal is enabled")
	}

	if c.Reply.MaxCompletionItems < 0 {
		return errors.Newf("reply.max_completion_items must be >= 0, got %d", c.Reply.MaxCompletionItems)
	}

	return nil
}
