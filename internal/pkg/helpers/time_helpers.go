package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, falling back to the given default
// when the string is empty or malformed. Uses the global logger since config
// parsing may run before the application logger is configured.
func ParseDuration(raw string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Err(err).Str("value", raw).Dur("fallback", fallback).Msg("Invalid duration, using fallback")
		return fallback
	}
	return duration
}
