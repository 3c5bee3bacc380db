package config

import (
	"fmt"
	"strings"
)

// Environment variables that override file settings.
const (
	EnvFile     = "ABBREV_FILE"
	EnvEnabled  = "ABBREV_ENABLED"
	EnvWatch    = "ABBREV_WATCH"
	EnvScript   = "ABBREV_SCRIPT"
	EnvLogLevel = "ABBREV_LOG_LEVEL"
	EnvLogFile  = "ABBREV_LOG_FILE"
)

// ApplyEnv overlays environment variables onto cfg.
// Empty string values are treated as valid values, not as unset.
func ApplyEnv(cfg *Config, lookup LookupEnvFunc) error {
	if lookup == nil {
		return nil
	}

	strs := map[string]*string{
		EnvFile:     &cfg.Abbrev.File,
		EnvScript:   &cfg.Abbrev.Script,
		EnvLogLevel: &cfg.Logging.Level,
		EnvLogFile:  &cfg.Logging.File,
	}
	for env, dst := range strs {
		if v, ok := lookup(env); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		EnvEnabled: &cfg.Abbrev.Enabled,
		EnvWatch:   &cfg.Abbrev.Watch,
	}
	for env, dst := range bools {
		v, ok := lookup(env)
		if !ok {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*dst = b
	}
	return nil
}

// parseBool accepts the spellings people put in shell profiles.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0", "":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidEnv, s)
}
