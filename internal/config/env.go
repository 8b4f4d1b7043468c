package config

import (
	"os"
	"strconv"
)

// EnvLocalOnly is the environment switch that forces local-only mode. It
// exists for managed installs where flags are not practical; any truthy
// value ("1", "true", "TRUE") engages the force.
const EnvLocalOnly = "LIFEVAULT_LOCAL_ONLY"

// parseEnv overlays Config with environment values. Only the local-only
// force is environment-driven; everything else comes from JSON or flags.
func parseEnv(cfg *Config) {
	v, ok := os.LookupEnv(EnvLocalOnly)
	if !ok {
		return
	}
	if forced, err := strconv.ParseBool(v); err == nil {
		cfg.ForceLocalOnly = forced
	}
}
