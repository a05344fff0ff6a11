package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ValidateConfig checks loaded configuration values and returns an
// error describing every invalid setting. Call it after Load.
func ValidateConfig() error {
	var errs []string

	for _, key := range []string{"iterations", "rounds"} {
		if viper.IsSet(key) {
			if v := viper.GetInt(key); v <= 0 {
				errs = append(errs, fmt.Sprintf("%s must be positive, got: %d", key, v))
			}
		}
	}
	if viper.IsSet("warmup_iterations") {
		if v := viper.GetInt("warmup_iterations"); v < 0 {
			errs = append(errs, fmt.Sprintf("warmup_iterations must not be negative, got: %d", v))
		}
	}

	minTime := durationSetting("min_time")
	maxTime := durationSetting("max_time")
	if minTime < 0 {
		errs = append(errs, fmt.Sprintf("min_time must be positive, got: %v", minTime))
	}
	if maxTime < 0 {
		errs = append(errs, fmt.Sprintf("max_time must be positive, got: %v", maxTime))
	}
	if minTime > 0 && maxTime > 0 && minTime > maxTime {
		errs = append(errs, fmt.Sprintf("min_time %v exceeds max_time %v", minTime, maxTime))
	}
	if t := durationSetting("timeout"); t < 0 {
		errs = append(errs, fmt.Sprintf("timeout must be positive, got: %v", t))
	}

	if len(errs) > 0 {
		msg := errs[0]
		for i := 1; i < len(errs); i++ {
			msg += "\n  " + errs[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", msg)
	}
	return nil
}
