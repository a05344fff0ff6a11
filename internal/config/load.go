package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"quickbench/pkg/bench"
)

// Load initializes execution-control defaults from an optional config
// file and QUICKBENCH_* environment variables. With no file and no
// environment the documented package defaults apply unchanged.
func Load(cfgFile string) error {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("quickbench")
	}

	viper.SetEnvPrefix("QUICKBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("iterations", bench.DefaultIterations)
	viper.SetDefault("warmup_iterations", bench.DefaultWarmupIterations)
	viper.SetDefault("rounds", bench.DefaultRounds)
	viper.SetDefault("min_time", bench.DefaultMinTime)
	viper.SetDefault("max_time", bench.DefaultMaxTime)
	viper.SetDefault("timeout", time.Duration(0))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return err
		}
	}
	return ValidateConfig()
}

// ExecDefaults returns the loaded execution-control defaults in the
// form sessions consume.
func ExecDefaults() bench.ExecDefaults {
	return bench.ExecDefaults{
		Iterations:       viper.GetInt("iterations"),
		WarmupIterations: viper.GetInt("warmup_iterations"),
		Rounds:           viper.GetInt("rounds"),
		MinTime:          durationSetting("min_time"),
		MaxTime:          durationSetting("max_time"),
		Timeout:          durationSetting("timeout"),
	}
}

// durationSetting reads a duration that may be given either as a Go
// duration string ("30s") or as a bare number of seconds.
func durationSetting(key string) time.Duration {
	raw := viper.GetString(key)
	if raw == "" {
		return 0
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if s := viper.GetFloat64(key); s != 0 {
		return time.Duration(s * float64(time.Second))
	}
	return 0
}
