package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PRINTSCHED_POLICY.
const EnvPrefix = "PRINTSCHED"

// Config represents the configuration implementation.
type Config struct {
	Policy   string
	Output   string
	Auto     *Auto
	Registry *Registry
	Logger   *Logger
	Viper    *viper.Viper
}

// Auto configures automatic policy selection.
type Auto struct {
	Threshold int
}

// Registry configures the job registry.
type Registry struct {
	UniqueIDs bool
}

// Logger logger config struct
type Logger struct {
	Level      int
	Format     string
	Output     string
	OutputFile string
}

// flagKeys maps command line flags to the config keys they override.
var flagKeys = map[string]string{
	"policy":    "policy",
	"output":    "output",
	"log-level": "logger.level",
	"unique":    "registry.unique_ids",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("policy", "fcfs")
	v.SetDefault("output", "table")
	v.SetDefault("auto.threshold", 3)
	v.SetDefault("registry.unique_ids", false)
	v.SetDefault("logger.level", 3)
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("logger.output_file", "")
}

// LoadConfig loads the configuration. Values come from, in increasing
// precedence: defaults, the config file, PRINTSCHED_* environment variables,
// and any changed flag in flags. With an empty configPath the usual locations
// are searched and a missing file is not an error.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("printsched")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.printsched")
		v.AddConfigPath("/etc/printsched")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	return fromViper(v), nil
}

func getLoggerConfig(v *viper.Viper) *Logger {
	return &Logger{
		Level:      v.GetInt("logger.level"),
		Format:     v.GetString("logger.format"),
		Output:     v.GetString("logger.output"),
		OutputFile: v.GetString("logger.output_file"),
	}
}

// Default returns the configuration with built-in defaults only.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Policy:   v.GetString("policy"),
		Output:   v.GetString("output"),
		Auto:     &Auto{Threshold: v.GetInt("auto.threshold")},
		Registry: &Registry{UniqueIDs: v.GetBool("registry.unique_ids")},
		Logger:   getLoggerConfig(v),
		Viper:    v,
	}
}
