package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults for every configuration key. Keys double as flag names; the environment
// variable is the upper-cased key with dashes replaced by underscores, unless listed in envAliases.
//
//nolint:gochecknoglobals
var defaults = map[string]any{
	"secret-key":       "",
	"iterations":       1000, //nolint:mnd
	"source-dir":       "media/pictures",
	"output-dir":       "encrypted",
	"encrypt-ext":      ".enc",
	"parallel":         runtime.NumCPU(),
	"quiet":            false,
	"stats":            false,
	"dry":              false,
	"manifest":         "",
	"url":              "http://localhost:8080/encrypted/",
	"addr":             ":8080",
	"unlock-rps":       1.0,
	"unlock-burst":     5, //nolint:mnd
	"shutdown-timeout": 30 * time.Second,
}

//nolint:gochecknoglobals
var envAliases = map[string]string{
	"iterations": "PBKDF2_ITERATIONS",
	"url":        "GALLERY_URL",
}

// Load reads an optional .env file, then resolves every key from flags, environment and defaults,
// in that order of precedence.
func Load(flags *pflag.FlagSet, envFiles ...string) (*Config, error) {
	// A missing .env file is not an error; the variables may come from the process environment.
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	for key, env := range envAliases {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
