// Package config wraps viper for gid's layered configuration.
//
// Priority order (highest wins): command-line flags > GID_* environment
// variables > .gid/config.yaml > built-in defaults. Flag precedence is
// enforced by the command layer (flags are only overridden by viper when
// not explicitly set).
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/bondlegend4/globalid/internal/configfile"
)

// Initialize sets up viper with config file discovery and environment
// variable support. Safe to call when no config file exists.
func Initialize() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if gidDir := configfile.FindGidDir(); gidDir != "" {
		viper.AddConfigPath(gidDir)
	}

	viper.SetEnvPrefix("GID")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine; anything else is reported to the
		// caller but should not abort startup.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("json", false)
	viper.SetDefault("quiet", false)
	viper.SetDefault("registry", "")
	viper.SetDefault("live", false)
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}

// Set overrides a value in the running process. Used by tests.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}
