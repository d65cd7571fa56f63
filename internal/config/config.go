// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads the backoffice configuration from file, environment
// and command-line flags, in increasing order of precedence.
package config // import "github.com/buypy/backoffice/internal/config"

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appDir         = "buypy"
	configName     = "backoffice"
	envPrefix      = "buypy"
	keyFileName    = ".buypy.key"
	credFileName   = "credentials.ini"
	logFileName    = "backoffice.log"
	defaultTimeout = 10 * time.Second
)

// Database holds the connection settings. Credentials are never part of the
// configuration; they come from the login prompt or the credential store.
type Database struct {
	Driver  string        `mapstructure:"driver" yaml:"driver"`
	Host    string        `mapstructure:"host" yaml:"host"`
	Port    int           `mapstructure:"port" yaml:"port"`
	Name    string        `mapstructure:"name" yaml:"name"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Credentials locates the key file and the sealed credentials file.
type Credentials struct {
	KeyFile string `mapstructure:"key_file" yaml:"key_file"`
	File    string `mapstructure:"file" yaml:"file"`
}

// Config is the complete backoffice configuration.
type Config struct {
	Database    Database    `mapstructure:"database" yaml:"database"`
	Credentials Credentials `mapstructure:"credentials" yaml:"credentials"`
	Language    string      `mapstructure:"language" yaml:"language"`
	LogLevel    string      `mapstructure:"log_level" yaml:"log_level"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"db-driver":  "database.driver",
	"db-host":    "database.host",
	"db-port":    "database.port",
	"db-name":    "database.name",
	"db-timeout": "database.timeout",
	"key-file":   "credentials.key_file",
	"cred-file":  "credentials.file",
	"language":   "language",
	"log-level":  "log_level",
	"log-file":   "log_file",
}

// UserDir returns the per-user directory holding config, key and credentials.
func UserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, appDir), nil
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "BuyPy")
		default: // Linux, macOS, etc.
			configDir = "/etc/" + appDir
		}
	} else {
		dir, err := UserDir()
		if err != nil {
			return "", err
		}
		configDir = dir
	}
	return filepath.Join(configDir, configName+".yaml"), nil
}

// Defaults returns the default value of every configuration key. Paths fall
// back to the working directory when no user config dir is available.
func Defaults() map[string]any {
	dir, err := UserDir()
	if err != nil {
		dir = "."
	}
	return map[string]any{
		"database.driver":      "mysql",
		"database.host":        "localhost",
		"database.port":        3306,
		"database.name":        "BuyPay",
		"database.timeout":     defaultTimeout,
		"credentials.key_file": filepath.Join(dir, keyFileName),
		"credentials.file":     filepath.Join(dir, credFileName),
		"language":             "en",
		"log_level":            "info",
		"log_file":             filepath.Join(dir, logFileName),
	}
}

// IsNotFound reports whether err only says that no config file was found.
// LoadConfig still returns a usable configuration in that case.
func IsNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf)
}

// LoadConfig merges defaults, the config file, BUYPY_* environment variables
// and the known flags of cmd into T. When no config file exists the merged
// configuration is returned together with a viper.ConfigFileNotFoundError.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFile *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	// An explicit --config path must exist.
	if configFile != nil && *configFile != "" {
		v.SetConfigFile(*configFile)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if !IsNotFound(err) {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key, ok := flagKeys[f.Name]
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return c, bindErr
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, notFound
}

// WriteConfigFile writes c as YAML to the user or system config path with
// mode 0600 and returns the path.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path with mode 0600.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
