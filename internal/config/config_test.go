// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	cfg "github.com/buypy/backoffice/internal/config"
	"github.com/spf13/cobra"
)

// isolate points the user config dir at a temp dir and runs the test from
// another empty dir so no real configuration is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	home := isolate(t)

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if !cfg.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if got.Database.Driver != "mysql" || got.Database.Host != "localhost" || got.Database.Port != 3306 || got.Database.Name != "BuyPay" {
		t.Fatalf("unexpected database defaults: %+v", got.Database)
	}
	if got.Database.Timeout != 10*time.Second {
		t.Fatalf("timeout = %s", got.Database.Timeout)
	}
	wantKey := filepath.Join(home, "buypy", ".buypy.key")
	if got.Credentials.KeyFile != wantKey {
		t.Fatalf("key file = %q, want %q", got.Credentials.KeyFile, wantKey)
	}
	if got.Language != "en" || got.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", got)
	}
}

func TestLoadConfig_ReadsExplicitFile(t *testing.T) {
	isolate(t)
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := "database:\n  driver: sqlite\n  name: /tmp/shop.db\n  timeout: 3s\nlanguage: pt\n"
	if err := os.WriteFile(file, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &file)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if got.Database.Driver != "sqlite" || got.Database.Name != "/tmp/shop.db" {
		t.Fatalf("unexpected database: %+v", got.Database)
	}
	if got.Database.Timeout != 3*time.Second {
		t.Fatalf("timeout = %s", got.Database.Timeout)
	}
	if got.Database.Host != "localhost" {
		t.Fatalf("defaults must fill unset keys, host = %q", got.Database.Host)
	}
	if got.Language != "pt" {
		t.Fatalf("expected pt, got %q", got.Language)
	}
}

func TestLoadConfig_MissingExplicitFileIsFatal(t *testing.T) {
	isolate(t)
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	_, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), &missing)
	if err == nil || cfg.IsNotFound(err) {
		t.Fatalf("expected a hard error for a missing explicit file, got %v", err)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	if _, err := cfg.WriteConfigFile(&cfg.Config{Language: "pt", Database: cfg.Database{Host: "db.file"}}, false); err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	t.Setenv("BUYPY_DATABASE_HOST", "db.env")

	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v (home %s)", err, home)
	}
	if got.Database.Host != "db.env" {
		t.Fatalf("expected env host, got %q", got.Database.Host)
	}
	if got.Language != "pt" {
		t.Fatalf("expected file language, got %q", got.Language)
	}
}

func TestLoadConfig_FlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BUYPY_LANGUAGE", "fr")
	t.Setenv("BUYPY_DATABASE_PORT", "3307")

	cmd := &cobra.Command{}
	cmd.Flags().String("language", "", "language")
	cmd.Flags().Int("db-port", 0, "port")
	cmd.Flags().String("unrelated", "x", "not a config key")
	if err := cmd.Flags().Set("language", "pt"); err != nil {
		t.Fatalf("failed to set flag: %v", err)
	}

	got, _ := cfg.LoadConfig[cfg.Config](cmd, cfg.Defaults(), nil)
	if got.Language != "pt" {
		t.Fatalf("expected pt from flag (not fr from env), got %q", got.Language)
	}
	if got.Database.Port != 3307 {
		t.Fatalf("unset flag must not hide env, port = %d", got.Database.Port)
	}
}

func TestWriteConfigFile_CreatesPrivateFile(t *testing.T) {
	isolate(t)

	path, err := cfg.WriteConfigFile(&cfg.Config{Language: "en"}, false)
	if err != nil {
		t.Fatalf("WriteConfigFile failed: %v", err)
	}
	want, err := cfg.GetConfigPath(false)
	if err != nil {
		t.Fatalf("GetConfigPath failed: %v", err)
	}
	if path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected config file at %s, stat error: %v", path, err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
}

func TestWriteThenLoad_RoundTrip(t *testing.T) {
	isolate(t)
	defaults, _ := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	defaults.Database.Name = "BuyPyTest"

	if _, err := cfg.WriteConfigFile(&defaults, false); err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}
	got, err := cfg.LoadConfig[cfg.Config](&cobra.Command{}, cfg.Defaults(), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != defaults {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, defaults)
	}
}
