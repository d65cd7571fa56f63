// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buypy/backoffice/buildvars"
	"github.com/buypy/backoffice/internal/config"
	"github.com/buypy/backoffice/internal/db"
	"github.com/buypy/backoffice/internal/i18n"
	"github.com/buypy/backoffice/internal/logging"
	"github.com/buypy/backoffice/internal/tui"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logFile   *os.File
)

// runTUI is replaced in tests.
var runTUI = tui.Run

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// getConfigPathFromCli returns the --config path when the operator set one.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// setupDefaultServices loads the configuration, writes a default config
// file on first run and configures logging and translations.
func setupDefaultServices(cmd *cobra.Command, _ []string) error {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig[config.Config](cmd, config.Defaults(), path)
	if config.IsNotFound(err) {
		// First run: persist the defaults so the operator has a file to edit.
		if written, writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
			logging.Warnf("could not write default config file: %v", writeErr)
		} else {
			logging.Infof("wrote default config to %s", written)
		}
	} else if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	i18n.Init(appConfig.Language)

	level := appConfig.LogLevel
	if verbose {
		level = "debug"
		db.SetDebug(true)
	}
	closeLogFile()
	if appConfig.LogFile != "" {
		f, ferr := logging.OpenFile(appConfig.LogFile)
		if ferr != nil {
			logging.Warnf("could not open log file %s: %v", appConfig.LogFile, ferr)
		} else {
			logFile = f
		}
	}
	if logFile != nil {
		err = logging.Configure(level, logFile)
	} else {
		err = logging.Configure(level, nil)
	}
	if err != nil {
		logging.Warnf("%v", err)
	}
	return nil
}

// NewRootCmd creates the root command with every subcommand attached. Each
// call returns a fresh tree so tests can run commands in isolation.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "BuyPy backoffice: customer, product and order administration.",
		Long: `The BuyPy backoffice lets shop operators look up and block customers,
list and add products and review the orders of a day.

Running without a subcommand launches the interactive TUI. The first
successful login is remembered in an encrypted credentials file until
you log out.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupDefaultServices,
		RunE: func(cmd *cobra.Command, _ []string) error {
			boot, err := newBootstrapper(appConfig)
			if err != nil {
				return err
			}
			err = runTUI(cmd.Context(), tui.FromBootstrapper(boot))
			// Quitting without logging out leaves the session open.
			if g, ok := boot.Session(); ok {
				_ = g.Close()
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Version = buildvars.Describe(nil)

	d := config.Defaults()
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/buypy/backoffice.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging including SQL timings")
	pf.String("db-driver", d["database.driver"].(string), `database driver ("mysql" or "sqlite")`)
	pf.String("db-host", d["database.host"].(string), "database host")
	pf.Int("db-port", d["database.port"].(int), "database port")
	pf.String("db-name", d["database.name"].(string), "database schema name, or file path for sqlite")
	pf.Duration("db-timeout", db.DefaultTimeout, "connect timeout")
	pf.String("key-file", d["credentials.key_file"].(string), "encryption key file for cached credentials")
	pf.String("cred-file", d["credentials.file"].(string), "cached credentials file")
	pf.String("language", d["language"].(string), `interface language ("en", "pt")`)
	pf.String("log-level", d["log_level"].(string), "log level (debug, info, warn, error)")
	pf.String("log-file", d["log_file"].(string), "log file path")

	cmd.AddCommand(
		newCustomersCmd(),
		newProductsCmd(),
		newOrdersCmd(),
		newSchemaCmd(),
		newLogoutCmd(),
		newVersionCmd(),
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		// No config or logging is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, c, d := buildvars.Resolve(nil)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "version: %s\n", v)
			if c != "" {
				fmt.Fprintf(out, "commit: %s\n", c)
			}
			if d != "" {
				fmt.Fprintf(out, "built: %s\n", d)
			}
			return nil
		},
	}
}
