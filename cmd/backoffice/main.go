// Copyright (c) 2026 BuyPy Team
// BuyPy Backoffice - shop administration console
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface of the BuyPy backoffice using
// Cobra. Running without a subcommand launches the interactive TUI; the
// subcommands expose the same operations for scripting.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	closeLogFile()
	if err != nil {
		// The error is already printed by Cobra.
		os.Exit(1)
	}
}
