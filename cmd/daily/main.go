// Package main provides the daily command: a personal journal kept as one
// markdown file per day, usable from the shell or as an XML tool endpoint
// for an assistant.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/daily/pkg/logging"
)

const version = "0.1.0" // Version of the daily CLI

func main() {
	// Cancel in-flight store operations on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd(version).ExecuteContext(ctx)
	if shutdownErr := logging.Shutdown(); shutdownErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", shutdownErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
