package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"wavelink-cli/internal/adapter/primary/cli"
	"wavelink-cli/internal/usecase"
)

// Injected at build time via ldflags.
var version = "dev"

const (
	ExitOK        = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitInterrupt = 130
)

func main() {
	// Load .env file if present (ignore error if missing).
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", usecase.ErrorMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps errors to process exit codes.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}
	if isCobraUsageError(err) {
		return ExitUsage
	}
	return ExitGeneral
}

// Cobra doesn't expose typed errors, so usage errors are recognised by message.
var cobraUsageErrorPatterns = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand",
	"flag needs an argument",
	"invalid argument",
	"accepts ",
	"requires at least",
	"requires at most",
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
