package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bsp-cli/bsp/pkg/errors"
)

const exitInterrupted = 130

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	if errors.IsCode(err, errors.ErrInterrupted) || ctx.Err() != nil {
		fmt.Fprintln(os.Stderr, "⚠ Operation cancelled by user")
		return exitInterrupted
	}

	fmt.Fprintf(os.Stderr, "✗ %v\n", err)
	return 1
}
