// Package main provides the assess CLI for checking a project against OpenSSF practices.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes
const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
