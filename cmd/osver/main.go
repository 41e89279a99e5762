package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/reoring/osver/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args)
	stop()
	os.Exit(code)
}
