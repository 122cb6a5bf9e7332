package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/canzero/canzero-appdata/internal/cli"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:], cli.Streams{
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}, cli.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
	})
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "canzero-appdata: %v\n", err)
		os.Exit(1)
	}
}
