package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrymomot/slug/internal/cli"
	"github.com/dmitrymomot/slug/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cli.Execute(context.Background(), cfg, os.Args[1:], cli.StdStreams()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
