package main

import (
	"context"
	"os"

	"github.com/yourorg/photoapp/internal/metrics"
)

func main() {
	metrics.Init()
	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
