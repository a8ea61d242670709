package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/giygas/medscape-interactions/cli"
)

func main() {
	ctx := context.Background()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
