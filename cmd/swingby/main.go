package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/zenGate-Global/swingby-connector-go/cmd/swingby/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
