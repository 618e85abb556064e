// Command cepgroup evaluates grouping strategies over a sponsor's site roster
// and prints the best one.
//
//	cepgroup evaluate --config run.yaml --roster sites.yaml
//	cepgroup strategies
//	cepgroup sample-roster > sites.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
