package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	linkup "github.com/raezil/linkup-go/linkup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// printError writes err and, when the API gave enough to derive one, a hint.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	if hint := linkup.RecoverySuggestion(err); hint != "" {
		fmt.Fprintln(w, "hint:", hint)
	}
}
