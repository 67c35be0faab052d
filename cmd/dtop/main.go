package main

import (
	"fmt"
	"os"

	"github.com/dtop/dtop/internal/crashlog"
	"github.com/dtop/dtop/internal/signals"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			crashlog.Write(r, "main")
			os.Exit(1)
		}
	}()

	sigManager := signals.New()

	if err := ExecuteContext(sigManager.Context()); err != nil {
		fmt.Fprintf(os.Stderr, "dtop: %v\n", err)
		os.Exit(1)
	}

	if sigManager.IsShutdown() {
		os.Exit(sigManager.ExitCode())
	}
}
