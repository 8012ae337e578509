// Command bib2html renders BibTeX files to linked HTML lists, standalone
// pages and PDFs.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Interrupts cancel in-flight renders; printers are released by the pool.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}
