// flatdb is a CLI for delimited-file backed row stores.
//
// Usage:
//
//	flatdb <command> [arguments]
//
// Run "flatdb" without arguments for the command list. Most commands
// take a store declaration file (*.store.jsonc) as their first
// argument, or read it from $FLATDB_STORE.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/calvinalkan/flatdb/internal/cli"
)

func main() {
	args, verbose := stripVerbose(os.Args)
	initLogger(verbose)

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, args, envMap()))
}

// stripVerbose removes a global --verbose flag so commands never see it.
func stripVerbose(args []string) ([]string, bool) {
	out := args[:0:0]
	verbose := false

	for _, a := range args {
		if a == "--verbose" || a == "-v" {
			verbose = true

			continue
		}

		out = append(out, a)
	}

	return out, verbose
}

// initLogger sets up colored structured logging on stderr. Commands
// stay quiet at the default level; --verbose or FLATDB_DEBUG=1 turns
// on debug logs.
func initLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose || os.Getenv("FLATDB_DEBUG") != "" {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
	slog.SetDefault(logger)
}

// envMap extracts the process environment variables the CLI reads.
func envMap() map[string]string {
	env := map[string]string{}

	for _, key := range []string{"FLATDB_STORE", "FLATDB_DEBUG"} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	return env
}
