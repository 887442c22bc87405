package main

import (
	"log/slog"
	"os"

	"github.com/nihei9/greibach/grammar"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose *int
}{}

var rootCmd = &cobra.Command{
	Use:   "greibach",
	Short: "Convert a context-free grammar into Greibach normal form",
	Long: `greibach rewrites a context-free grammar so that every production has the shape
A -> a B1 ... Bn. It runs four stages in order:
- eliminates empty productions,
- eliminates unit productions,
- eliminates productions starting with a non-terminal,
- replaces terminals after the leading position with helper non-terminals.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.verbose = rootCmd.PersistentFlags().CountP("verbose", "v", "log the stages to stderr (-v: debug, -vv: trace)")
}

func Execute() error {
	return rootCmd.Execute()
}

// newLogger returns nil when no -v flag is given, which keeps the pipeline silent.
func newLogger() *slog.Logger {
	var level slog.Level
	switch {
	case *rootFlags.verbose <= 0:
		return nil
	case *rootFlags.verbose == 1:
		level = slog.LevelDebug
	default:
		level = grammar.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}
