package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	asJSON     bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags

	root := &cobra.Command{
		Use:           "liftlog-cli",
		Short:         "Log and review strength training sets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file (defaults apply when empty)")
	root.PersistentFlags().BoolVar(&g.asJSON, "json", false, "print JSON instead of text")

	root.AddCommand(newExercisesCmd(&g))
	root.AddCommand(newSetsCmd(&g))
	root.AddCommand(newRecordsCmd(&g))
	root.AddCommand(newLastCmd(&g))
	root.AddCommand(newHistoryCmd(&g))
	root.AddCommand(newFavCmd(&g))
	root.AddCommand(newResetCmd(&g))
	return root
}

// withApp opens the configured storage for the duration of fn.
func withApp(g *globalFlags, cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	log := slog.New(logging.NewHandler(cmd.ErrOrStderr(), cfg.Log))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
