// path: cmd/root.go

// Package cmd wires configuration, storage and transport into the
// command-line entry points.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/RodyMacay/biodiversity-monitoring/config"
	"github.com/RodyMacay/biodiversity-monitoring/database"
	"github.com/RodyMacay/biodiversity-monitoring/logging"
	"github.com/RodyMacay/biodiversity-monitoring/store"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var envFiles []string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "biodiversity",
		Short:         "Biodiversity monitoring GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load (default .env)")
	root.AddCommand(newServeCmd(), newSeedCmd(), newTokenCmd())
	return root
}

// Execute runs the command line. Without a subcommand the server starts.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(envFiles...)
}

func newLogger(cfg config.LogConfig) (*logging.LogData, error) {
	return logging.New().
		Level(cfg.Level).
		Console(cfg.Format == "console").
		FromPath(cfg.File).
		Make()
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Repository, error) {
	if strings.EqualFold(cfg.Store, "memory") {
		log.Warn().Msg("using the in-memory store; data is lost on exit")
		return store.NewMemory(), nil
	}
	return database.Connect(ctx, cfg.Mongo, log)
}
