package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/strand/internal/api"
	"github.com/roach88/strand/internal/config"
	"github.com/roach88/strand/internal/store"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigFile string

	// Listener allows injecting a pre-bound listener (for testing).
	// If nil, serve listens on the configured port.
	Listener net.Listener
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the strand HTTP API.

The SQLite database is created if it doesn't exist. Settings come from
defaults, an optional YAML config file, the environment (PORT, STRAND_DB,
STRAND_LOG_LEVEL, STRAND_LOG_FORMAT, STRAND_SHUTDOWN_TIMEOUT) and flags,
later sources winning.

Example:
  strand serve --port 8080 --db ./data.db
  PORT=3000 strand serve --config ./strand.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.Flags().Int("port", defaults.Port, "HTTP listen port")
	cmd.Flags().String("db", defaults.Database, "path to SQLite database")
	cmd.Flags().String("log-level", defaults.Log.Level, "log level (debug|info|warn|error)")
	cmd.Flags().String("log-format", defaults.Log.Format, "log format (text|json)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigFile, cmd.Flags())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log, opts.Verbose)
	slog.SetDefault(logger)

	logger.Info("opening database", "path", cfg.Database)
	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()
	logger.Info("database ready")

	srv := api.NewServer(st,
		api.WithLogger(logger),
		api.WithShutdownTimeout(cfg.ShutdownTimeout),
	)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.Listener != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "strand listening on %s\n", opts.Listener.Addr())
		err = srv.Serve(ctx, opts.Listener)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "strand listening on %s\n", cfg.Addr())
		err = srv.ListenAndServe(ctx, cfg.Addr())
	}
	if errors.Is(err, api.ErrListen) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to listen on %s", cfg.Addr()), err)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "server error", err)
	}

	logger.Info("server stopped gracefully")
	return nil
}

// newLogger builds the process logger. verbose forces debug level.
func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}
