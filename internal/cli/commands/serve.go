package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/chatlens/internal/server"
)

// ServeOptions holds options for the serve command
type ServeOptions struct {
	Addr   string
	Config string
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		Long: `Run an HTTP server that analyzes uploaded chat exports.

Endpoints:
  GET  /healthz       Liveness check
  POST /v1/analyses   Upload an export (multipart field "chat" or raw
                      body) and get the full analysis report as JSON

The server stops gracefully on SIGINT or SIGTERM.

Example:
  chatlens serve --addr :8080
  curl -F chat=@chat.txt http://localhost:8080/v1/analyses`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Configuration file (YAML)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		ExitCode = 2
		return fmt.Errorf("failed to load config: %w", err)
	}

	srv, err := server.New(opts.Addr, cfg)
	if err != nil {
		ExitCode = 2
		return err
	}

	if err := srv.Run(ctx); err != nil {
		ExitCode = 2
		return err
	}
	return nil
}
