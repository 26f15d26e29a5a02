// cmd/lookup-relay/serve.go
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"lookup-relay/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP entry points.",
		Long:  `Starts the /chatbox, /webhook and /validate_license endpoints. Refuses to start when required configuration is missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	checks := map[string]server.ReadinessCheck{}
	if a.cache != nil {
		checks["redis"] = a.cache.Ping
	}

	handler := server.NewHandler(server.Dependencies{
		Parser:     a.parser,
		Dispatcher: a.dispatcher,
		Service:    a.service,
		Metrics:    promhttp.Handler(),
		Checks:     checks,
		Version:    a.cfg.App.Version,
		Logger:     a.log,
	})

	return server.New(a.cfg.Server, server.NewRouter(handler), a.log).Run(ctx)
}
