package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"review-explorer/config"
	"review-explorer/di"
	"review-explorer/explorer"
	"review-explorer/logger"
)

const serviceName = "review-explorer"

func main() {
	var root = &cobra.Command{
		Use:           serviceName,
		Short:         "Search places and explore their Google reviews",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCMD(), exploreCMD())
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCMD() *cobra.Command {
	var addr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddress = addr
			}
			log := logger.New(serviceName, cfg.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := di.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer container.Close()

			container.StartBackground(ctx)
			return container.HttpServer.Start(ctx)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDRESS)")

	return serve
}

func exploreCMD() *cobra.Command {
	var explore = &cobra.Command{
		Use:   "explore",
		Short: "Search interactively from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// Logs go to stderr so they do not interleave with results.
			log := logger.NewWithWriter(serviceName, cfg.LogLevel, cmd.ErrOrStderr())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			container, err := di.NewContainer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer container.Close()
			container.StartBackground(ctx)

			var limiter = container.RateLimiter
			if !container.QuotaEnforced {
				limiter = nil
			}
			e := explorer.New(container.NewController("cli"), container.SummaryService, container.ChatService, limiter, cmd.OutOrStdout())
			return e.Run(ctx, cmd.InOrStdin())
		},
	}
	return explore
}
