package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/signoff/pkg/cli/config"
	controller "github.com/m-mizutani/signoff/pkg/controller/http"
	"github.com/m-mizutani/signoff/pkg/domain/types"
	"github.com/m-mizutani/signoff/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		githubCfg config.GitHub
		slackCfg  config.Slack
		policyCfg config.Policy
	)

	flags := append(serverCfg.Flags(), githubCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the GitHub webhook receiver",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if githubCfg.WebhookSecret == "" {
				return goerr.New("github webhook secret is required in serve mode",
					goerr.T(types.ErrTagMissingConfig),
					goerr.V("flag", "github-webhook-secret"),
				)
			}

			githubClient, err := githubCfg.NewClient()
			if err != nil {
				return err
			}
			notifier, err := slackCfg.NewNotifier()
			if err != nil {
				return err
			}

			logger.Info("Starting signoff server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("policy", policyCfg),
			)

			// Create use cases
			signoffUC := usecase.NewSignoff(githubClient, notifier,
				usecase.WithPolicy(policyCfg.Policy()),
			)
			webhookUC := usecase.NewWebhook(signoffUC)

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
