package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/secmon-lab/cipher/pkg/cli/config"
	httpctrl "github.com/secmon-lab/cipher/pkg/controller/http"
	"github.com/secmon-lab/cipher/pkg/metrics"
	"github.com/secmon-lab/cipher/pkg/usecase"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var llmCfg config.LLM
	var scoringCfg config.Scoring

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CIPHER_ADDR"),
			Destination: &addr,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			registry := prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			uc, err := buildUseCases(ctx, &repoCfg, &llmCfg, &scoringCfg, metrics.New(registry))
			if err != nil {
				return err
			}

			httpHandler, err := httpctrl.New(uc, httpctrl.WithMetrics(registry))
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "llm", uc.LLMEnabled())
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// buildUseCases wires the repository, the analyst and the scoring model
func buildUseCases(ctx context.Context, repoCfg *config.Repository, llmCfg *config.LLM, scoringCfg *config.Scoring, m *metrics.Metrics) (*usecase.UseCases, error) {
	repo, err := repoCfg.Configure()
	if err != nil {
		return nil, err
	}

	scoring, err := scoringCfg.Configure()
	if err != nil {
		return nil, err
	}

	opts := []usecase.Option{
		usecase.WithScoringModel(scoring),
		usecase.WithMetrics(m),
	}

	if llmCfg != nil {
		svc, err := llmCfg.Configure(ctx, m)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure LLM")
		}
		if svc != nil {
			opts = append(opts, usecase.WithAnalyst(svc))
		}
	}

	return usecase.New(repo, opts...), nil
}
