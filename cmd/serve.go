package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hireloop/intervue/pkg/server"
)

func NewServeCmd() *cobra.Command {
	var bindAddr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interview backend",
		Long: `Run the HTTP backend the chat client talks to.

Questions come from a built-in per-role bank; answers are evaluated by
a local Ollama model. Exposes /api/question, /api/evaluate, /health and
/metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if bindAddr != "" {
				cfg.Server.BindAddr = bindAddr
			}

			log := logrus.New()
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			evaluator := server.NewOllamaClient(cfg.Server.OllamaURL, cfg.Server.OllamaModel, cfg.Server.OllamaTimeout)
			metrics := server.NewMetrics(cfg.Server.MetricsNamespace)
			srv := server.New(evaluator, metrics, log)

			httpSrv := &http.Server{
				Addr:    cfg.Server.BindAddr,
				Handler: srv.Router(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.WithFields(logrus.Fields{
					"addr":  cfg.Server.BindAddr,
					"model": cfg.Server.OllamaModel,
				}).Info("interview backend listening")
				if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.WithField("signal", sig.String()).Info("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := httpSrv.Shutdown(ctx); err != nil {
				return err
			}
			log.Info("shutdown complete")
			return nil
		},
	}

	serveCmd.Flags().StringVar(&bindAddr, "bind", "", "Address to listen on (default from config)")

	return serveCmd
}
