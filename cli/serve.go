package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/giygas/medscape-interactions/checker"
	"github.com/giygas/medscape-interactions/data"
	"github.com/giygas/medscape-interactions/handlers"
	"github.com/giygas/medscape-interactions/health"
	"github.com/giygas/medscape-interactions/logging"
	"github.com/giygas/medscape-interactions/medscape"
	"github.com/giygas/medscape-interactions/scheduler"
	"github.com/giygas/medscape-interactions/server"
	"github.com/giygas/medscape-interactions/validation"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve interaction checks over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, st)
		},
	}
}

// runServer starts the probe and the HTTP server and blocks until ctx is done
func runServer(ctx context.Context, st *state) error {
	cfg := st.cfg

	statusStore := data.NewStatusContainer()
	statusStore.SetServerStartTime(time.Now())

	client := medscape.NewClientFromConfig(cfg)
	interactionChecker := checker.NewChecker(client, client, cfg.ResolveWorkers)
	healthChecker := health.NewHealthChecker(statusStore, cfg.ProbeInterval)
	handler := handlers.NewHTTPHandler(interactionChecker, validation.NewNameValidator(), healthChecker, statusStore)

	probe := scheduler.NewScheduler(statusStore, client, cfg.ProbeInterval, cfg.ProbeMedication)
	if err := probe.Start(); err != nil {
		return err
	}
	defer probe.Stop()

	srv := server.NewServer(cfg, handler)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logging.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
