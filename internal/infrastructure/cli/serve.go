package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studio/internal/infrastructure/config"
	"github.com/felixgeelhaar/studio/internal/infrastructure/server"
	"github.com/felixgeelhaar/studio/internal/infrastructure/watch"
	"github.com/felixgeelhaar/studio/internal/infrastructure/wiring"
	"github.com/felixgeelhaar/studio/pkg/domain/events"
)

var (
	serveAddr   string
	serveAssets string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the studio data service",
	Long: `Run the HTTP data service: portfolio API, step-detail writes,
event streams (SSE and websocket), metrics, and the static mockup.
The studio document is watched for out-of-band edits and reloaded
automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := os.Getwd()
		cfg, err := config.Load(cwd)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if serveAssets != "" {
			cfg.AssetsDir = serveAssets
		}

		log := newLogger(cfg.LogLevel)

		services, err := wiring.BuildAppServices(cfg.DataDir, cfg)
		if err != nil {
			return err
		}
		if !services.Workspace.Repo.IsInitialized() {
			return fmt.Errorf("no .studio workspace found; run 'studio seed' first")
		}

		srv := server.NewServer(cfg.Addr, cfg.AssetsDir, services, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Watch {
			watcher, err := watch.NewFixtureWatcher(services.Workspace.Repo.DocumentPath(), 500*time.Millisecond, func() {
				if err := services.Workspace.Repo.Reload(); err != nil {
					log.Warn().Err(err).Msg("fixture reload failed")
					return
				}
				services.Workspace.Events.Publish(events.New(events.TypeFixtureReloaded, "", "", "", nil))
				log.Info().Msg("fixture reloaded")
			})
			if err != nil {
				log.Warn().Err(err).Msg("fixture watching disabled")
			} else {
				go func() {
					if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Warn().Err(err).Msg("fixture watcher stopped")
					}
				}()
			}
		}

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&serveAssets, "assets", "", "static assets directory (overrides config)")
	RootCmd.AddCommand(serveCmd)
}
