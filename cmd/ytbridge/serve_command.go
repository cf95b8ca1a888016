package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"ytbridge/internal/api"
	"ytbridge/internal/deps"
	"ytbridge/internal/download"
	"ytbridge/internal/history"
	"ytbridge/internal/logging"
	"ytbridge/internal/subtitles"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the tool API server",
		Long: `Run the tool API server.

Holds a single-instance lock, verifies the external tools are installed,
removes stale staging directories, and serves the tool endpoints until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockFilePath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another ytbridge instance is already serving")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release serve lock", logging.Error(err))
				}
			}()

			for _, status := range deps.CheckBinaries(deps.Requirements(cfg)) {
				if !status.Available && !status.Optional {
					return fmt.Errorf("required tool %s unavailable: %s", status.Name, status.Detail)
				}
			}
			if status := deps.CheckDiskSpace(cfg.Paths.DownloadsDir, cfg.Download.MinFreeSpaceGiB); !status.Available {
				logger.Warn("low disk space on downloads directory",
					logging.String("detail", status.Detail),
				)
			}

			result := download.CleanStale(cfg.Paths.DownloadsDir, cfg.StagingMaxAge(), logger)
			if len(result.Removed) > 0 {
				logger.Info("removed stale staging directories", logging.Int("count", len(result.Removed)))
			}

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg)
				if err != nil {
					return fmt.Errorf("open history store: %w", err)
				}
				defer store.Close()
			}

			client, trimmer := newToolClients(cfg, logger)
			downloadSvc := download.NewService(cfg, client, trimmer, logger)
			subtitleSvc := subtitles.NewService(cfg, client, logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := api.NewServer(cfg, downloadSvc, subtitleSvc, store, logger)
			if err := server.Start(runCtx); err != nil {
				return err
			}

			<-runCtx.Done()
			server.Stop()
			logger.Info("ytbridge stopped")
			return nil
		},
	}
}
