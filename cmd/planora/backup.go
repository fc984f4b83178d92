package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	plsync "github.com/mengash94/planora-plan-ora.net-sub000/internal/sync"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:     "backup [event-id...]",
	Short:   "Back up events to S3, git, or a file on a schedule",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		once, _ := cmd.Flags().GetBool("once")
		interval := cfg.SyncInterval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetDuration("interval")
		}

		dests, err := backupDestinations(cmd.Context(), logger)
		if err != nil {
			return err
		}
		if len(dests) == 0 {
			return fmt.Errorf("no backup destination configured (set PLANORA_SYNC_S3_BUCKET, PLANORA_SYNC_GIT_REPO, or PLANORA_SYNC_FILE)")
		}

		scheduler := plsync.NewScheduler(svc, myEvents(args), dests, interval, logger)
		if once || interval <= 0 {
			return scheduler.RunOnce(cmd.Context())
		}

		scheduler.Start()
		logger.Info("backup scheduler started", "interval", interval, "destinations", len(dests))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		scheduler.Stop()
		logger.Info("backup scheduler stopped")
		return nil
	},
}

func backupDestinations(ctx context.Context, logger *slog.Logger) ([]plsync.Destination, error) {
	var dests []plsync.Destination
	if cfg.SyncS3Bucket != "" {
		d, err := plsync.NewS3Destination(ctx, plsync.S3Options{
			Bucket:   cfg.SyncS3Bucket,
			Key:      cfg.SyncS3Key,
			Region:   cfg.SyncS3Region,
			Endpoint: cfg.SyncS3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		dests = append(dests, d)
		logger.Info("backup S3 destination enabled", "bucket", cfg.SyncS3Bucket, "key", cfg.SyncS3Key)
	}
	if cfg.SyncGitRepo != "" {
		dests = append(dests, plsync.NewGitDestination(cfg.SyncGitRepo, cfg.SyncGitFile, cfg.SyncGitBranch))
		logger.Info("backup git destination enabled", "repo", cfg.SyncGitRepo, "file", cfg.SyncGitFile)
	}
	if cfg.SyncFile != "" {
		dests = append(dests, plsync.NewFileDestination(cfg.SyncFile))
		logger.Info("backup file destination enabled", "path", cfg.SyncFile)
	}
	return dests, nil
}

func init() {
	backupCmd.Flags().Duration("interval", 0, "time between backups (default $PLANORA_SYNC_INTERVAL)")
	backupCmd.Flags().Bool("once", false, "run a single backup and exit")
}
