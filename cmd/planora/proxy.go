package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mengash94/planora-plan-ora.net-sub000/internal/config"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/proxy"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/store"
	"github.com/mengash94/planora-plan-ora.net-sub000/internal/store/postgres"
	"github.com/spf13/cobra"
)

var proxyCmd = &cobra.Command{
	Use:     "proxy",
	Short:   "Run the request relay used when the backend is unreachable",
	GroupID: "system",
}

var proxyServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the relay server",
	// The relay needs no session or API client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.ProxyAddr = addr
		}
		if up, _ := cmd.Flags().GetString("upstream"); up != "" {
			cfg.ProxyUpstream = up
		}

		var audit store.AuditStore = store.NoopAuditStore{}
		if cfg.DatabaseURL != "" {
			pg, err := postgres.New(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			audit = pg
			logger.Info("audit log enabled")
		} else {
			logger.Info("audit log disabled (PLANORA_DATABASE_URL not set)")
		}

		pruner := proxy.NewPruner(audit, cfg.AuditRetention, 0, logger)
		if cfg.DatabaseURL != "" && cfg.AuditRetention > 0 {
			pruner.Start()
			logger.Info("audit pruning enabled", "retention", cfg.AuditRetention)
		}

		relay := proxy.New(proxy.Options{
			Upstream: cfg.ProxyUpstream,
			Timeout:  cfg.Timeout,
			Audit:    audit,
			Logger:   logger,
		})
		httpServer := &http.Server{
			Addr:              cfg.ProxyAddr,
			Handler:           relay.NewHTTPHandler(cfg.ProxyAuthToken),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.ProxyAddr, "upstream", cfg.ProxyUpstream)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		var stopGRPC func()
		if cfg.ProxyGRPCAddr != "" {
			lis, err := net.Listen("tcp", cfg.ProxyGRPCAddr)
			if err != nil {
				_ = httpServer.Close()
				audit.Close()
				return err
			}
			grpcServer, hs := proxy.NewGRPCServer(cfg.ProxyAuthToken, logger)
			go func() {
				logger.Info("gRPC health listening", "addr", cfg.ProxyGRPCAddr)
				if err := grpcServer.Serve(lis); err != nil {
					logger.Error("gRPC server error", "err", err)
				}
			}()
			stopGRPC = func() {
				hs.Shutdown()
				grpcServer.GracefulStop()
			}
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		if stopGRPC != nil {
			stopGRPC()
			logger.Info("gRPC server stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		pruner.Stop()
		if err := audit.Close(); err != nil {
			logger.Error("error closing audit store", "err", err)
		}
		logger.Info("shutdown complete")
		return nil
	},
}

func init() {
	proxyServeCmd.Flags().String("addr", "", "listen address (default $PLANORA_PROXY_ADDR)")
	proxyServeCmd.Flags().String("upstream", "", "backend to relay to (default $PLANORA_PROXY_UPSTREAM)")

	proxyCmd.AddCommand(proxyServeCmd)
}
