package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Client settings
	APIURL      string        // PLANORA_API_URL (default "https://api.instaback.ai")
	ProxyURL    string        // PLANORA_PROXY_URL (optional, empty = no proxy fallback)
	Locale      string        // PLANORA_LOCALE (default "he")
	Timeout     time.Duration // PLANORA_TIMEOUT (default 8s, per attempt)
	MaxRetries  int           // PLANORA_MAX_RETRIES (default 1; negative disables)
	RetryDelay  time.Duration // PLANORA_RETRY_DELAY (default 500ms)
	AssetOrigin string        // PLANORA_ASSET_ORIGIN (optional, defaults to the API origin)
	SessionPath string        // PLANORA_SESSION_PATH (optional, empty = ~/.local/state/planora/session.toml)
	NATSURL     string        // PLANORA_NATS_URL (optional, empty = no events)

	// Proxy server settings
	ProxyAddr      string        // PLANORA_PROXY_ADDR (default ":8080")
	ProxyGRPCAddr  string        // PLANORA_PROXY_GRPC_ADDR (optional, empty = no gRPC health)
	ProxyAuthToken string        // PLANORA_PROXY_AUTH_TOKEN (optional, empty = auth disabled)
	ProxyUpstream  string        // PLANORA_PROXY_UPSTREAM (default APIURL)
	DatabaseURL    string        // PLANORA_DATABASE_URL (optional, empty = no audit log)
	AuditRetention time.Duration // PLANORA_PROXY_AUDIT_RETENTION (default 720h; 0 = keep forever)

	// Sync settings
	SyncInterval   time.Duration // PLANORA_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // PLANORA_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // PLANORA_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // PLANORA_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // PLANORA_SYNC_S3_KEY (default "planora/backup.jsonl")
	SyncGitRepo    string        // PLANORA_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // PLANORA_SYNC_GIT_FILE (default "planora.jsonl")
	SyncGitBranch  string        // PLANORA_SYNC_GIT_BRANCH (default "main")
	SyncFile       string        // PLANORA_SYNC_FILE (enables a local file copy when set)
}

func Load() (*Config, error) {
	c := &Config{
		APIURL:      envOrDefault("PLANORA_API_URL", "https://api.instaback.ai"),
		ProxyURL:    os.Getenv("PLANORA_PROXY_URL"),
		Locale:      envOrDefault("PLANORA_LOCALE", "he"),
		AssetOrigin: os.Getenv("PLANORA_ASSET_ORIGIN"),
		SessionPath: os.Getenv("PLANORA_SESSION_PATH"),
		NATSURL:     os.Getenv("PLANORA_NATS_URL"),

		ProxyAddr:      envOrDefault("PLANORA_PROXY_ADDR", ":8080"),
		ProxyGRPCAddr:  os.Getenv("PLANORA_PROXY_GRPC_ADDR"),
		ProxyAuthToken: os.Getenv("PLANORA_PROXY_AUTH_TOKEN"),
		DatabaseURL:    os.Getenv("PLANORA_DATABASE_URL"),

		SyncS3Bucket:   os.Getenv("PLANORA_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("PLANORA_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("PLANORA_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("PLANORA_SYNC_S3_KEY", "planora/backup.jsonl"),
		SyncGitRepo:    os.Getenv("PLANORA_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("PLANORA_SYNC_GIT_FILE", "planora.jsonl"),
		SyncGitBranch:  envOrDefault("PLANORA_SYNC_GIT_BRANCH", "main"),
		SyncFile:       os.Getenv("PLANORA_SYNC_FILE"),
	}
	c.ProxyUpstream = envOrDefault("PLANORA_PROXY_UPSTREAM", c.APIURL)

	var err error
	if c.Timeout, err = durationEnv("PLANORA_TIMEOUT", "8s"); err != nil {
		return nil, err
	}
	if c.RetryDelay, err = durationEnv("PLANORA_RETRY_DELAY", "500ms"); err != nil {
		return nil, err
	}
	if c.SyncInterval, err = durationEnv("PLANORA_SYNC_INTERVAL", "3m"); err != nil {
		return nil, err
	}
	if c.AuditRetention, err = durationEnv("PLANORA_PROXY_AUDIT_RETENTION", "720h"); err != nil {
		return nil, err
	}

	retries := envOrDefault("PLANORA_MAX_RETRIES", "1")
	n, err := strconv.Atoi(retries)
	if err != nil {
		return nil, fmt.Errorf("PLANORA_MAX_RETRIES: %w", err)
	}
	c.MaxRetries = n

	return c, nil
}

func durationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
