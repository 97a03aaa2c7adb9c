// Command server starts the AuraHub gateway: a passthrough HTTP service that
// re-exposes the Streamtape API under local routes with injected credentials.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"aurahub-gateway/internal/api"
	"aurahub-gateway/internal/config"
	"aurahub-gateway/internal/observability/logging"
	"aurahub-gateway/internal/observability/metrics"
	"aurahub-gateway/internal/server"
	"aurahub-gateway/internal/streamtape"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "log format (json or text)")
	tlsCert := flag.String("tls-cert", "", "path to TLS certificate file")
	tlsKey := flag.String("tls-key", "", "path to TLS private key file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger := logging.New(logging.Config{})
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(logging.Config{
		Level:  firstNonEmpty(*logLevel, cfg.LogLevel),
		Format: firstNonEmpty(*logFormat, cfg.LogFormat),
	})
	recorder := metrics.Default()

	tape := streamtape.New(streamtape.Config{
		BaseURL:    cfg.BaseURL,
		Login:      cfg.Login,
		Key:        cfg.Key,
		HTTPClient: &http.Client{Timeout: cfg.UpstreamTimeout},
		Logger:     logging.WithComponent(logger, "streamtape"),
		Metrics:    recorder,
	})

	handler := api.NewHandler(tape, logging.WithComponent(logger, "api"))

	srv, err := server.New(handler, server.Config{
		Addr: firstNonEmpty(*addr, cfg.Addr),
		TLS: server.TLSConfig{
			CertFile: firstNonEmpty(*tlsCert, cfg.TLSCertFile),
			KeyFile:  firstNonEmpty(*tlsKey, cfg.TLSKeyFile),
		},
		CORS:    server.CORSConfig{AllowedOrigins: cfg.AllowedOrigins},
		Logger:  logging.WithComponent(logger, "server"),
		Metrics: recorder,
	})
	if err != nil {
		logger.Error("failed to configure server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server shut down cleanly")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
