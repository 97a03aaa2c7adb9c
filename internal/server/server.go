// Package server wires the route table and middleware chain around the API
// handlers and owns the HTTP listener lifecycle.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"aurahub-gateway/internal/api"
	"aurahub-gateway/internal/observability/logging"
	"aurahub-gateway/internal/observability/metrics"
	"aurahub-gateway/internal/serverutil"
)

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type Config struct {
	Addr     string
	TLS      TLSConfig
	CORS     CORSConfig
	Security SecurityConfig
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	tls        TLSConfig
}

// New assembles the route table and middleware chain. Every local route maps
// one-to-one to a provider endpoint served by the handler.
func New(handler *api.Handler, cfg Config) (*Server, error) {
	recorder := cfg.Metrics
	if recorder == nil {
		recorder = metrics.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler.Root)
	mux.HandleFunc("/healthz", handler.Health)
	mux.Handle("/metrics", recorder.Handler())

	mux.HandleFunc("/get_upload_url", handler.GetUploadURL)
	mux.HandleFunc("/remote_upload/add", handler.AddRemoteUpload)
	mux.HandleFunc("/remote_upload/remove/", handler.RemoveRemoteUpload)
	mux.HandleFunc("/remote_upload/status/", handler.RemoteUploadStatus)
	mux.HandleFunc("/file_manager/list_contents", handler.ListContents)
	mux.HandleFunc("/file_manager/create_folder", handler.CreateFolder)
	mux.HandleFunc("/file_manager/rename_folder/", handler.RenameFolder)
	mux.HandleFunc("/file_manager/delete_folder/", handler.DeleteFolder)
	mux.HandleFunc("/file_manager/rename_file/", handler.RenameFile)
	mux.HandleFunc("/file_manager/move_file/", handler.MoveFile)
	mux.HandleFunc("/file_manager/delete_file/", handler.DeleteFile)
	mux.HandleFunc("/converts/running", handler.RunningConverts)
	mux.HandleFunc("/converts/failed", handler.FailedConverts)
	mux.HandleFunc("/thumbnail/", handler.Thumbnail)
	mux.HandleFunc("/stream/ticket/", handler.DownloadTicket)
	mux.HandleFunc("/stream/link/", handler.DownloadLink)
	mux.HandleFunc("/file_info/", handler.FileInfo)

	policy, err := newCORSPolicy(cfg.CORS)
	if err != nil {
		return nil, err
	}

	handlerChain := http.Handler(mux)
	handlerChain = corsMiddleware(policy, cfg.Logger, handlerChain)
	handlerChain = securityHeadersMiddleware(cfg.Security, handlerChain)
	handlerChain = metrics.HTTPMiddleware(recorder, handlerChain)
	handlerChain = logging.RequestLogger(logging.RequestLoggerConfig{Logger: cfg.Logger})(handlerChain)
	handlerChain = requestIDMiddleware(cfg.Logger, handlerChain)
	handlerChain = recoveryMiddleware(cfg.Logger, handlerChain)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlerChain,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		logger:     cfg.Logger,
		tls:        cfg.TLS,
	}, nil
}

// Handler exposes the fully wrapped handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("gateway listening", "addr", s.httpServer.Addr, "tls", s.tls.CertFile != "")
	}
	return serverutil.Run(ctx, serverutil.Config{
		Server: s.httpServer,
		TLS: serverutil.TLSConfig{
			CertFile: s.tls.CertFile,
			KeyFile:  s.tls.KeyFile,
		},
	})
}
