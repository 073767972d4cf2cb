// Package server implements the chatbox backend REST API: the chat session
// endpoints, the PDF upload pipeline, and request monitoring.
package server

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
	"github.com/raphaelgruber/chatbox-go/internal/config"
	"github.com/raphaelgruber/chatbox-go/internal/metrics"
	"github.com/raphaelgruber/chatbox-go/internal/pdf"
	"github.com/raphaelgruber/chatbox-go/internal/responder"
	"github.com/raphaelgruber/chatbox-go/internal/storage"
)

// Extractor extracts text from a stored PDF file.
type Extractor interface {
	ExtractText(path string, onProgress func(percent int)) (string, error)
}

// Store persists uploaded files.
type Store interface {
	Store(name string, r io.Reader) (string, int64, error)
	Exists(name string) bool
	Path(name string) (string, bool)
	Delete(name string) error
	List() ([]string, error)
}

// Server wires the chat container, storage, and PDF processing behind a chi
// router.
type Server struct {
	chat      *chat.Container
	store     Store
	extractor Extractor
	collector *metrics.Collector
	logger    *slog.Logger
	maxUpload int64
}

// New builds a server from configuration, creating the storage manager, the
// PDF processor, and a chat container backed by the configured responder.
// The returned cleanup runs the storage cleanup loop until ctx is done.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := storage.NewManager(cfg.UploadDir, cfg.MaxFileAge, cfg.CleanupInterval, logger)
	if err != nil {
		return nil, err
	}
	go store.Run(ctx)

	rsp, err := responder.New(cfg)
	if err != nil {
		return nil, err
	}

	srv := NewWith(store, pdf.NewProcessor(logger), rsp, cfg.MaxUploadBytes, logger)
	return srv, nil
}

// NewWith builds a server from explicit collaborators. Tests use it to
// substitute the extractor or responder.
func NewWith(store Store, extractor Extractor, rsp responder.Responder, maxUpload int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		store:     store,
		extractor: extractor,
		collector: metrics.NewCollector(),
		logger:    logger,
		maxUpload: maxUpload,
	}

	// The container's send function is the responder itself; the session
	// history provides conversational context.
	s.chat = chat.NewContainer(func(ctx context.Context, text string) (chat.Reply, error) {
		reply, err := rsp.Reply(ctx, text, s.chat.History())
		if err != nil {
			return chat.Reply{}, err
		}
		return chat.Reply{Text: reply}, nil
	}, chat.WithLogger(logger))

	return s
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.metricsMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/ping", s.handlePing)

	r.Post("/chat", s.handleChat)
	r.Get("/chat/history", s.handleChatHistory)
	r.Post("/chat/clear", s.handleChatClear)

	r.Post("/pdf/upload", s.handlePDFUpload)
	r.Get("/pdf/list", s.handlePDFList)
	r.Delete("/pdf/{filename}", s.handlePDFDelete)

	r.Get("/monitoring/stats", s.handleStats)

	return r
}
