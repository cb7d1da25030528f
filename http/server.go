package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sanakirja"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultHandleTimeout bounds the work done for a single update.
const DefaultHandleTimeout = 30 * time.Second

// maxUpdateBytes caps the size of an accepted webhook payload.
const maxUpdateBytes = 1 << 20

// Server receives bot updates on a secret webhook path.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the address to listen on, e.g. ":8080".
	Addr string

	// HandleTimeout bounds the handling of one update.
	HandleTimeout time.Duration

	Logger         *slog.Logger
	Decoder        sanakirja.UpdateDecoder
	RequestHandler sanakirja.RequestHandler
}

// NewServer returns a server that accepts updates posted to secretPath.
func NewServer(secretPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		HandleTimeout: DefaultHandleTimeout,
		Logger:        logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))

	r.Get("/health", s.handleHealth)
	r.Post(webhookPath(secretPath), s.handleUpdate)

	s.router = r
	s.server = &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// webhookPath turns the configured secret into a route pattern.
func webhookPath(secret string) string {
	return "/" + strings.TrimPrefix(secret, "/")
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("server stopped", "error", err)
		}
	}()
	return nil
}

// Port returns the port the server listens on, or 0 before Open.
func (s *Server) Port() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Close gracefully shuts down the server.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleUpdate answers 200 to every well-formed update, including those that
// fail to be handled, since the bot API redelivers on any other status.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxUpdateBytes))
	if err != nil {
		http.Error(w, `{"error":"failed to read body"}`, http.StatusBadRequest)
		return
	}

	req, ok, err := s.Decoder.DecodeUpdate(data)
	if err != nil {
		s.Logger.Warn("invalid update", "error", sanakirja.ErrorMessage(err))
		http.Error(w, `{"error":"invalid update"}`, http.StatusBadRequest)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), s.HandleTimeout)
	defer cancel()
	if err := s.RequestHandler.HandleRequest(ctx, req); err != nil {
		s.Logger.Error("handle request failed",
			"chat_id", req.ChatID,
			"query", req.Query,
			"error", err,
		)
	}
	w.WriteHeader(http.StatusOK)
}
