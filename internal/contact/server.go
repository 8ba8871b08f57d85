package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"greenline/internal/config"
	"greenline/internal/logging"
)

// Routes served by the relay. Both contact paths share one handler so the
// site works unchanged behind either hosting layout.
const (
	RouteContact        = "/api/send-contact"
	RouteNetlifyContact = "/.netlify/functions/send-contact"
	RouteHealth         = "/healthz"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the contact relay.
type Server struct {
	bind     string
	logger   *slog.Logger
	server   *http.Server
	listener net.Listener
}

// NewServer wires the contact handler into an http.Server.
func NewServer(cfg *config.Config, sender Sender, recorder Recorder, logger *slog.Logger) (*Server, error) {
	if cfg == nil || sender == nil {
		return nil, errors.New("contact server requires config and sender")
	}
	bind := strings.TrimSpace(cfg.Contact.Bind)
	if bind == "" {
		return nil, errors.New("contact.bind is empty")
	}

	logger = logging.NewComponentLogger(logger, "relay")
	handler := NewHandler(HandlerOptions{
		Sender:       sender,
		Limiter:      NewClientLimiter(cfg.Contact.RateLimitRPS, cfg.Contact.RateLimitBurst),
		Recorder:     recorder,
		Logger:       logger,
		MaxBodyBytes: cfg.Contact.MaxBodyBytes,
	})

	mux := http.NewServeMux()
	mux.Handle(RouteContact, handler)
	mux.Handle(RouteNetlifyContact, handler)
	mux.HandleFunc(RouteHealth, handleHealth)

	return &Server{
		bind:   bind,
		logger: logger,
		server: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("relay listen: %w", err)
	}
	s.listener = listener
	s.logger.Info("relay listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve handles requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(s.listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("relay serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("relay shutdown: %w", err)
	}
	<-errCh
	s.logger.Info("relay stopped")
	return nil
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
