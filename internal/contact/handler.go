package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"greenline/internal/archive"
	"greenline/internal/logging"
	"greenline/internal/services"
)

const (
	allowedMethods   = "POST, OPTIONS"
	allowedHeaders   = "Content-Type, Accept"
	defaultMaxBody   = 64 << 10
	msgServerError   = "Erro no servidor ao enviar e-mail"
	msgTooManyReqs   = "Muitas requisições. Tente novamente em instantes."
	msgBodyTooLarge  = "Requisição muito grande."
	msgMethodBlocked = "Method not allowed"
)

// Recorder archives handled submissions.
type Recorder interface {
	Record(ctx context.Context, sub archive.Submission) (archive.Submission, error)
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Sender       Sender
	Limiter      *ClientLimiter
	Recorder     Recorder
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// Handler serves the contact endpoint.
type Handler struct {
	sender   Sender
	limiter  *ClientLimiter
	recorder Recorder
	logger   *slog.Logger
	maxBody  int64
}

// NewHandler builds the contact handler.
func NewHandler(opts HandlerOptions) *Handler {
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &Handler{
		sender:   opts.Sender,
		limiter:  opts.Limiter,
		recorder: opts.Recorder,
		logger:   logging.NewComponentLogger(opts.Logger, "contact"),
		maxBody:  maxBody,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type okResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	ctx := services.WithRequestID(r.Context(), requestID)
	ctx = services.WithOperation(ctx, "contact.send")
	logger := logging.WithContext(ctx, h.logger)

	defer func() {
		if rec := recover(); rec != nil {
			logging.ErrorWithContext(logger, "contact handler panic", "contact_panic",
				logging.String("panic", fmt.Sprint(rec)))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgServerError})
		}
	}()

	setCORSHeaders(w, r)
	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", allowedMethods)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: msgMethodBlocked})
		return
	}

	client := clientKey(r)
	if !h.limiter.Allow(client) {
		logging.WarnWithContext(logger, "contact request rate limited", "contact_rate_limited",
			logging.String("client", client),
			logging.String(logging.FieldImpact, "request rejected with 429"),
			logging.String(logging.FieldErrorHint, "raise contact.rate_limit_rps if legitimate traffic is blocked"))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: msgTooManyReqs})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: msgBodyTooLarge})
			return
		}
		body = nil
	}

	sub := ParseSubmission(bytes.TrimSpace(body))
	if err := sub.Validate(); err != nil {
		logger.Info("contact submission rejected", logging.String("reason", services.UserMessage(err)))
		writeJSON(w, services.HTTPStatus(err), errorResponse{Error: services.UserMessage(err)})
		return
	}

	msg := NewMessage(sub)
	if msg.IsSpam() {
		logger.Info("contact honeypot filled; dropping submission", logging.String("email", msg.Email))
		h.record(ctx, logger, msg, archive.StatusSpam, Receipt{}, nil)
		writeJSON(w, http.StatusOK, okResponse{OK: true})
		return
	}

	started := time.Now()
	receipt, err := h.sender.Send(ctx, msg)
	if err != nil {
		h.record(ctx, logger, msg, archive.StatusFailed, Receipt{}, err)
		h.writeSendError(w, logger, err)
		return
	}

	logger.Info("contact message delivered",
		logging.String("provider", h.sender.Name()),
		logging.String("upstream_id", receipt.ID),
		logging.Duration("elapsed", time.Since(started)))
	h.record(ctx, logger, msg, archive.StatusSent, receipt, nil)
	writeJSON(w, http.StatusOK, okResponse{OK: true, ID: receipt.ID})
}

func (h *Handler) writeSendError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := services.HTTPStatus(err)
	resp := errorResponse{Error: services.UserMessage(err)}
	var provider *ProviderError
	if errors.As(err, &provider) {
		resp.Details = provider.Details
	}
	if status == http.StatusInternalServerError && !errors.Is(err, services.ErrConfiguration) {
		resp = errorResponse{Error: msgServerError}
	}
	logging.ErrorWithContext(logger, "contact delivery failed", "contact_send_failed",
		logging.String("provider", h.sender.Name()),
		logging.String("error_kind", services.Kind(err)),
		logging.Int("status", status),
		logging.Error(err))
	writeJSON(w, status, resp)
}

func (h *Handler) record(ctx context.Context, logger *slog.Logger, msg Message, status string, receipt Receipt, sendErr error) {
	if h.recorder == nil {
		return
	}
	requestID, _ := services.RequestIDFromContext(ctx)
	entry := archive.Submission{
		RequestID:  requestID,
		Nome:       msg.Nome,
		Email:      msg.Email,
		Telefone:   msg.Telefone,
		Assunto:    msg.Assunto,
		Mensagem:   msg.Mensagem,
		Provider:   h.sender.Name(),
		Status:     status,
		UpstreamID: receipt.ID,
	}
	if sendErr != nil {
		entry.Error = sendErr.Error()
	}
	if _, err := h.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.WarnWithContext(logger, "contact archive write failed", "contact_archive_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "submission was handled but not archived"),
			logging.String(logging.FieldErrorHint, "check contact.archive_path permissions"))
	}
}

func setCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = "*"
	}
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", origin)
	h.Add("Vary", "Origin")
	h.Set("Access-Control-Allow-Methods", allowedMethods)
	h.Set("Access-Control-Allow-Headers", allowedHeaders)
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}
