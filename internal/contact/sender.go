package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greenline/internal/config"
	"greenline/internal/services"
)

const (
	userAgent       = "Greenline-Relay/1.0"
	maxDetailsBytes = 4096
	sendFailed      = "Falha ao enviar e-mail"
)

// Sender delivers a contact message through an email provider.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// Receipt describes an accepted message.
type Receipt struct {
	// ID is the provider's message identifier, empty when the provider does not return one.
	ID string
}

// ProviderError carries the upstream response that caused a send to fail.
type ProviderError struct {
	Provider string
	Status   int
	// Details is the raw provider body when it is JSON, otherwise its text.
	Details any

	cause error
}

func (e *ProviderError) Unwrap() error { return e.cause }

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s responded with status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Details)
}

// NewSender builds the Sender selected by contact.provider.
func NewSender(cfg *config.Config) (Sender, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout()}
	switch cfg.Contact.Provider {
	case config.ProviderResend:
		return NewResendSender(cfg.Contact.Resend, client), nil
	case config.ProviderFormSubmit:
		return NewFormSubmitSender(cfg.Contact.FormSubmit, client), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "contact", "new sender",
			fmt.Sprintf("Provedor de contato desconhecido: %s", cfg.Contact.Provider), nil)
	}
}

func upstreamFailure(provider string, status int, details any, cause error) error {
	return services.Wrap(services.ErrUpstream, "contact", provider+" send", sendFailed,
		&ProviderError{Provider: provider, Status: status, Details: details, cause: cause})
}

// readDetails returns the response body as raw JSON when it parses, else as trimmed text.
func readDetails(resp *http.Response) any {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailsBytes))
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return http.StatusText(resp.StatusCode)
	}
	if json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed)
	}
	return trimmed
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDetailsBytes))
	_ = resp.Body.Close()
}

func clientOrDefault(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: 15 * time.Second}
}
