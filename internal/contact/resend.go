package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"greenline/internal/config"
	"greenline/internal/services"
)

const providerResend = "resend"

// ResendSender delivers messages through the Resend email API.
type ResendSender struct {
	cfg    config.Resend
	client *http.Client
}

// NewResendSender builds a sender. A nil client gets a default timeout.
func NewResendSender(cfg config.Resend, client *http.Client) *ResendSender {
	return &ResendSender{cfg: cfg, client: clientOrDefault(client)}
}

func (s *ResendSender) Name() string { return providerResend }

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to"`
	BCC     []string `json:"bcc,omitempty"`
}

// Send posts msg to {base_url}/emails.
func (s *ResendSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	apiKey := strings.TrimSpace(s.cfg.APIKey)
	if apiKey == "" {
		return Receipt{}, services.Wrap(services.ErrConfiguration, "contact", "resend send",
			"RESEND_API_KEY não configurada no servidor.", nil)
	}

	html, text, err := renderBodies(msg)
	if err != nil {
		return Receipt{}, services.Wrap(services.ErrInternal, "contact", "resend render",
			"Erro no servidor ao enviar e-mail", err)
	}

	body, err := json.Marshal(resendPayload{
		From:    s.cfg.From,
		To:      s.cfg.To,
		Subject: msg.Subject,
		HTML:    html,
		Text:    text,
		ReplyTo: msg.Email,
		BCC:     s.cfg.BCC,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("marshal resend payload: %w", err)
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/emails"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, upstreamFailure(providerResend, 0, err.Error(), err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Receipt{}, upstreamFailure(providerResend, 0, err.Error(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		details := readDetails(resp)
		_ = resp.Body.Close()
		return Receipt{}, upstreamFailure(providerResend, resp.StatusCode, details, nil)
	}
	defer drain(resp)

	var decoded struct {
		ID string `json:"id"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return Receipt{ID: decoded.ID}, nil
}
