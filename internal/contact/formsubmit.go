package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"greenline/internal/config"
)

const providerFormSubmit = "formsubmit"

// FormSubmitSender forwards messages to FormSubmit.
type FormSubmitSender struct {
	cfg    config.FormSubmit
	client *http.Client
}

// NewFormSubmitSender builds a sender. A nil client gets a default timeout.
func NewFormSubmitSender(cfg config.FormSubmit, client *http.Client) *FormSubmitSender {
	return &FormSubmitSender{cfg: cfg, client: clientOrDefault(client)}
}

func (s *FormSubmitSender) Name() string { return providerFormSubmit }

// formFields returns the FormSubmit form in a stable order.
func formFields(msg Message) [][2]string {
	return [][2]string{
		{"nome", msg.Nome},
		{"email", msg.Email},
		{"telefone", msg.Telefone},
		{"assunto", msg.Assunto},
		{"mensagem", msg.Mensagem},
		{"_subject", msg.Subject},
		{"_replyto", msg.Email},
		{"_template", "table"},
		{"_captcha", "false"},
		{"_honey", msg.Honey},
	}
}

// Send posts msg to the AJAX endpoint, then to the plain form endpoint when
// the first attempt fails and fallback is enabled.
func (s *FormSubmitSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	receipt, err := s.sendAjax(ctx, msg)
	if err == nil || !s.cfg.Fallback || strings.TrimSpace(s.cfg.FallbackEndpoint) == "" {
		return receipt, err
	}
	if ctx.Err() != nil {
		return Receipt{}, err
	}
	if fbErr := s.sendForm(ctx, msg); fbErr != nil {
		return Receipt{}, fbErr
	}
	return Receipt{}, nil
}

func (s *FormSubmitSender) sendAjax(ctx context.Context, msg Message) (Receipt, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range formFields(msg) {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(kv[0])
		val, _ := json.Marshal(kv[1])
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.AjaxEndpoint, &buf)
	if err != nil {
		return Receipt{}, upstreamFailure(providerFormSubmit, 0, err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Receipt{}, upstreamFailure(providerFormSubmit, 0, err.Error(), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		details := readDetails(resp)
		_ = resp.Body.Close()
		return Receipt{}, upstreamFailure(providerFormSubmit, resp.StatusCode, details, nil)
	}
	defer drain(resp)

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	// FormSubmit reports rejected forms with a 200 and success "false".
	if success, _ := decoded["success"].(string); success == "false" {
		return Receipt{}, upstreamFailure(providerFormSubmit, resp.StatusCode, decoded["message"], nil)
	}
	return Receipt{}, nil
}

// sendForm issues the fallback form post. Any response counts as delivered.
func (s *FormSubmitSender) sendForm(ctx context.Context, msg Message) error {
	values := url.Values{}
	for _, kv := range formFields(msg) {
		values.Set(kv[0], kv[1])
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.FallbackEndpoint,
		strings.NewReader(values.Encode()))
	if err != nil {
		return upstreamFailure(providerFormSubmit, 0, err.Error(), err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return upstreamFailure(providerFormSubmit, 0, fmt.Sprintf("fallback: %v", err), err)
	}
	drain(resp)
	return nil
}
