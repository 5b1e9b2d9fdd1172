// Package mailer sends transactional email through the Resend HTTP API.
// Without an API key it degrades to logging, which is what local
// development wants anyway.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"paylink/internal/config"
	"paylink/internal/logger"
)

const resendEndpoint = "https://api.resend.com/emails"

// Mailer delivers transactional email.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

type resendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

type logMailer struct{}

// New returns a Resend-backed mailer when RESEND_API_KEY is set,
// otherwise a mailer that only logs the code.
func New() Mailer {
	apiKey := config.GetEnv("RESEND_API_KEY", "")
	if apiKey == "" {
		logger.Warn("RESEND_API_KEY not set, verification codes will be logged instead of emailed")
		return &logMailer{}
	}
	return &resendMailer{
		apiKey: apiKey,
		from:   config.GetEnv("MAIL_FROM", "PayLink <noreply@paylink.app>"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *resendMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body, err := json.Marshal(sendRequest{
		From:    m.from,
		To:      []string{to},
		Subject: "Your verification code",
		HTML:    fmt.Sprintf("<p>Your verification code is <strong>%s</strong>. It expires in 1 hour.</p>", code),
	})
	if err != nil {
		return fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func (m *logMailer) SendVerificationCode(_ context.Context, to, code string) error {
	logger.Infof("verification code for %s: %s", to, code)
	return nil
}
