// ABOUTME: Email transports behind the workspace SendEmail operation
// ABOUTME: Simulated sender, provider router, SMTP and SendGrid v3 transports
package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net"
	"net/http"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/echoes/models"
)

// Email is one outgoing message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// EmailSender delivers an email using the workspace's email settings.
type EmailSender interface {
	Send(ctx context.Context, cfg models.EmailConfig, msg Email) error
}

// SimulatedEmailSender waits Latency and reports success. It still refuses
// configs that lack their provider's credential.
type SimulatedEmailSender struct {
	Latency Latency
}

// NewSimulatedEmailSender waits 1 to 2 seconds per send.
func NewSimulatedEmailSender() *SimulatedEmailSender {
	return &SimulatedEmailSender{Latency: Between(time.Second, 2*time.Second)}
}

func (s *SimulatedEmailSender) Send(ctx context.Context, cfg models.EmailConfig, _ Email) error {
	if missing := cfg.MissingCredential(); missing != "" {
		return fmt.Errorf("%w: %s", ErrMissingCredential, missing)
	}
	return wait(ctx, s.Latency)
}

// EmailRouter dispatches to a sender per provider, falling back to Default.
type EmailRouter struct {
	Providers map[string]EmailSender
	Default   EmailSender
}

func (r *EmailRouter) Send(ctx context.Context, cfg models.EmailConfig, msg Email) error {
	if sender, ok := r.Providers[cfg.Provider]; ok {
		return sender.Send(ctx, cfg, msg)
	}
	if r.Default == nil {
		return fmt.Errorf("no email transport for provider %q", cfg.Provider)
	}
	return r.Default.Send(ctx, cfg, msg)
}

// SMTPSender delivers through the configured SMTP relay with PLAIN auth.
type SMTPSender struct {
	dial func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender() *SMTPSender {
	return &SMTPSender{dial: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, cfg models.EmailConfig, msg Email) error {
	if cfg.SMTPHost == "" {
		return fmt.Errorf("%w: smtpHost", ErrMissingCredential)
	}

	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	addr := net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(port))

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}

	from := cfg.FromAddress
	if from == "" {
		from = cfg.SMTPUser
	}

	raw, err := BuildMIME(cfg, msg)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dial(addr, auth, from, []string{msg.To}, raw)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

// CheckHeaders rejects header values that carry CR or LF.
func CheckHeaders(cfg models.EmailConfig, msg Email) error {
	fields := map[string]string{
		"to":          msg.To,
		"subject":     msg.Subject,
		"fromName":    cfg.FromName,
		"fromAddress": cfg.FromAddress,
	}
	for name, v := range fields {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: %s", ErrHeaderInjection, name)
		}
	}
	return nil
}

// BuildMIME renders a plain-text RFC 5322 message. Non-ASCII subjects and
// sender names are Q-encoded.
func BuildMIME(cfg models.EmailConfig, msg Email) ([]byte, error) {
	if err := CheckHeaders(cfg, msg); err != nil {
		return nil, err
	}

	from := cfg.FromAddress
	if cfg.FromName != "" {
		from = (&mail.Address{Name: cfg.FromName, Address: cfg.FromAddress}).String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&b, "Message-ID: <%s@echoes>\r\n", uuid.NewString())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String()), nil
}

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridSender posts to the SendGrid v3 mail API.
type SendGridSender struct {
	Endpoint string
	HTTP     *http.Client
}

func NewSendGridSender(timeout time.Duration) *SendGridSender {
	return &SendGridSender{
		Endpoint: sendGridEndpoint,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridRequest struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (s *SendGridSender) Send(ctx context.Context, cfg models.EmailConfig, msg Email) error {
	if cfg.SendGridAPIKey == "" {
		return fmt.Errorf("%w: sendgridApiKey", ErrMissingCredential)
	}

	var body sendGridRequest
	body.Personalizations = make([]struct {
		To []sendGridAddress `json:"to"`
	}, 1)
	body.Personalizations[0].To = []sendGridAddress{{Email: msg.To}}
	body.From = sendGridAddress{Email: cfg.FromAddress, Name: cfg.FromName}
	body.Subject = msg.Subject
	body.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/plain", Value: msg.Body}}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SendGridAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
