// ABOUTME: Tests for the real transports against local fakes
// ABOUTME: SMTP dial is stubbed, SendGrid and Gmail hit httptest servers, Stripe uses a mock backend
package collab

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/echoes/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/form"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/genai"
)

func TestSMTPSenderBuildsMessage(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	s := &SMTPSender{dial: func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}}

	cfg := models.EmailConfig{
		Provider:    models.EmailProviderSMTP,
		FromAddress: "me@echoes.test",
		FromName:    "Echoes",
		SMTPHost:    "mail.echoes.test",
		SMTPUser:    "me",
	}
	require.NoError(t, s.Send(context.Background(), cfg, Email{To: "you@x.test", Subject: "Hello", Body: "Body text"}))

	assert.Equal(t, "mail.echoes.test:587", gotAddr)
	assert.Equal(t, "me@echoes.test", gotFrom)
	assert.Equal(t, []string{"you@x.test"}, gotTo)
	assert.Contains(t, string(gotMsg), "From: \"Echoes\" <me@echoes.test>\r\n")
	assert.Contains(t, string(gotMsg), "Subject: Hello\r\n")
	assert.True(t, strings.HasSuffix(string(gotMsg), "\r\n\r\nBody text"))
}

func TestSMTPSenderRejectsHeaderLineBreaks(t *testing.T) {
	dialed := false
	s := &SMTPSender{dial: func(string, smtp.Auth, string, []string, []byte) error {
		dialed = true
		return nil
	}}
	cfg := models.EmailConfig{Provider: models.EmailProviderSMTP, FromAddress: "me@echoes.test", SMTPHost: "mail.echoes.test"}

	err := s.Send(context.Background(), cfg, Email{To: "you@x.test", Subject: "hi\r\nBcc: victim@evil.test", Body: "x"})
	assert.ErrorIs(t, err, ErrHeaderInjection)
	assert.False(t, dialed)

	cfg.FromName = "Echoes\nBcc: victim@evil.test"
	err = s.Send(context.Background(), cfg, Email{To: "you@x.test", Subject: "hi"})
	assert.ErrorIs(t, err, ErrHeaderInjection)
	assert.False(t, dialed)
}

func TestBuildMIMEEncodesNonASCIISubject(t *testing.T) {
	raw, err := BuildMIME(models.EmailConfig{FromAddress: "me@echoes.test"}, Email{To: "you@x.test", Subject: "Café ☕", Body: "x"})
	require.NoError(t, err)

	assert.Contains(t, string(raw), "Subject: =?utf-8?q?")
	assert.NotContains(t, string(raw), "Café")
}

func TestSMTPSenderRequiresHost(t *testing.T) {
	err := NewSMTPSender().Send(context.Background(), models.EmailConfig{Provider: models.EmailProviderSMTP}, Email{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestSendGridSender(t *testing.T) {
	var auth string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewSendGridSender(5 * time.Second)
	s.Endpoint = srv.URL

	cfg := models.EmailConfig{Provider: models.EmailProviderSendGrid, SendGridAPIKey: "SG.key", FromAddress: "me@echoes.test"}
	require.NoError(t, s.Send(context.Background(), cfg, Email{To: "you@x.test", Subject: "Hi", Body: "Yo"}))

	assert.Equal(t, "Bearer SG.key", auth)
	assert.Equal(t, "Hi", body["subject"])
	from := body["from"].(map[string]any)
	assert.Equal(t, "me@echoes.test", from["email"])
}

func TestSendGridSenderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewSendGridSender(5 * time.Second)
	s.Endpoint = srv.URL

	err := s.Send(context.Background(), models.EmailConfig{SendGridAPIKey: "bad"}, Email{To: "a@b.co"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	err = s.Send(context.Background(), models.EmailConfig{}, Email{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestGmailSender(t *testing.T) {
	var path string
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var m struct {
			Raw string `json:"raw"`
		}
		_ = json.NewDecoder(r.Body).Decode(&m)
		raw = m.Raw
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"msg-1"}`)
	}))
	defer srv.Close()

	g, err := NewGmailSenderWithOptions(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)

	cfg := models.EmailConfig{Provider: models.EmailProviderGmail, FromAddress: "me@gmail.test"}
	require.NoError(t, g.Send(context.Background(), cfg, Email{To: "you@x.test", Subject: "Ping", Body: "pong"}))

	assert.Contains(t, path, "users/me/messages/send")
	decoded, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(decoded), "Subject: Ping")
}

func TestNewGmailSenderRequiresToken(t *testing.T) {
	_, err := NewGmailSender(context.Background(), NewOAuthConfig("id", "secret"), nil)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	token := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, token))
	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestOAuthConfigFallsBackToEnv(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "env-id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "env-secret")

	cfg := NewOAuthConfig("", "")
	assert.Equal(t, "env-id", cfg.ClientID)
	assert.Equal(t, "env-secret", cfg.ClientSecret)
	assert.Len(t, cfg.Scopes, 1)

	assert.Equal(t, "explicit", NewOAuthConfig("explicit", "s").ClientID)
}

// mockBackend implements stripe.Backend for testing
type mockBackend struct {
	handler func(method, path string, params stripe.ParamsContainer) ([]byte, error)
}

func (m *mockBackend) Call(method, path, key string, params stripe.ParamsContainer, v stripe.LastResponseSetter) error {
	data, err := m.handler(method, path, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (m *mockBackend) CallStreaming(method, path, key string, params stripe.ParamsContainer, v stripe.StreamingLastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallRaw(method, path, key string, body *form.Values, params *stripe.Params, v stripe.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) CallMultipart(method, path, key, boundary string, body *bytes.Buffer, params *stripe.Params, v stripe.LastResponseSetter) error {
	return nil
}

func (m *mockBackend) SetMaxNetworkRetries(maxNetworkRetries int64) {}

func TestStripeProcessorCharge(t *testing.T) {
	var got *stripe.PaymentIntentParams
	backend := &mockBackend{handler: func(method, path string, params stripe.ParamsContainer) ([]byte, error) {
		assert.Equal(t, http.MethodPost, method)
		assert.Equal(t, "/v1/payment_intents", path)
		got = params.(*stripe.PaymentIntentParams)
		return []byte(`{"id":"pi_123","status":"succeeded"}`), nil
	}}

	p, err := NewStripeProcessorWithBackend(StripeConfig{SecretKey: "sk_test_123", PaymentMethod: "pm_card_visa"}, backend, nil)
	require.NoError(t, err)

	r, err := p.Charge(context.Background(), Charge{Amount: decimal.RequireFromString("29.00"), Description: "Pro plan"})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", r.Reference)

	require.NotNil(t, got)
	assert.Equal(t, int64(2900), *got.Amount)
	assert.Equal(t, "usd", *got.Currency)
	assert.True(t, *got.Confirm)
	assert.Equal(t, "pm_card_visa", *got.PaymentMethod)
	assert.NotNil(t, got.IdempotencyKey)
}

func TestStripeProcessorDeclined(t *testing.T) {
	backend := &mockBackend{handler: func(string, string, stripe.ParamsContainer) ([]byte, error) {
		return []byte(`{"id":"pi_456","status":"requires_payment_method"}`), nil
	}}

	p, err := NewStripeProcessorWithBackend(StripeConfig{SecretKey: "sk_test_123"}, backend, nil)
	require.NoError(t, err)

	_, err = p.Charge(context.Background(), Charge{Amount: decimal.NewFromInt(99)})
	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestStripeProcessorRequiresKey(t *testing.T) {
	_, err := NewStripeProcessorWithBackend(StripeConfig{}, &mockBackend{}, nil)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	_, err := NewGeminiGenerator(context.Background(), "", "gemini-2.5-flash")
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestCompletionFromResponseCollectsSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: "Rates rose."}}},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://a.test", Title: "A"}},
					{Web: &genai.GroundingChunkWeb{URI: "https://a.test", Title: "A again"}},
					{},
					{Web: &genai.GroundingChunkWeb{URI: "https://b.test", Title: "B"}},
				},
			},
		}},
	}

	c := completionFromResponse(resp)
	assert.Equal(t, "Rates rose.", c.Text)
	assert.Equal(t, []Source{{URI: "https://a.test", Title: "A"}, {URI: "https://b.test", Title: "B"}}, c.Sources)

	assert.Empty(t, completionFromResponse(&genai.GenerateContentResponse{}).Sources)
}
