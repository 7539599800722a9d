// ABOUTME: Gmail API transport for the "gmail" email provider
// ABOUTME: Sends base64url-encoded MIME through users.messages.send
package collab

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/harperreed/echoes/models"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender sends as the authenticated Google account.
type GmailSender struct {
	service *gmail.Service
}

// NewGmailSender builds a Gmail service from an OAuth token.
func NewGmailSender(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token) (*GmailSender, error) {
	if token == nil {
		return nil, errors.New("token cannot be nil")
	}
	return NewGmailSenderWithOptions(ctx, option.WithHTTPClient(cfg.Client(ctx, token)))
}

// NewGmailSenderWithOptions builds a Gmail service from raw client options.
func NewGmailSenderWithOptions(ctx context.Context, opts ...option.ClientOption) (*GmailSender, error) {
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &GmailSender{service: service}, nil
}

func (g *GmailSender) Send(ctx context.Context, cfg models.EmailConfig, msg Email) error {
	mimeMsg, err := BuildMIME(cfg, msg)
	if err != nil {
		return err
	}
	raw := base64.URLEncoding.EncodeToString(mimeMsg)
	_, err = g.service.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}
