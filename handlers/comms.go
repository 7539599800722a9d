// ABOUTME: Email, integration, inbox and file MCP tool handlers
// ABOUTME: Expected failures come back as ok=false in the output, not as tool errors
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CommsHandlers struct {
	state *state.State
}

func NewCommsHandlers(st *state.State) *CommsHandlers {
	return &CommsHandlers{state: st}
}

type SendEmailInput struct {
	To      string `json:"to" validate:"required,email" jsonschema:"Recipient address (required)"`
	Subject string `json:"subject" validate:"required" jsonschema:"Subject line (required)"`
	Body    string `json:"body" jsonschema:"Plain text body"`
}

type SendEmailOutput struct {
	Sent     bool   `json:"sent"`
	Provider string `json:"provider"`
}

func (h *CommsHandlers) SendEmail(ctx context.Context, _ *mcp.CallToolRequest, input SendEmailInput) (*mcp.CallToolResult, SendEmailOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, SendEmailOutput{}, err
	}
	return nil, SendEmailOutput{
		Sent:     h.state.SendEmail(ctx, input.To, input.Subject, input.Body),
		Provider: h.state.EmailSettings.Get().Provider,
	}, nil
}

type TriggerIntegrationInput struct {
	IntegrationID string         `json:"integration_id" validate:"required" jsonschema:"Integration ID, e.g. slack (required)"`
	Action        string         `json:"action" validate:"required" jsonschema:"Action name (required)"`
	Data          map[string]any `json:"data,omitempty" jsonschema:"Action payload"`
}

type TriggerIntegrationOutput struct {
	OK bool `json:"ok"`
}

func (h *CommsHandlers) TriggerIntegration(ctx context.Context, _ *mcp.CallToolRequest, input TriggerIntegrationInput) (*mcp.CallToolResult, TriggerIntegrationOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, TriggerIntegrationOutput{}, err
	}
	ok := h.state.TriggerIntegrationAction(ctx, input.IntegrationID, input.Action, input.Data)
	return nil, TriggerIntegrationOutput{OK: ok}, nil
}

type ConnectIntegrationInput struct {
	ID       string `json:"id" validate:"required" jsonschema:"Integration ID (required)"`
	Name     string `json:"name,omitempty" jsonschema:"Display name for new integrations"`
	Category string `json:"category,omitempty" jsonschema:"Category for new integrations"`
}

type IntegrationOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Status   string `json:"status"`
	LastSync string `json:"last_sync,omitempty"`
}

func (h *CommsHandlers) ConnectIntegration(_ context.Context, _ *mcp.CallToolRequest, input ConnectIntegrationInput) (*mcp.CallToolResult, IntegrationOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, IntegrationOutput{}, err
	}
	in := h.state.ConnectIntegration(models.Integration{ID: input.ID, Name: input.Name, Category: input.Category})
	return nil, integrationToOutput(in), nil
}

func (h *CommsHandlers) DisconnectIntegration(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, IntegrationOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, IntegrationOutput{}, err
	}
	if !h.state.DisconnectIntegration(input.ID) {
		return nil, IntegrationOutput{}, fmt.Errorf("integration not found: %s", input.ID)
	}
	in, _ := h.state.Integrations.Get(input.ID)
	return nil, integrationToOutput(in), nil
}

type ListIntegrationsInput struct{}

type ListIntegrationsOutput struct {
	Integrations []IntegrationOutput `json:"integrations"`
}

func (h *CommsHandlers) ListIntegrations(_ context.Context, _ *mcp.CallToolRequest, _ ListIntegrationsInput) (*mcp.CallToolResult, ListIntegrationsOutput, error) {
	out := ListIntegrationsOutput{Integrations: []IntegrationOutput{}}
	for _, in := range h.state.Integrations.List() {
		out.Integrations = append(out.Integrations, integrationToOutput(in))
	}
	return nil, out, nil
}

type AddMessageInput struct {
	ConversationID string `json:"conversation_id" validate:"required" jsonschema:"Conversation ID (required)"`
	Sender         string `json:"sender,omitempty" validate:"omitempty,oneof=me them" jsonschema:"me or them (default me)"`
	Text           string `json:"text" validate:"required" jsonschema:"Message text (required)"`
}

type MessageOutput struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Sender         string `json:"sender"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
	Unread         bool   `json:"conversation_unread"`
}

func (h *CommsHandlers) AddMessage(_ context.Context, _ *mcp.CallToolRequest, input AddMessageInput) (*mcp.CallToolResult, MessageOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, MessageOutput{}, err
	}

	sender := input.Sender
	if sender == "" {
		sender = models.SenderMe
	}

	msg := h.state.AddMessage(models.Message{
		ConversationID: input.ConversationID,
		Sender:         sender,
		Text:           input.Text,
		Timestamp:      state.JustNow,
	})
	conv, _ := h.state.Conversations.Get(input.ConversationID)

	return nil, MessageOutput{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Sender:         msg.Sender,
		Text:           msg.Text,
		Timestamp:      msg.Timestamp,
		Unread:         conv.Unread,
	}, nil
}

type ToggleStarInput struct {
	ID string `json:"id" validate:"required" jsonschema:"File ID (required)"`
}

type ToggleStarOutput struct {
	ID      string `json:"id"`
	Starred bool   `json:"starred"`
}

func (h *CommsHandlers) ToggleStarFile(_ context.Context, _ *mcp.CallToolRequest, input ToggleStarInput) (*mcp.CallToolResult, ToggleStarOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ToggleStarOutput{}, err
	}
	if !h.state.ToggleStarFile(input.ID) {
		return nil, ToggleStarOutput{}, fmt.Errorf("file not found: %s", input.ID)
	}
	f, _ := h.state.Files.Get(input.ID)
	return nil, ToggleStarOutput{ID: f.ID, Starred: f.Starred}, nil
}

func integrationToOutput(in models.Integration) IntegrationOutput {
	return IntegrationOutput{
		ID:       in.ID,
		Name:     in.Name,
		Category: in.Category,
		Status:   string(in.Status),
		LastSync: in.LastSync,
	}
}
