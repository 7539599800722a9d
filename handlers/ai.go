// ABOUTME: AI MCP tool handlers: ask_ai and scan_receipt
// ABOUTME: Both spend one credit on the Starter plan and fail when none are left
package handlers

import (
	"context"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type AIHandlers struct {
	state *state.State
}

func NewAIHandlers(st *state.State) *AIHandlers {
	return &AIHandlers{state: st}
}

type AskAIInput struct {
	Prompt string `json:"prompt" validate:"required" jsonschema:"Question or instruction (required)"`
}

type AskAIOutput struct {
	Text        string          `json:"text"`
	Sources     []collab.Source `json:"sources,omitempty"`
	CreditsLeft int             `json:"credits_left"`
}

func (h *AIHandlers) AskAI(ctx context.Context, _ *mcp.CallToolRequest, input AskAIInput) (*mcp.CallToolResult, AskAIOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, AskAIOutput{}, err
	}

	c, err := h.state.Generate(ctx, input.Prompt)
	if err != nil {
		return nil, AskAIOutput{}, err
	}
	return nil, AskAIOutput{Text: c.Text, Sources: c.Sources, CreditsLeft: h.state.AICredits()}, nil
}

type ScanReceiptInput struct {
	Receipt string `json:"receipt" validate:"required" jsonschema:"Receipt text, e.g. OCR output (required)"`
}

func (h *AIHandlers) ScanReceipt(ctx context.Context, _ *mcp.CallToolRequest, input ScanReceiptInput) (*mcp.CallToolResult, ExpenseOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ExpenseOutput{}, err
	}

	exp, err := h.state.ScanExpense(ctx, input.Receipt)
	if err != nil {
		return nil, ExpenseOutput{}, err
	}
	return nil, expenseToOutput(exp), nil
}
