// ABOUTME: MCP prompt handlers for reusable workspace workflows
// ABOUTME: Prompts are built from live state: deal review, follow-up drafting, weekly review
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	state *state.State
}

func NewPromptHandlers(st *state.State) *PromptHandlers {
	return &PromptHandlers{state: st}
}

// Prompts lists the prompt templates the server advertises.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{Name: "deal-analysis", Description: "Review the sales pipeline and suggest where to focus"},
		{
			Name:        "follow-up-email",
			Description: "Draft a follow-up email to a contact",
			Arguments: []*mcp.PromptArgument{
				{Name: "contact_id", Description: "Contact to write to", Required: true},
			},
		},
		{Name: "weekly-review", Description: "Summarize finances, open tasks and unread conversations"},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "deal-analysis":
		return h.dealAnalysis(), nil
	case "follow-up-email":
		return h.followUpEmail(request.Params.Arguments)
	case "weekly-review":
		return h.weeklyReview(), nil
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) dealAnalysis() *mcp.GetPromptResult {
	var b strings.Builder
	b.WriteString("Here is my sales pipeline:\n\n")
	for _, t := range h.state.Pipeline() {
		fmt.Fprintf(&b, "- %s: %d deals, $%s\n", t.Stage, t.Count, money(t.Value))
	}
	b.WriteString("\nOpen deals:\n")
	for _, d := range h.state.Deals.List() {
		if d.Stage == models.StageClosed {
			continue
		}
		fmt.Fprintf(&b, "- %s (%s) $%s, %s, last activity %s\n", d.Title, d.Company, money(d.Value), d.Stage, d.LastActivity)
	}
	b.WriteString("\nWhich deals should I prioritize this week, and what is the next step for each?")

	return textPrompt("Pipeline review", b.String())
}

func (h *PromptHandlers) followUpEmail(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["contact_id"]
	if !ok || id == "" {
		return nil, fmt.Errorf("contact_id is required")
	}
	contact, ok := h.state.Contacts.Get(id)
	if !ok {
		return nil, fmt.Errorf("contact not found: %s", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Draft a short, friendly follow-up email to %s", contact.Name)
	if contact.Role != "" {
		fmt.Fprintf(&b, " (%s", contact.Role)
		if contact.Company != "" {
			fmt.Fprintf(&b, " at %s", contact.Company)
		}
		b.WriteString(")")
	}
	b.WriteString(".\n")
	if contact.LastContacted != "" {
		fmt.Fprintf(&b, "We last spoke %s.\n", contact.LastContacted)
	}
	for _, d := range h.state.Deals.List() {
		if contact.Company != "" && d.Company == contact.Company {
			fmt.Fprintf(&b, "Related deal: %s at stage %s.\n", d.Title, d.Stage)
		}
	}
	b.WriteString("Keep it under 120 words and end with a clear next step.")

	return textPrompt(fmt.Sprintf("Follow-up for %s", contact.Name), b.String()), nil
}

func (h *PromptHandlers) weeklyReview() *mcp.GetPromptResult {
	sum := h.state.FinanceSummary()

	var b strings.Builder
	b.WriteString("Weekly business review.\n\n")
	fmt.Fprintf(&b, "Revenue: $%s\nOutstanding: $%s\nExpenses: $%s\nNet: $%s\n",
		money(sum.Revenue), money(sum.Outstanding), money(sum.Expenses), money(sum.Net))

	b.WriteString("\nOpen tasks:\n")
	for _, t := range h.state.Tasks.List() {
		if t.Status != models.TaskDone {
			fmt.Fprintf(&b, "- %s [%s] %s\n", t.Title, t.Status, t.Assignee)
		}
	}

	b.WriteString("\nUnread conversations:\n")
	for _, c := range h.state.Conversations.List() {
		if c.Unread {
			fmt.Fprintf(&b, "- %s via %s: %q\n", c.Name, c.Channel, c.LastMessage)
		}
	}
	b.WriteString("\nWhat needs my attention first?")

	return textPrompt("Weekly review", b.String())
}

func textPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
