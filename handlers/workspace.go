// ABOUTME: Workspace settings MCP tool handlers
// ABOUTME: Implements toggle_module, set_appearance, checkout_plan and get_account
package handlers

import (
	"context"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type WorkspaceHandlers struct {
	state *state.State
}

func NewWorkspaceHandlers(st *state.State) *WorkspaceHandlers {
	return &WorkspaceHandlers{state: st}
}

type ToggleModuleInput struct {
	Module string `json:"module" validate:"required" jsonschema:"Module identifier, e.g. crm, invoicing, bookings (required)"`
}

type ToggleModuleOutput struct {
	Module  string   `json:"module"`
	Enabled bool     `json:"enabled"`
	Modules []string `json:"modules"`
}

func (h *WorkspaceHandlers) ToggleModule(_ context.Context, _ *mcp.CallToolRequest, input ToggleModuleInput) (*mcp.CallToolResult, ToggleModuleOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ToggleModuleOutput{}, err
	}

	enabled := h.state.ToggleModule(input.Module)
	return nil, ToggleModuleOutput{
		Module:  input.Module,
		Enabled: enabled,
		Modules: h.state.EnabledModules(),
	}, nil
}

type SetAppearanceInput struct {
	Theme  string `json:"theme,omitempty" validate:"omitempty,oneof=light dark" jsonschema:"light or dark"`
	Accent string `json:"accent,omitempty" validate:"omitempty,oneof=indigo blue emerald rose amber violet" jsonschema:"Accent palette"`
}

type AppearanceOutput struct {
	Theme  string            `json:"theme"`
	Accent string            `json:"accent"`
	Vars   map[string]string `json:"vars"`
}

func (h *WorkspaceHandlers) SetAppearance(_ context.Context, _ *mcp.CallToolRequest, input SetAppearanceInput) (*mcp.CallToolResult, AppearanceOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, AppearanceOutput{}, err
	}

	if input.Theme != "" && models.Theme(input.Theme) != h.state.Theme() {
		h.state.ToggleTheme()
	}
	if input.Accent != "" {
		h.state.SetAccentColor(models.AccentColor(input.Accent))
	}

	return nil, AppearanceOutput{
		Theme:  string(h.state.Theme()),
		Accent: string(h.state.AccentColor()),
		Vars:   h.state.AccentVars(),
	}, nil
}

type CheckoutInput struct {
	Plan string `json:"plan" validate:"required,oneof=Starter Pro Business" jsonschema:"Target plan (required)"`
}

type AccountOutput struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Plan      string   `json:"plan"`
	Price     string   `json:"price"`
	AICredits int      `json:"ai_credits"`
	Unlimited bool     `json:"unlimited"`
	Modules   []string `json:"modules"`
}

func (h *WorkspaceHandlers) CheckoutPlan(ctx context.Context, _ *mcp.CallToolRequest, input CheckoutInput) (*mcp.CallToolResult, AccountOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, AccountOutput{}, err
	}
	if err := h.state.Checkout(ctx, models.Plan(input.Plan)); err != nil {
		return nil, AccountOutput{}, err
	}
	return nil, h.account(), nil
}

type GetAccountInput struct{}

func (h *WorkspaceHandlers) GetAccount(_ context.Context, _ *mcp.CallToolRequest, _ GetAccountInput) (*mcp.CallToolResult, AccountOutput, error) {
	return nil, h.account(), nil
}

func (h *WorkspaceHandlers) account() AccountOutput {
	profile := h.state.Profile.Get()
	plan := h.state.Plan()
	return AccountOutput{
		Name:      profile.Name,
		Email:     profile.Email,
		Plan:      string(plan),
		Price:     money(plan.Price()),
		AICredits: profile.AICredits,
		Unlimited: !plan.MeteredCredits(),
		Modules:   h.state.EnabledModules(),
	}
}
