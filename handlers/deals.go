// ABOUTME: Deal MCP tool handlers
// ABOUTME: Implements add_deal, find_deals, update_deal_stage, delete_deal and get_pipeline
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"
)

type DealHandlers struct {
	state *state.State
}

func NewDealHandlers(st *state.State) *DealHandlers {
	return &DealHandlers{state: st}
}

type AddDealInput struct {
	Title   string   `json:"title" validate:"required" jsonschema:"Deal title (required)"`
	Company string   `json:"company" validate:"required" jsonschema:"Company name (required)"`
	Value   string   `json:"value,omitempty" jsonschema:"Deal value in USD, e.g. 12000.50"`
	Stage   string   `json:"stage,omitempty" validate:"omitempty,oneof=Lead Contacted Proposal Negotiation Closed" jsonschema:"Pipeline stage (default Lead)"`
	Tags    []string `json:"tags,omitempty" jsonschema:"Free-form tags"`
}

type DealOutput struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Value        string   `json:"value"`
	Stage        string   `json:"stage"`
	Tags         []string `json:"tags,omitempty"`
	LastActivity string   `json:"last_activity,omitempty"`
}

func (h *DealHandlers) AddDeal(_ context.Context, _ *mcp.CallToolRequest, input AddDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, DealOutput{}, err
	}

	value, err := parseMoney("value", input.Value)
	if err != nil {
		return nil, DealOutput{}, err
	}

	stage := models.DealStage(input.Stage)
	if stage == "" {
		stage = models.StageLead
	}

	deal, err := h.state.Deals.Add(models.Deal{
		Title:        input.Title,
		Company:      input.Company,
		Value:        value,
		Stage:        stage,
		Tags:         input.Tags,
		LastActivity: state.JustNow,
	})
	if err != nil {
		return nil, DealOutput{}, err
	}
	return nil, dealToOutput(deal), nil
}

type FindDealsInput struct {
	Query string `json:"query,omitempty" jsonschema:"Matches title or company"`
	Stage string `json:"stage,omitempty" validate:"omitempty,oneof=Lead Contacted Proposal Negotiation Closed" jsonschema:"Filter by stage"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindDealsOutput struct {
	Deals []DealOutput `json:"deals"`
}

func (h *DealHandlers) FindDeals(_ context.Context, _ *mcp.CallToolRequest, input FindDealsInput) (*mcp.CallToolResult, FindDealsOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, FindDealsOutput{}, err
	}

	limit := limitOrDefault(input.Limit)
	out := FindDealsOutput{Deals: []DealOutput{}}
	for _, d := range h.state.Deals.List() {
		if input.Stage != "" && string(d.Stage) != input.Stage {
			continue
		}
		if input.Query != "" && !containsFold(d.Title, input.Query) && !containsFold(d.Company, input.Query) {
			continue
		}
		out.Deals = append(out.Deals, dealToOutput(d))
		if len(out.Deals) == limit {
			break
		}
	}
	return nil, out, nil
}

type UpdateDealStageInput struct {
	ID    string `json:"id" validate:"required" jsonschema:"Deal ID (required)"`
	Stage string `json:"stage" validate:"required,oneof=Lead Contacted Proposal Negotiation Closed" jsonschema:"New stage (required)"`
}

func (h *DealHandlers) UpdateDealStage(_ context.Context, _ *mcp.CallToolRequest, input UpdateDealStageInput) (*mcp.CallToolResult, DealOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, DealOutput{}, err
	}

	deal, ok := h.state.Deals.Get(input.ID)
	if !ok {
		return nil, DealOutput{}, fmt.Errorf("deal not found: %s", input.ID)
	}

	deal.Stage = models.DealStage(input.Stage)
	deal.LastActivity = state.JustNow
	if err := h.state.Deals.Update(deal); err != nil {
		return nil, DealOutput{}, err
	}
	return nil, dealToOutput(deal), nil
}

type DeleteInput struct {
	ID string `json:"id" validate:"required" jsonschema:"Record ID (required)"`
}

type DeleteOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *DealHandlers) DeleteDeal(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: h.state.Deals.Delete(input.ID)}, nil
}

type PipelineInput struct{}

type StageOutput struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
	Value string `json:"value"`
}

type PipelineOutput struct {
	Stages []StageOutput `json:"stages"`
	Total  string        `json:"total"`
}

func (h *DealHandlers) GetPipeline(_ context.Context, _ *mcp.CallToolRequest, _ PipelineInput) (*mcp.CallToolResult, PipelineOutput, error) {
	return nil, pipelineToOutput(h.state.Pipeline()), nil
}

func pipelineToOutput(totals []state.StageTotal) PipelineOutput {
	out := PipelineOutput{Stages: make([]StageOutput, len(totals))}
	sum := decimal.Zero
	for i, t := range totals {
		out.Stages[i] = StageOutput{Stage: string(t.Stage), Count: t.Count, Value: money(t.Value)}
		sum = sum.Add(t.Value)
	}
	out.Total = money(sum)
	return out
}

func dealToOutput(d models.Deal) DealOutput {
	return DealOutput{
		ID:           d.ID,
		Title:        d.Title,
		Company:      d.Company,
		Value:        money(d.Value),
		Stage:        string(d.Stage),
		Tags:         d.Tags,
		LastActivity: d.LastActivity,
	}
}
