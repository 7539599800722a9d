// ABOUTME: Invoice, expense and finance summary MCP tool handlers
// ABOUTME: Invoice status is whatever the caller sets; nothing ages invoices to Overdue
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type FinanceHandlers struct {
	state *state.State
}

func NewFinanceHandlers(st *state.State) *FinanceHandlers {
	return &FinanceHandlers{state: st}
}

type AddInvoiceInput struct {
	Client string `json:"client" validate:"required" jsonschema:"Client name (required)"`
	Amount string `json:"amount" validate:"required" jsonschema:"Amount in USD (required)"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Paid Pending Overdue" jsonschema:"Paid, Pending or Overdue (default Pending)"`
	Date   string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"Issue date YYYY-MM-DD (default today)"`
}

type InvoiceOutput struct {
	ID     string `json:"id"`
	Client string `json:"client"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

func (h *FinanceHandlers) AddInvoice(_ context.Context, _ *mcp.CallToolRequest, input AddInvoiceInput) (*mcp.CallToolResult, InvoiceOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, InvoiceOutput{}, err
	}

	amount, err := parseMoney("amount", input.Amount)
	if err != nil {
		return nil, InvoiceOutput{}, err
	}

	status := models.InvoiceStatus(input.Status)
	if status == "" {
		status = models.InvoicePending
	}
	date := input.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	inv, err := h.state.Invoices.Add(models.Invoice{
		Client: input.Client,
		Amount: amount,
		Status: status,
		Date:   date,
	})
	if err != nil {
		return nil, InvoiceOutput{}, err
	}
	return nil, invoiceToOutput(inv), nil
}

type SetInvoiceStatusInput struct {
	ID     string `json:"id" validate:"required" jsonschema:"Invoice ID (required)"`
	Status string `json:"status" validate:"required,oneof=Paid Pending Overdue" jsonschema:"New status (required)"`
}

func (h *FinanceHandlers) SetInvoiceStatus(_ context.Context, _ *mcp.CallToolRequest, input SetInvoiceStatusInput) (*mcp.CallToolResult, InvoiceOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, InvoiceOutput{}, err
	}

	inv, ok := h.state.Invoices.Get(input.ID)
	if !ok {
		return nil, InvoiceOutput{}, fmt.Errorf("invoice not found: %s", input.ID)
	}
	inv.Status = models.InvoiceStatus(input.Status)
	if err := h.state.Invoices.Update(inv); err != nil {
		return nil, InvoiceOutput{}, err
	}
	return nil, invoiceToOutput(inv), nil
}

type ListInvoicesInput struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=Paid Pending Overdue" jsonschema:"Filter by status"`
	Client string `json:"client,omitempty" jsonschema:"Filter by exact client name"`
}

type ListInvoicesOutput struct {
	Invoices []InvoiceOutput `json:"invoices"`
}

func (h *FinanceHandlers) ListInvoices(_ context.Context, _ *mcp.CallToolRequest, input ListInvoicesInput) (*mcp.CallToolResult, ListInvoicesOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ListInvoicesOutput{}, err
	}

	out := ListInvoicesOutput{Invoices: []InvoiceOutput{}}
	for _, inv := range h.state.Invoices.List() {
		if input.Status != "" && string(inv.Status) != input.Status {
			continue
		}
		if input.Client != "" && inv.Client != input.Client {
			continue
		}
		out.Invoices = append(out.Invoices, invoiceToOutput(inv))
	}
	return nil, out, nil
}

type AddExpenseInput struct {
	Description string `json:"description" validate:"required" jsonschema:"What was bought (required)"`
	Amount      string `json:"amount" validate:"required" jsonschema:"Amount in USD (required)"`
	Category    string `json:"category,omitempty" jsonschema:"Expense category"`
	Vendor      string `json:"vendor,omitempty" jsonschema:"Vendor name"`
	Date        string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02" jsonschema:"Date YYYY-MM-DD (default today)"`
}

type ExpenseOutput struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Vendor      string `json:"vendor,omitempty"`
}

func (h *FinanceHandlers) AddExpense(_ context.Context, _ *mcp.CallToolRequest, input AddExpenseInput) (*mcp.CallToolResult, ExpenseOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ExpenseOutput{}, err
	}

	amount, err := parseMoney("amount", input.Amount)
	if err != nil {
		return nil, ExpenseOutput{}, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	category := input.Category
	if category == "" {
		category = "Uncategorized"
	}

	exp, err := h.state.Expenses.Add(models.Expense{
		Description: input.Description,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Vendor:      input.Vendor,
	})
	if err != nil {
		return nil, ExpenseOutput{}, err
	}
	return nil, expenseToOutput(exp), nil
}

type FinanceSummaryInput struct{}

type FinanceSummaryOutput struct {
	Revenue     string `json:"revenue"`
	Outstanding string `json:"outstanding"`
	Expenses    string `json:"expenses"`
	Net         string `json:"net"`
}

func (h *FinanceHandlers) GetFinanceSummary(_ context.Context, _ *mcp.CallToolRequest, _ FinanceSummaryInput) (*mcp.CallToolResult, FinanceSummaryOutput, error) {
	sum := h.state.FinanceSummary()
	return nil, FinanceSummaryOutput{
		Revenue:     money(sum.Revenue),
		Outstanding: money(sum.Outstanding),
		Expenses:    money(sum.Expenses),
		Net:         money(sum.Net),
	}, nil
}

func invoiceToOutput(inv models.Invoice) InvoiceOutput {
	return InvoiceOutput{
		ID:     inv.ID,
		Client: inv.Client,
		Amount: money(inv.Amount),
		Status: string(inv.Status),
		Date:   inv.Date,
	}
}

func expenseToOutput(e models.Expense) ExpenseOutput {
	return ExpenseOutput{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      money(e.Amount),
		Date:        e.Date,
		Vendor:      e.Vendor,
	}
}
