// ABOUTME: Builds the MCP server with every workspace tool, resource and prompt
// ABOUTME: Transport is chosen by the caller; the CLI runs it on stdio
package handlers

import (
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer registers all handlers against st.
func NewServer(st *state.State, version string) *mcp.Server {
	deals := NewDealHandlers(st)
	contacts := NewContactHandlers(st)
	finance := NewFinanceHandlers(st)
	workspace := NewWorkspaceHandlers(st)
	comms := NewCommsHandlers(st)
	ai := NewAIHandlers(st)
	resources := NewResourceHandlers(st)
	prompts := NewPromptHandlers(st)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "echoes",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: "add_deal", Description: "Add a deal to the sales pipeline"}, deals.AddDeal)
	mcp.AddTool(server, &mcp.Tool{Name: "find_deals", Description: "Search deals by title, company or stage"}, deals.FindDeals)
	mcp.AddTool(server, &mcp.Tool{Name: "update_deal_stage", Description: "Move a deal to another pipeline stage"}, deals.UpdateDealStage)
	mcp.AddTool(server, &mcp.Tool{Name: "delete_deal", Description: "Delete a deal"}, deals.DeleteDeal)
	mcp.AddTool(server, &mcp.Tool{Name: "get_pipeline", Description: "Deal count and value per pipeline stage"}, deals.GetPipeline)

	mcp.AddTool(server, &mcp.Tool{Name: "add_contact", Description: "Add a contact, creating the company by name if needed"}, contacts.AddContact)
	mcp.AddTool(server, &mcp.Tool{Name: "find_contacts", Description: "Search contacts by name, email or company"}, contacts.FindContacts)
	mcp.AddTool(server, &mcp.Tool{Name: "delete_contact", Description: "Delete a contact"}, contacts.DeleteContact)
	mcp.AddTool(server, &mcp.Tool{Name: "add_company", Description: "Add a company"}, contacts.AddCompany)
	mcp.AddTool(server, &mcp.Tool{Name: "find_companies", Description: "Search companies by name, industry or website"}, contacts.FindCompanies)

	mcp.AddTool(server, &mcp.Tool{Name: "add_invoice", Description: "Create an invoice"}, finance.AddInvoice)
	mcp.AddTool(server, &mcp.Tool{Name: "set_invoice_status", Description: "Mark an invoice Paid, Pending or Overdue"}, finance.SetInvoiceStatus)
	mcp.AddTool(server, &mcp.Tool{Name: "list_invoices", Description: "List invoices, optionally filtered by status or client"}, finance.ListInvoices)
	mcp.AddTool(server, &mcp.Tool{Name: "add_expense", Description: "Record an expense"}, finance.AddExpense)
	mcp.AddTool(server, &mcp.Tool{Name: "get_finance_summary", Description: "Revenue, outstanding, expenses and net"}, finance.GetFinanceSummary)

	mcp.AddTool(server, &mcp.Tool{Name: "toggle_module", Description: "Enable or disable a workspace module"}, workspace.ToggleModule)
	mcp.AddTool(server, &mcp.Tool{Name: "set_appearance", Description: "Set the theme and accent palette"}, workspace.SetAppearance)
	mcp.AddTool(server, &mcp.Tool{Name: "checkout_plan", Description: "Pay for and switch the subscription plan"}, workspace.CheckoutPlan)
	mcp.AddTool(server, &mcp.Tool{Name: "get_account", Description: "Profile, plan, AI credits and enabled modules"}, workspace.GetAccount)

	mcp.AddTool(server, &mcp.Tool{Name: "send_email", Description: "Send an email through the configured provider"}, comms.SendEmail)
	mcp.AddTool(server, &mcp.Tool{Name: "trigger_integration", Description: "Run an action on a connected integration"}, comms.TriggerIntegration)
	mcp.AddTool(server, &mcp.Tool{Name: "connect_integration", Description: "Connect an integration, adding it if unknown"}, comms.ConnectIntegration)
	mcp.AddTool(server, &mcp.Tool{Name: "disconnect_integration", Description: "Disconnect an integration"}, comms.DisconnectIntegration)
	mcp.AddTool(server, &mcp.Tool{Name: "list_integrations", Description: "List integrations and their status"}, comms.ListIntegrations)
	mcp.AddTool(server, &mcp.Tool{Name: "add_message", Description: "Add a message to an inbox conversation"}, comms.AddMessage)
	mcp.AddTool(server, &mcp.Tool{Name: "toggle_star_file", Description: "Star or unstar a file"}, comms.ToggleStarFile)

	mcp.AddTool(server, &mcp.Tool{Name: "ask_ai", Description: "Ask the AI assistant (uses one credit on Starter)"}, ai.AskAI)
	mcp.AddTool(server, &mcp.Tool{Name: "scan_receipt", Description: "Extract and record an expense from receipt text (uses one credit on Starter)"}, ai.ScanReceipt)

	for _, r := range resources.Resources() {
		server.AddResource(r, resources.ReadResource)
	}
	for _, p := range prompts.Prompts() {
		server.AddPrompt(p, prompts.GetPrompt)
	}

	return server
}
