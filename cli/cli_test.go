// ABOUTME: Tests for the CLI subcommands
// ABOUTME: Runs each command against an in-memory workspace and inspects its output
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/persist"
	"github.com/harperreed/echoes/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCLI(t *testing.T, opts ...state.Option) (*state.State, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	prev := stdout
	stdout = buf
	t.Cleanup(func() { stdout = prev })

	opts = append([]state.Option{state.WithSimulatedLatency(collab.Fixed(0))}, opts...)
	return state.New(persist.New(persist.NewMemoryKV()), opts...), buf
}

func TestAddDealCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	err := AddDealCommand(st, []string{"--title", "Big Deal", "--company", "Acme Corp", "--value", "2500.50", "--stage", "Proposal", "--tags", "a, b,"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ Deal created: Big Deal")
	assert.Contains(t, out.String(), "$2500.50")

	deals := st.Deals.List()
	assert.Equal(t, "Big Deal", deals[0].Title)
	assert.Equal(t, []string{"a", "b"}, deals[0].Tags)
	assert.True(t, decimal.RequireFromString("2500.5").Equal(deals[0].Value))
}

func TestAddDealCommandValidation(t *testing.T) {
	st, _ := setupTestCLI(t)
	before := st.Deals.Len()

	assert.Error(t, AddDealCommand(st, []string{"--company", "Acme"}))
	assert.Error(t, AddDealCommand(st, []string{"--title", "X"}))
	assert.Error(t, AddDealCommand(st, []string{"--title", "X", "--company", "Y", "--stage", "Won"}))
	assert.Error(t, AddDealCommand(st, []string{"--title", "X", "--company", "Y", "--value", "-5"}))
	assert.Error(t, AddDealCommand(st, []string{"--title", "X", "--company", "Y", "--value", "lots"}))
	assert.Equal(t, before, st.Deals.Len())
}

func TestListDealsCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, ListDealsCommand(st, nil))
	assert.Contains(t, out.String(), "Website Redesign")
	assert.Contains(t, out.String(), "Total: 5 deal(s) - $146500.00")

	out.Reset()
	require.NoError(t, ListDealsCommand(st, []string{"--stage", "Closed"}))
	assert.Contains(t, out.String(), "Mobile App MVP")
	assert.NotContains(t, out.String(), "Website Redesign")

	out.Reset()
	require.NoError(t, ListDealsCommand(st, []string{"--company", "Nobody"}))
	assert.Equal(t, "No deals found\n", out.String())
}

func TestMoveDealCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, MoveDealCommand(st, []string{"--stage", "Closed", "d1"}))
	assert.Contains(t, out.String(), "Website Redesign moved to Closed")

	deal, ok := st.Deals.Get("d1")
	require.True(t, ok)
	assert.Equal(t, models.StageClosed, deal.Stage)
	assert.Equal(t, state.JustNow, deal.LastActivity)

	assert.Error(t, MoveDealCommand(st, []string{"--stage", "Closed", "missing"}))
	assert.Error(t, MoveDealCommand(st, []string{"--stage", "Won", "d1"}))
	assert.Error(t, MoveDealCommand(st, []string{"--stage", "Closed"}))
}

func TestDeleteDealCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, DeleteDealCommand(st, []string{"d2"}))
	assert.Contains(t, out.String(), "✓ Deleted deal d2")
	_, ok := st.Deals.Get("d2")
	assert.False(t, ok)

	out.Reset()
	require.NoError(t, DeleteDealCommand(st, []string{"d2"}))
	assert.Contains(t, out.String(), "No deal with ID d2")

	assert.Error(t, DeleteDealCommand(st, nil))
}

func TestPipelineCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, PipelineCommand(st, nil))
	assert.Contains(t, out.String(), "Negotiation")
	assert.Contains(t, out.String(), "$48000.00")
}

func TestContactCommands(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, AddContactCommand(st, []string{"--name", "Dana Scully", "--email", "dana@fbi.gov", "--company", "FBI"}))
	assert.Contains(t, out.String(), "✓ Contact created: Dana Scully")
	assert.Contains(t, out.String(), "Company: FBI")

	assert.Error(t, AddContactCommand(st, []string{"--email", "dana@fbi.gov"}))
	assert.Error(t, AddContactCommand(st, []string{"--name", "X", "--email", "not-an-email"}))
	assert.Error(t, AddContactCommand(st, []string{"--name", "X", "--status", "Friend"}))

	out.Reset()
	require.NoError(t, ListContactsCommand(st, []string{"--query", "SCULLY"}))
	assert.Contains(t, out.String(), "dana@fbi.gov")
	assert.NotContains(t, out.String(), "Sarah Chen")

	out.Reset()
	require.NoError(t, ListContactsCommand(st, []string{"--query", "zzz"}))
	assert.Equal(t, "No contacts found\n", out.String())

	require.NoError(t, DeleteContactCommand(st, []string{"ct1"}))
	_, ok := st.Contacts.Get("ct1")
	assert.False(t, ok)
}

func TestListCompaniesCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, ListCompaniesCommand(st, nil))
	assert.Contains(t, out.String(), "Globex")
	assert.Contains(t, out.String(), "1200")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "$0.00"},
		{in: "900", want: "$900.00"},
		{in: "$900", want: "$900.00"},
		{in: "$1,250.5", want: "$1250.50"},
		{in: "-3", wantErr: true},
		{in: "$-3", wantErr: true},
		{in: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount("amount", tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, dollars(got))
		})
	}
}

func TestInvoiceCommands(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, AddInvoiceCommand(st, []string{"--client", "Hooli", "--amount", "$900", "--status", "Paid", "--date", "2024-06-01"}))
	assert.Contains(t, out.String(), "✓ Invoice created for Hooli: $900.00 (Paid)")

	out.Reset()
	require.NoError(t, SummaryCommand(st, nil))
	assert.Contains(t, out.String(), "Revenue:     $5400.00")
	assert.Contains(t, out.String(), "Outstanding: $13750.00")

	assert.Error(t, AddInvoiceCommand(st, []string{"--amount", "1"}))
	assert.Error(t, AddInvoiceCommand(st, []string{"--client", "X"}))
	assert.Error(t, AddInvoiceCommand(st, []string{"--client", "X", "--amount", "1", "--status", "Lost"}))
	assert.Error(t, AddInvoiceCommand(st, []string{"--client", "X", "--amount", "1", "--date", "June 1"}))

	out.Reset()
	require.NoError(t, ListInvoicesCommand(st, []string{"--status", "Overdue"}))
	assert.Contains(t, out.String(), "Initech")
	assert.Contains(t, out.String(), "Total: 1 invoice(s)")
}

func TestAddExpenseCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, AddExpenseCommand(st, []string{"--description", "Laptop stand", "--amount", "68.60"}))
	assert.Contains(t, out.String(), "Laptop stand $68.60")

	out.Reset()
	require.NoError(t, SummaryCommand(st, nil))
	assert.Contains(t, out.String(), "Expenses:    $200.00")
	assert.Contains(t, out.String(), "Net:         $4300.00")

	assert.Error(t, AddExpenseCommand(st, []string{"--amount", "1"}))
}

func TestWorkspaceCommands(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, ToggleModuleCommand(st, []string{"crm"}))
	assert.Contains(t, out.String(), "crm disabled")
	assert.False(t, st.IsModuleEnabled("crm"))

	out.Reset()
	require.NoError(t, ModulesCommand(st, nil))
	assert.NotContains(t, out.String(), "crm")
	assert.Contains(t, out.String(), "invoicing")

	out.Reset()
	require.NoError(t, ThemeCommand(st, []string{"--toggle"}))
	assert.Contains(t, out.String(), "Theme set to dark")
	assert.Equal(t, models.ThemeDark, st.Theme())

	require.NoError(t, AccentCommand(st, []string{"Rose"}))
	assert.Equal(t, models.AccentRose, st.AccentColor())
	assert.Error(t, AccentCommand(st, []string{"plaid"}))
}

func TestPlanAndCheckoutCommands(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, PlanCommand(st, nil))
	assert.Contains(t, out.String(), "Plan:    Starter ($0.00/mo)")
	assert.Contains(t, out.String(), "Credits: 10")

	require.NoError(t, CheckoutCommand(st, []string{"Pro"}))
	assert.Equal(t, models.PlanPro, st.Plan())

	out.Reset()
	require.NoError(t, PlanCommand(st, nil))
	assert.Contains(t, out.String(), "Credits: unlimited")

	err := CheckoutCommand(st, []string{"Enterprise"})
	assert.ErrorIs(t, err, state.ErrUnknownPlan)
	assert.Equal(t, models.PlanPro, st.Plan())
}

func TestIntegrationCommands(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, IntegrationsCommand(st, nil))
	assert.Contains(t, out.String(), "QuickBooks")

	out.Reset()
	require.NoError(t, ConnectCommand(st, []string{"--name", "Notion", "--category", "Docs", "notion"}))
	assert.Contains(t, out.String(), "✓ Connected Notion")
	in, ok := st.Integrations.Get("notion")
	require.True(t, ok)
	assert.Equal(t, models.IntegrationConnected, in.Status)

	out.Reset()
	require.NoError(t, TriggerCommand(st, []string{"--data", `{"channel":"#general"}`, "slack", "post"}))
	assert.Contains(t, out.String(), "✓ slack post triggered")

	out.Reset()
	require.NoError(t, TriggerCommand(st, []string{"mailchimp", "sync"}))
	assert.Contains(t, out.String(), "✗ mailchimp sync failed")

	assert.Error(t, TriggerCommand(st, []string{"--data", "[1]", "slack", "post"}))

	out.Reset()
	require.NoError(t, DisconnectCommand(st, []string{"notion"}))
	assert.Contains(t, out.String(), "✓ Disconnected notion")
}

func TestSendEmailCommand(t *testing.T) {
	st, out := setupTestCLI(t)

	require.NoError(t, SendEmailCommand(st, []string{"--to", "sarah@acme.com", "--subject", "Hi"}))
	assert.Contains(t, out.String(), "✓ Email sent to sarah@acme.com")

	out.Reset()
	require.NoError(t, SendEmailCommand(st, []string{"--to", "nope"}))
	assert.Contains(t, out.String(), "✗ Email to nope was not sent")

	assert.Error(t, SendEmailCommand(st, nil))
}

func TestAskCommand(t *testing.T) {
	gen := &collab.SimulatedGenerator{Latency: collab.Fixed(0)}
	st, out := setupTestCLI(t, state.WithAIGenerator(gen))

	require.NoError(t, AskCommand(st, []string{"draft", "a", "pitch"}))
	assert.Contains(t, out.String(), "draft a pitch")
	assert.Equal(t, 9, st.AICredits())

	assert.Error(t, AskCommand(st, []string{"  "}))
}

func TestScanCommand(t *testing.T) {
	gen := &collab.SimulatedGenerator{
		Latency: collab.Fixed(0),
		Replies: []string{`{"description":"Coffee","vendor":"Blue Bottle","amount":"6.50","date":"2024-06-02"}`},
	}
	st, out := setupTestCLI(t, state.WithAIGenerator(gen))

	path := filepath.Join(t.TempDir(), "receipt.txt")
	require.NoError(t, os.WriteFile(path, []byte("BLUE BOTTLE 6.50"), 0o600))

	require.NoError(t, ScanCommand(st, []string{"--file", path}))
	assert.Contains(t, out.String(), "✓ Expense recorded: Coffee $6.50 (Uncategorized)")
	assert.Equal(t, "Coffee", st.Expenses.List()[0].Description)

	assert.Error(t, ScanCommand(st, nil))
	assert.Error(t, ScanCommand(st, []string{"--file", filepath.Join(t.TempDir(), "missing")}))
}
