// ABOUTME: Invoice, expense and finance summary CLI commands
// ABOUTME: Amounts are parsed as decimals so cents never drift
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
)

// AddInvoiceCommand records a new invoice.
func AddInvoiceCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("add-invoice", flag.ExitOnError)
	client := fs.String("client", "", "Client name (required)")
	amount := fs.String("amount", "", "Invoice amount in USD (required)")
	status := fs.String("status", string(models.InvoicePending), "Paid, Pending or Overdue")
	date := fs.String("date", "", "Issue date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *client == "" {
		return fmt.Errorf("--client is required")
	}
	if *amount == "" {
		return fmt.Errorf("--amount is required")
	}
	if !models.IsValidInvoiceStatus(models.InvoiceStatus(*status)) {
		return fmt.Errorf("invalid --status %q", *status)
	}
	if *date != "" {
		if err := validate.Var(*date, "datetime=2006-01-02"); err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD")
		}
	}
	value, err := parseAmount("amount", *amount)
	if err != nil {
		return err
	}

	inv, err := st.Invoices.Add(models.Invoice{
		Client: *client,
		Amount: value,
		Status: models.InvoiceStatus(*status),
		Date:   *date,
	})
	if err != nil {
		return err
	}

	printf("✓ Invoice created for %s: %s (%s)\n", inv.Client, dollars(inv.Amount), inv.Status)
	printf("  ID: %s\n", inv.ID)
	return nil
}

// ListInvoicesCommand lists invoices, optionally filtered by status.
func ListInvoicesCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("list-invoices", flag.ExitOnError)
	status := fs.String("status", "", "Filter by status")
	_ = fs.Parse(args)

	var invoices []models.Invoice
	for _, inv := range st.Invoices.List() {
		if *status != "" && string(inv.Status) != *status {
			continue
		}
		invoices = append(invoices, inv)
	}

	if len(invoices) == 0 {
		outln("No invoices found")
		return nil
	}

	w := newTable("ID\tCLIENT\tAMOUNT\tSTATUS\tDATE", "--\t------\t------\t------\t----")
	for _, inv := range invoices {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(inv.ID), inv.Client, dollars(inv.Amount), inv.Status, dashIfEmpty(inv.Date))
	}
	_ = w.Flush()

	printf("\nTotal: %d invoice(s)\n", len(invoices))
	return nil
}

// AddExpenseCommand records a new expense.
func AddExpenseCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("add-expense", flag.ExitOnError)
	desc := fs.String("description", "", "What was bought (required)")
	amount := fs.String("amount", "", "Amount in USD (required)")
	category := fs.String("category", "Uncategorized", "Expense category")
	vendor := fs.String("vendor", "", "Vendor name")
	date := fs.String("date", "", "Date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	if *desc == "" {
		return fmt.Errorf("--description is required")
	}
	if *amount == "" {
		return fmt.Errorf("--amount is required")
	}
	value, err := parseAmount("amount", *amount)
	if err != nil {
		return err
	}

	exp, err := st.Expenses.Add(models.Expense{
		Description: *desc,
		Category:    *category,
		Amount:      value,
		Vendor:      *vendor,
		Date:        *date,
	})
	if err != nil {
		return err
	}

	printf("✓ Expense recorded: %s %s (ID: %s)\n", exp.Description, dollars(exp.Amount), exp.ID)
	return nil
}

// SummaryCommand prints revenue, outstanding, expenses and net.
func SummaryCommand(st *state.State, _ []string) error {
	sum := st.FinanceSummary()

	outln("Finance Summary")
	outln("───────────────")
	printf("Revenue:     %s\n", dollars(sum.Revenue))
	printf("Outstanding: %s\n", dollars(sum.Outstanding))
	printf("Expenses:    %s\n", dollars(sum.Expenses))
	printf("Net:         %s\n", dollars(sum.Net))
	return nil
}
