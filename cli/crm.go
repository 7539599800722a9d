// ABOUTME: Deal, contact and company CLI commands
// ABOUTME: Human-friendly commands for managing the CRM slices
package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/shopspring/decimal"
)

// AddDealCommand adds a new deal.
func AddDealCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("add-deal", flag.ExitOnError)
	title := fs.String("title", "", "Deal title (required)")
	company := fs.String("company", "", "Company name (required)")
	value := fs.String("value", "", "Deal value in USD")
	stage := fs.String("stage", string(models.StageLead), "Stage (Lead, Contacted, Proposal, Negotiation, Closed)")
	tags := fs.String("tags", "", "Comma-separated tags")
	_ = fs.Parse(args)

	if *title == "" {
		return fmt.Errorf("--title is required")
	}
	if *company == "" {
		return fmt.Errorf("--company is required")
	}
	if !models.IsValidStage(models.DealStage(*stage)) {
		return fmt.Errorf("invalid --stage %q", *stage)
	}
	amount, err := parseAmount("value", *value)
	if err != nil {
		return err
	}

	deal, err := st.Deals.Add(models.Deal{
		Title:        *title,
		Company:      *company,
		Value:        amount,
		Stage:        models.DealStage(*stage),
		Tags:         splitTags(*tags),
		LastActivity: state.JustNow,
	})
	if err != nil {
		return err
	}

	printf("✓ Deal created: %s (ID: %s)\n", deal.Title, deal.ID)
	printf("  Company: %s\n", deal.Company)
	printf("  Value: %s\n", dollars(deal.Value))
	printf("  Stage: %s\n", deal.Stage)
	return nil
}

// ListDealsCommand lists deals, optionally filtered by stage.
func ListDealsCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("list-deals", flag.ExitOnError)
	stage := fs.String("stage", "", "Filter by stage")
	company := fs.String("company", "", "Filter by company name")
	_ = fs.Parse(args)

	var deals []models.Deal
	for _, d := range st.Deals.List() {
		if *stage != "" && string(d.Stage) != *stage {
			continue
		}
		if *company != "" && d.Company != *company {
			continue
		}
		deals = append(deals, d)
	}

	if len(deals) == 0 {
		outln("No deals found")
		return nil
	}

	w := newTable("TITLE\tCOMPANY\tVALUE\tSTAGE\tID", "-----\t-------\t-----\t-----\t--")
	total := decimal.Zero
	for _, d := range deals {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", d.Title, d.Company, dollars(d.Value), d.Stage, shortID(d.ID))
		total = total.Add(d.Value)
	}
	_ = w.Flush()

	printf("\nTotal: %d deal(s) - %s\n", len(deals), dollars(total))
	return nil
}

// MoveDealCommand changes a deal's stage.
func MoveDealCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("move-deal", flag.ExitOnError)
	stage := fs.String("stage", "", "New stage (required)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: move-deal --stage <stage> <id>")
	}
	if !models.IsValidStage(models.DealStage(*stage)) {
		return fmt.Errorf("invalid --stage %q", *stage)
	}

	deal, ok := st.Deals.Get(fs.Arg(0))
	if !ok {
		return fmt.Errorf("deal not found: %s", fs.Arg(0))
	}
	deal.Stage = models.DealStage(*stage)
	deal.LastActivity = state.JustNow
	if err := st.Deals.Update(deal); err != nil {
		return err
	}

	printf("✓ %s moved to %s\n", deal.Title, deal.Stage)
	return nil
}

// DeleteDealCommand deletes a deal by ID.
func DeleteDealCommand(st *state.State, args []string) error {
	return deleteRecord("deal", args, st.Deals.Delete)
}

// PipelineCommand shows deal count and value per stage.
func PipelineCommand(st *state.State, _ []string) error {
	w := newTable("STAGE\tDEALS\tVALUE", "-----\t-----\t-----")
	for _, t := range st.Pipeline() {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", t.Stage, t.Count, dollars(t.Value))
	}
	return w.Flush()
}

type contactFlags struct {
	Name   string `validate:"required"`
	Email  string `validate:"omitempty,email"`
	Status string `validate:"oneof=Lead Customer Churned"`
}

// AddContactCommand adds a new contact.
func AddContactCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	name := fs.String("name", "", "Contact name (required)")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	role := fs.String("role", "", "Job title")
	status := fs.String("status", models.ContactStatusLead, "Lead, Customer or Churned")
	_ = fs.Parse(args)

	if err := validate.Struct(contactFlags{Name: *name, Email: *email, Status: *status}); err != nil {
		return fmt.Errorf("invalid contact: %w", err)
	}

	contact, err := st.Contacts.Add(models.Contact{
		Name:    *name,
		Email:   *email,
		Phone:   *phone,
		Company: *company,
		Role:    *role,
		Status:  *status,
	})
	if err != nil {
		return err
	}

	printf("✓ Contact created: %s (ID: %s)\n", contact.Name, contact.ID)
	if contact.Company != "" {
		printf("  Company: %s\n", contact.Company)
	}
	return nil
}

// ListContactsCommand lists contacts.
func ListContactsCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or email")
	_ = fs.Parse(args)

	var contacts []models.Contact
	for _, c := range st.Contacts.List() {
		q := strings.ToLower(*query)
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) && !strings.Contains(strings.ToLower(c.Email), q) {
			continue
		}
		contacts = append(contacts, c)
	}

	if len(contacts) == 0 {
		outln("No contacts found")
		return nil
	}

	w := newTable("NAME\tEMAIL\tCOMPANY\tSTATUS\tID", "----\t-----\t-------\t------\t--")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Name, dashIfEmpty(c.Email), dashIfEmpty(c.Company), c.Status, shortID(c.ID))
	}
	return w.Flush()
}

// DeleteContactCommand deletes a contact by ID.
func DeleteContactCommand(st *state.State, args []string) error {
	return deleteRecord("contact", args, st.Contacts.Delete)
}

// ListCompaniesCommand lists companies.
func ListCompaniesCommand(st *state.State, _ []string) error {
	companies := st.Companies.List()
	if len(companies) == 0 {
		outln("No companies found")
		return nil
	}

	w := newTable("NAME\tINDUSTRY\tEMPLOYEES\tID", "----\t--------\t---------\t--")
	for _, c := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", c.Name, dashIfEmpty(c.Industry), c.Employees, shortID(c.ID))
	}
	return w.Flush()
}

func deleteRecord(kind string, args []string, del func(string) bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete-%s <id>", kind)
	}
	if !del(args[0]) {
		printf("No %s with ID %s\n", kind, args[0])
		return nil
	}
	printf("✓ Deleted %s %s\n", kind, args[0])
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
