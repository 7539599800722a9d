// ABOUTME: Contact and company MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, delete_contact, add_company and find_companies
package handlers

import (
	"context"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ContactHandlers struct {
	state *state.State
}

func NewContactHandlers(st *state.State) *ContactHandlers {
	return &ContactHandlers{state: st}
}

type AddContactInput struct {
	Name    string `json:"name" validate:"required" jsonschema:"Contact name (required)"`
	Email   string `json:"email,omitempty" validate:"omitempty,email" jsonschema:"Contact email address"`
	Phone   string `json:"phone,omitempty" jsonschema:"Contact phone number"`
	Company string `json:"company,omitempty" jsonschema:"Company name (matched by name, created if missing)"`
	Role    string `json:"role,omitempty" jsonschema:"Job title"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=Lead Customer Churned" jsonschema:"Lead, Customer or Churned (default Lead)"`
}

type ContactOutput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Company       string `json:"company,omitempty"`
	Role          string `json:"role,omitempty"`
	Status        string `json:"status"`
	LastContacted string `json:"last_contacted,omitempty"`
}

func (h *ContactHandlers) AddContact(_ context.Context, _ *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, ContactOutput{}, err
	}

	status := input.Status
	if status == "" {
		status = models.ContactStatusLead
	}

	if input.Company != "" && !h.companyExists(input.Company) {
		if _, err := h.state.Companies.Add(models.Company{Name: input.Company, Status: "Prospect"}); err != nil {
			return nil, ContactOutput{}, err
		}
	}

	contact, err := h.state.Contacts.Add(models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Company: input.Company,
		Role:    input.Role,
		Status:  status,
	})
	if err != nil {
		return nil, ContactOutput{}, err
	}
	return nil, contactToOutput(contact), nil
}

// companyExists matches by exact name; companies have no foreign key.
func (h *ContactHandlers) companyExists(name string) bool {
	for _, c := range h.state.Companies.List() {
		if c.Name == name {
			return true
		}
	}
	return false
}

type FindContactsInput struct {
	Query   string `json:"query,omitempty" jsonschema:"Search query (searches name and email)"`
	Company string `json:"company,omitempty" jsonschema:"Filter by exact company name"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, _ *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := limitOrDefault(input.Limit)
	out := FindContactsOutput{Contacts: []ContactOutput{}}
	for _, c := range h.state.Contacts.List() {
		if input.Company != "" && c.Company != input.Company {
			continue
		}
		if input.Query != "" && !containsFold(c.Name, input.Query) && !containsFold(c.Email, input.Query) {
			continue
		}
		out.Contacts = append(out.Contacts, contactToOutput(c))
		if len(out.Contacts) == limit {
			break
		}
	}
	return nil, out, nil
}

func (h *ContactHandlers) DeleteContact(_ context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, DeleteOutput{}, err
	}
	return nil, DeleteOutput{Deleted: h.state.Contacts.Delete(input.ID)}, nil
}

type AddCompanyInput struct {
	Name      string `json:"name" validate:"required" jsonschema:"Company name (required)"`
	Industry  string `json:"industry,omitempty" jsonschema:"Industry"`
	Website   string `json:"website,omitempty" jsonschema:"Website domain"`
	Employees int    `json:"employees,omitempty" validate:"gte=0" jsonschema:"Headcount"`
}

type CompanyOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	Employees int    `json:"employees,omitempty"`
	Status    string `json:"status,omitempty"`
}

func (h *ContactHandlers) AddCompany(_ context.Context, _ *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, CompanyOutput{}, err
	}

	company, err := h.state.Companies.Add(models.Company{
		Name:      input.Name,
		Industry:  input.Industry,
		Website:   input.Website,
		Employees: input.Employees,
		Status:    "Prospect",
	})
	if err != nil {
		return nil, CompanyOutput{}, err
	}
	return nil, CompanyOutput(company), nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Matches name, industry or website"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *ContactHandlers) FindCompanies(_ context.Context, _ *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	limit := limitOrDefault(input.Limit)
	out := FindCompaniesOutput{Companies: []CompanyOutput{}}
	for _, c := range h.state.Companies.List() {
		if input.Query != "" && !containsFold(c.Name, input.Query) &&
			!containsFold(c.Industry, input.Query) && !containsFold(c.Website, input.Query) {
			continue
		}
		out.Companies = append(out.Companies, CompanyOutput(c))
		if len(out.Companies) == limit {
			break
		}
	}
	return nil, out, nil
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Company:       c.Company,
		Role:          c.Role,
		Status:        c.Status,
		LastContacted: c.LastContacted,
	}
}
