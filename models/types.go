// ABOUTME: Data models for CRM and finance records
// ABOUTME: Defines Deal, Contact, Company, Invoice, Expense, Product and their enums
package models

import (
	"github.com/shopspring/decimal"
)

// DealStage is a column of the sales pipeline. Deals never move between
// stages on their own.
type DealStage string

const (
	StageLead        DealStage = "Lead"
	StageContacted   DealStage = "Contacted"
	StageProposal    DealStage = "Proposal"
	StageNegotiation DealStage = "Negotiation"
	StageClosed      DealStage = "Closed"
)

// DealStages lists the pipeline in board order.
var DealStages = []DealStage{StageLead, StageContacted, StageProposal, StageNegotiation, StageClosed}

type Deal struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Company      string          `json:"company"`
	Value        decimal.Decimal `json:"value"`
	Stage        DealStage       `json:"stage"`
	Tags         []string        `json:"tags"`
	LastActivity string          `json:"lastActivity"`
}

const (
	ContactStatusLead     = "Lead"
	ContactStatusCustomer = "Customer"
	ContactStatusChurned  = "Churned"
)

type Contact struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Company       string `json:"company,omitempty"`
	Role          string `json:"role,omitempty"`
	Status        string `json:"status"`
	LastContacted string `json:"lastContacted,omitempty"`
}

type Company struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	Employees int    `json:"employees,omitempty"`
	Status    string `json:"status,omitempty"`
}

// InvoiceStatus is always set by the caller. Nothing compares Date against
// the clock to flip a Pending invoice to Overdue.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePending InvoiceStatus = "Pending"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

// Invoice.Client is matched against contact and company names by string
// equality; it is not a foreign key and may not resolve.
type Invoice struct {
	ID     string          `json:"id"`
	Client string          `json:"client"`
	Amount decimal.Decimal `json:"amount"`
	Status InvoiceStatus   `json:"status"`
	Date   string          `json:"date"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Vendor      string          `json:"vendor,omitempty"`
}

type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Stock    int             `json:"stock"`
	Category string          `json:"category,omitempty"`
}

// IsValidStage reports whether stage is one of the pipeline columns.
func IsValidStage(stage DealStage) bool {
	for _, s := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsValidInvoiceStatus reports whether status is Paid, Pending or Overdue.
func IsValidInvoiceStatus(status InvoiceStatus) bool {
	switch status {
	case InvoicePaid, InvoicePending, InvoiceOverdue:
		return true
	}
	return false
}
