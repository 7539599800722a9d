// ABOUTME: Read-only rollups over the finance, pipeline and inbox slices
// ABOUTME: Invoice status is taken as stored; nothing is derived from dates
package state

import (
	"github.com/harperreed/echoes/models"
	"github.com/shopspring/decimal"
)

type FinanceSummary struct {
	Revenue     decimal.Decimal `json:"revenue"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Expenses    decimal.Decimal `json:"expenses"`
	Net         decimal.Decimal `json:"net"`
}

// FinanceSummary totals paid invoices as revenue, pending and overdue
// invoices as outstanding, and all expenses. Net is revenue less expenses.
func (s *State) FinanceSummary() FinanceSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := FinanceSummary{Revenue: decimal.Zero, Outstanding: decimal.Zero, Expenses: decimal.Zero}
	for _, inv := range s.Invoices.items {
		switch inv.Status {
		case models.InvoicePaid:
			sum.Revenue = sum.Revenue.Add(inv.Amount)
		case models.InvoicePending, models.InvoiceOverdue:
			sum.Outstanding = sum.Outstanding.Add(inv.Amount)
		}
	}
	for _, exp := range s.Expenses.items {
		sum.Expenses = sum.Expenses.Add(exp.Amount)
	}
	sum.Net = sum.Revenue.Sub(sum.Expenses)
	return sum
}

type StageTotal struct {
	Stage models.DealStage `json:"stage"`
	Count int              `json:"count"`
	Value decimal.Decimal  `json:"value"`
}

// Pipeline returns one total per deal stage in board order. Deals with an
// unknown stage are not counted.
func (s *State) Pipeline() []StageTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make([]StageTotal, len(models.DealStages))
	index := make(map[models.DealStage]int, len(models.DealStages))
	for i, stage := range models.DealStages {
		totals[i] = StageTotal{Stage: stage, Value: decimal.Zero}
		index[stage] = i
	}
	for _, d := range s.Deals.items {
		if i, ok := index[d.Stage]; ok {
			totals[i].Count++
			totals[i].Value = totals[i].Value.Add(d.Value)
		}
	}
	return totals
}

// ConversationMessages returns a conversation's messages oldest first.
func (s *State) ConversationMessages(conversationID string) []models.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Message
	for _, m := range s.Messages.items {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out
}
