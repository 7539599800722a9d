// ABOUTME: Credit-gated AI operations: free-form generation and receipt scanning
// ABOUTME: A credit spent on a call that later fails is not refunded
package state

import (
	"context"
	"fmt"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"go.uber.org/zap"
)

// Generate spends a credit and asks the AI collaborator for a completion.
// It returns ErrNoAICredits without calling out when no credit is left.
func (s *State) Generate(ctx context.Context, prompt string) (collab.Completion, error) {
	if !s.ConsumeAICredit() {
		return collab.Completion{}, ErrNoAICredits
	}

	completion, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("AI generation failed", zap.Error(err))
		return collab.Completion{}, fmt.Errorf("generate: %w", err)
	}
	return completion, nil
}

// ScanExpense extracts an expense from receipt text and records it. A
// completion that does not hold a usable JSON object is returned as an
// error wrapping collab.ErrMalformedScan and records nothing.
func (s *State) ScanExpense(ctx context.Context, receipt string) (models.Expense, error) {
	completion, err := s.Generate(ctx, collab.ScanPrompt+receipt)
	if err != nil {
		return models.Expense{}, err
	}

	scan, err := collab.ParseScan(completion.Text)
	if err != nil {
		return models.Expense{}, err
	}

	exp := models.Expense{
		Description: scan.Description,
		Category:    scan.Category,
		Amount:      scan.Amount,
		Date:        scan.Date,
		Vendor:      scan.Vendor,
	}
	if exp.Description == "" {
		exp.Description = scan.Vendor
	}
	if exp.Category == "" {
		exp.Category = "Uncategorized"
	}
	if exp.Date == "" {
		exp.Date = s.now().Format("2006-01-02")
	}
	return s.Expenses.Add(exp)
}
