// ABOUTME: Tests for credit-gated generation and receipt scanning
// ABOUTME: The simulated generator replays scripted completions
package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingAI struct{}

func (failingAI) Generate(context.Context, string) (collab.Completion, error) {
	return collab.Completion{}, errors.New("quota exceeded")
}

func TestGenerateSpendsCredit(t *testing.T) {
	gen := &collab.SimulatedGenerator{Replies: []string{"A catchy tagline"}}
	s, _ := newTestState(t, WithAIGenerator(gen))
	setCredits(s, 1)

	c, err := s.Generate(context.Background(), "tagline please")
	require.NoError(t, err)
	assert.Equal(t, "A catchy tagline", c.Text)
	assert.Equal(t, 0, s.AICredits())

	_, err = s.Generate(context.Background(), "another")
	assert.ErrorIs(t, err, ErrNoAICredits)
	assert.Equal(t, 1, gen.Calls())
}

func TestGenerateUnlimitedOnPro(t *testing.T) {
	s, _ := newTestState(t)
	setCredits(s, 0)
	require.True(t, s.SetPlan(models.PlanPro))

	_, err := s.Generate(context.Background(), "hello")
	assert.NoError(t, err)
	assert.Equal(t, 0, s.AICredits())
}

func TestGenerateFailureKeepsCreditSpent(t *testing.T) {
	s, _ := newTestState(t, WithAIGenerator(failingAI{}))
	setCredits(s, 2)

	_, err := s.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, s.AICredits())
}

func TestScanExpenseRecordsExpense(t *testing.T) {
	gen := &collab.SimulatedGenerator{Replies: []string{
		"```json\n{\"description\":\"Team lunch\",\"vendor\":\"Tartine\",\"category\":\"Meals\",\"amount\":42.75,\"date\":\"2024-05-20\"}\n```",
	}}
	s, _ := newTestState(t, WithAIGenerator(gen))

	exp, err := s.ScanExpense(context.Background(), "TARTINE ... TOTAL 42.75")
	require.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, "Team lunch", exp.Description)
	assert.True(t, decimal.RequireFromString("42.75").Equal(exp.Amount))

	assert.Equal(t, exp.ID, s.Expenses.List()[0].ID)
}

func TestScanExpenseDefaults(t *testing.T) {
	gen := &collab.SimulatedGenerator{Replies: []string{`{"vendor":"Shell","amount":"60"}`}}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestState(t, WithAIGenerator(gen), WithClock(func() time.Time { return now }))

	exp, err := s.ScanExpense(context.Background(), "SHELL 60.00")
	require.NoError(t, err)
	assert.Equal(t, "Shell", exp.Description)
	assert.Equal(t, "Uncategorized", exp.Category)
	assert.Equal(t, "2024-06-01", exp.Date)
}

func TestScanExpenseMalformed(t *testing.T) {
	gen := &collab.SimulatedGenerator{Replies: []string{"Sorry, I can't read that."}}
	s, _ := newTestState(t, WithAIGenerator(gen))
	before := s.Expenses.Len()
	credits := s.AICredits()

	_, err := s.ScanExpense(context.Background(), "blurry")
	assert.ErrorIs(t, err, collab.ErrMalformedScan)
	assert.Equal(t, before, s.Expenses.Len())
	assert.Equal(t, credits-1, s.AICredits())
}
