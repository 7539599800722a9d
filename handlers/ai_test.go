// ABOUTME: Tests for the ask_ai and scan_receipt handlers
// ABOUTME: Uses scripted simulated completions
package handlers

import (
	"context"
	"testing"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskAIHandlerSpendsCredits(t *testing.T) {
	st := setupTestState(t, state.WithAIGenerator(&collab.SimulatedGenerator{Replies: []string{"Try a webinar."}}))
	p := st.Profile.Get()
	p.AICredits = 1
	st.Profile.Set(p)

	h := NewAIHandlers(st)
	_, out, err := h.AskAI(context.Background(), nil, AskAIInput{Prompt: "Marketing idea?"})
	require.NoError(t, err)
	assert.Equal(t, "Try a webinar.", out.Text)
	assert.Equal(t, 0, out.CreditsLeft)

	_, _, err = h.AskAI(context.Background(), nil, AskAIInput{Prompt: "Another?"})
	assert.ErrorIs(t, err, state.ErrNoAICredits)

	require.True(t, st.SetPlan(models.PlanPro))
	_, _, err = h.AskAI(context.Background(), nil, AskAIInput{Prompt: "Another?"})
	assert.NoError(t, err)
}

func TestScanReceiptHandler(t *testing.T) {
	st := setupTestState(t, state.WithAIGenerator(&collab.SimulatedGenerator{Replies: []string{
		`{"description":"Printer ink","vendor":"Staples","category":"Office","amount":"38.99","date":"2024-06-02"}`,
		`no idea`,
	}}))
	h := NewAIHandlers(st)

	_, out, err := h.ScanReceipt(context.Background(), nil, ScanReceiptInput{Receipt: "STAPLES INK 38.99"})
	require.NoError(t, err)
	assert.Equal(t, "38.99", out.Amount)
	assert.Equal(t, "Staples", out.Vendor)

	_, _, err = h.ScanReceipt(context.Background(), nil, ScanReceiptInput{Receipt: "???"})
	assert.ErrorIs(t, err, collab.ErrMalformedScan)
}
