// ABOUTME: Tests for the finance and pipeline rollups
// ABOUTME: Expected totals are computed from the seed data
package state

import (
	"testing"

	"github.com/harperreed/echoes/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceSummaryFromSeeds(t *testing.T) {
	s, _ := newTestState(t)
	sum := s.FinanceSummary()

	assert.True(t, decimal.RequireFromString("4500").Equal(sum.Revenue), sum.Revenue.String())
	assert.True(t, decimal.RequireFromString("13750").Equal(sum.Outstanding), sum.Outstanding.String())
	assert.True(t, decimal.RequireFromString("131.40").Equal(sum.Expenses), sum.Expenses.String())
	assert.True(t, decimal.RequireFromString("4368.60").Equal(sum.Net), sum.Net.String())
}

func TestFinanceSummaryIgnoresDates(t *testing.T) {
	s, _ := newTestState(t)
	_, _ = s.Invoices.Add(models.Invoice{ID: "old", Amount: decimal.NewFromInt(100), Status: models.InvoicePending, Date: "1999-01-01"})

	inv, _ := s.Invoices.Get("old")
	assert.Equal(t, models.InvoicePending, inv.Status)
	assert.True(t, decimal.RequireFromString("13850").Equal(s.FinanceSummary().Outstanding))
}

func TestPipelineInStageOrder(t *testing.T) {
	s, _ := newTestState(t)
	_, _ = s.Deals.Add(models.Deal{Title: "Extra lead", Value: decimal.NewFromInt(500), Stage: models.StageLead})
	_, _ = s.Deals.Add(models.Deal{Title: "Weird", Value: decimal.NewFromInt(1), Stage: "Lost"})

	totals := s.Pipeline()
	require.Len(t, totals, len(models.DealStages))
	for i, stage := range models.DealStages {
		assert.Equal(t, stage, totals[i].Stage)
	}

	assert.Equal(t, 2, totals[0].Count)
	assert.True(t, decimal.NewFromInt(4000).Equal(totals[0].Value))
	assert.Equal(t, 1, totals[4].Count)
	assert.True(t, decimal.NewFromInt(65000).Equal(totals[4].Value))
}
