// ABOUTME: Shared fixtures for handler tests plus input validation tests
// ABOUTME: Handlers run against an in-memory workspace with zero collaborator latency
package handlers

import (
	"testing"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/persist"
	"github.com/harperreed/echoes/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestState(t *testing.T, opts ...state.Option) *state.State {
	t.Helper()
	opts = append([]state.Option{state.WithSimulatedLatency(collab.Fixed(0))}, opts...)
	return state.New(persist.New(persist.NewMemoryKV()), opts...)
}

func TestValidateInputUsesJSONNames(t *testing.T) {
	err := validateInput(AddDealInput{Stage: "Won"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title is required")
	assert.Contains(t, err.Error(), "company is required")
	assert.Contains(t, err.Error(), "stage must be one of")

	err = validateInput(SendEmailInput{To: "nope", Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to is not a valid email")

	assert.NoError(t, validateInput(AddDealInput{Title: "t", Company: "c"}))
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "0.00"},
		{in: "12000", want: "12000.00"},
		{in: "$19.99", want: "19.99"},
		{in: " 5.5 ", want: "5.50"},
		{in: "$1,250.50", want: "1250.50"},
		{in: "-1", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMoney("amount", tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, money(got))
		})
	}
}

func TestNewServerRegistersEverything(t *testing.T) {
	st := setupTestState(t)
	assert.NotNil(t, NewServer(st, "test"))
}
