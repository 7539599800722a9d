// ABOUTME: Tests for contact and company MCP tool handlers
// ABOUTME: Covers company auto-creation by name and search filters
package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddContactCreatesMissingCompany(t *testing.T) {
	st := setupTestState(t)
	h := NewContactHandlers(st)
	companies := st.Companies.Len()

	_, out, err := h.AddContact(context.Background(), nil, AddContactInput{
		Name:    "Jane Smith",
		Email:   "jane@newco.io",
		Company: "NewCo",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lead", out.Status)
	assert.Equal(t, companies+1, st.Companies.Len())

	_, _, err = h.AddContact(context.Background(), nil, AddContactInput{Name: "Joe", Company: "NewCo"})
	require.NoError(t, err)
	assert.Equal(t, companies+1, st.Companies.Len())
}

func TestAddContactValidation(t *testing.T) {
	h := NewContactHandlers(setupTestState(t))

	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{Name: "x", Email: "not-email"})
	assert.Error(t, err)

	_, _, err = h.AddContact(context.Background(), nil, AddContactInput{Name: "x", Status: "VIP"})
	assert.Error(t, err)
}

func TestFindContactsHandler(t *testing.T) {
	h := NewContactHandlers(setupTestState(t))

	_, out, err := h.FindContacts(context.Background(), nil, FindContactsInput{Query: "PRIYA"})
	require.NoError(t, err)
	require.Len(t, out.Contacts, 1)
	assert.Equal(t, "ct3", out.Contacts[0].ID)

	_, out, err = h.FindContacts(context.Background(), nil, FindContactsInput{Company: "Globex"})
	require.NoError(t, err)
	require.Len(t, out.Contacts, 1)
	assert.Equal(t, "Marcus Webb", out.Contacts[0].Name)
}

func TestDeleteContactHandler(t *testing.T) {
	st := setupTestState(t)
	h := NewContactHandlers(st)

	_, out, err := h.DeleteContact(context.Background(), nil, DeleteInput{ID: "ct1"})
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	_, ok := st.Contacts.Get("ct1")
	assert.False(t, ok)
}

func TestCompanyHandlers(t *testing.T) {
	h := NewContactHandlers(setupTestState(t))

	_, added, err := h.AddCompany(context.Background(), nil, AddCompanyInput{Name: "Stark", Industry: "Defense", Employees: 5000})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	_, out, err := h.FindCompanies(context.Background(), nil, FindCompaniesInput{Query: "defense"})
	require.NoError(t, err)
	require.Len(t, out.Companies, 1)
	assert.Equal(t, "Stark", out.Companies[0].Name)

	_, _, err = h.AddCompany(context.Background(), nil, AddCompanyInput{})
	assert.Error(t, err)
}
