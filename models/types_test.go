// ABOUTME: Tests for data model helpers
// ABOUTME: Covers plan metering, email credential checks and automation node variants
package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanMeteredCredits(t *testing.T) {
	assert.True(t, PlanStarter.MeteredCredits())
	assert.False(t, PlanPro.MeteredCredits())
	assert.False(t, PlanBusiness.MeteredCredits())
}

func TestPlanPrice(t *testing.T) {
	assert.True(t, PlanStarter.Price().IsZero())
	assert.True(t, PlanPro.Price().Equal(decimal.NewFromInt(29)))
	assert.True(t, PlanBusiness.Price().Equal(decimal.NewFromInt(99)))
	assert.False(t, Plan("Enterprise").IsValid())
}

func TestEmailConfigMissingCredential(t *testing.T) {
	tests := []struct {
		name string
		cfg  EmailConfig
		want string
	}{
		{"sendgrid without key", EmailConfig{Provider: EmailProviderSendGrid}, "sendgridApiKey"},
		{"sendgrid with key", EmailConfig{Provider: EmailProviderSendGrid, SendGridAPIKey: "SG.x"}, ""},
		{"smtp without host", EmailConfig{Provider: EmailProviderSMTP, SMTPUser: "u"}, "smtpHost"},
		{"smtp with host", EmailConfig{Provider: EmailProviderSMTP, SMTPHost: "mail.example.com"}, ""},
		{"no provider", EmailConfig{Provider: EmailProviderNone}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MissingCredential())
		})
	}
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestAutomationNodeDecodesConfigByType(t *testing.T) {
	raw := `[
		{"id":"n1","type":"trigger","label":"New lead","x":10,"y":20,"next":["n2"],"config":{"event":"deal.created"}},
		{"id":"n2","type":"delay","label":"Wait","x":10,"y":80,"config":{"minutes":30}},
		{"id":"n3","type":"action","label":"Notify","x":10,"y":140,"config":{"action":"post","integrationId":"slack"}}
	]`

	var nodes []AutomationNode
	require.NoError(t, json.Unmarshal([]byte(raw), &nodes))
	require.Len(t, nodes, 3)

	assert.Equal(t, TriggerConfig{Event: "deal.created"}, nodes[0].Config)
	assert.Equal(t, []string{"n2"}, nodes[0].Next)
	assert.Equal(t, DelayConfig{Minutes: 30}, nodes[1].Config)
	assert.Equal(t, ActionConfig{Action: "post", IntegrationID: "slack"}, nodes[2].Config)

	out, err := json.Marshal(nodes)
	require.NoError(t, err)

	var again []AutomationNode
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, nodes, again)
}

func TestAutomationNodeRejectsUnknownType(t *testing.T) {
	var n AutomationNode
	err := json.Unmarshal([]byte(`{"id":"x","type":"webhook"}`), &n)
	assert.Error(t, err)
}

func TestAutomationNodeRejectsMismatchedConfig(t *testing.T) {
	n := AutomationNode{ID: "x", Type: NodeTrigger, Config: DelayConfig{Minutes: 5}}
	_, err := json.Marshal(n)
	assert.Error(t, err)
}

func TestAutomationNodeWithoutConfig(t *testing.T) {
	var n AutomationNode
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","type":"condition","label":"If"}`), &n))
	assert.Nil(t, n.Config)
	assert.Equal(t, NodeCondition, n.Type)
}

func TestIsValidStage(t *testing.T) {
	assert.True(t, IsValidStage(StageNegotiation))
	assert.False(t, IsValidStage("Won"))
	assert.True(t, IsValidInvoiceStatus(InvoiceOverdue))
	assert.False(t, IsValidInvoiceStatus("Void"))
}

func TestAutomationNodeValidate(t *testing.T) {
	assert.NoError(t, AutomationNode{ID: "a", Type: NodeAction, Config: ActionConfig{Action: "post"}}.Validate())
	assert.NoError(t, AutomationNode{ID: "b", Type: NodeDelay}.Validate())

	err := AutomationNode{ID: "c"}.Validate()
	assert.ErrorIs(t, err, ErrInvalidNode)

	err = AutomationNode{ID: "d", Type: NodeTrigger, Config: DelayConfig{Minutes: 5}}.Validate()
	assert.ErrorIs(t, err, ErrInvalidNode)

	_, err = json.Marshal(AutomationNode{ID: "e", Type: "webhook"})
	assert.ErrorIs(t, err, ErrInvalidNode)
}
