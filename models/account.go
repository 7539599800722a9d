// ABOUTME: Account-level models: profile, plan, team, integrations and email settings
// ABOUTME: Also defines the theme and accent color enums used by the appearance layer
package models

import "github.com/shopspring/decimal"

// Plan is the subscription tier. Starter is the initial state; every
// transition is an unconditional overwrite.
type Plan string

const (
	PlanStarter  Plan = "Starter"
	PlanPro      Plan = "Pro"
	PlanBusiness Plan = "Business"
)

// Plans lists the tiers from cheapest to most expensive.
var Plans = []Plan{PlanStarter, PlanPro, PlanBusiness}

// MeteredCredits reports whether AI actions on this plan draw from the
// profile's credit balance. Pro and Business are unlimited.
func (p Plan) MeteredCredits() bool {
	return p == PlanStarter
}

// Price returns the monthly price in USD.
func (p Plan) Price() decimal.Decimal {
	switch p {
	case PlanPro:
		return decimal.NewFromInt(29)
	case PlanBusiness:
		return decimal.NewFromInt(99)
	default:
		return decimal.Zero
	}
}

// IsValid reports whether p is a known plan.
func (p Plan) IsValid() bool {
	for _, known := range Plans {
		if p == known {
			return true
		}
	}
	return false
}

type UserProfile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	AICredits int    `json:"aiCredits"`
}

type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "connected"
	IntegrationDisconnected IntegrationStatus = "disconnected"
	IntegrationError        IntegrationStatus = "error"
)

type Integration struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category,omitempty"`
	Status   IntegrationStatus `json:"status"`
	LastSync string            `json:"lastSync,omitempty"`
}

// Email providers.
const (
	EmailProviderNone     = "none"
	EmailProviderSendGrid = "sendgrid"
	EmailProviderSMTP     = "smtp"
	EmailProviderGmail    = "gmail"
)

type EmailConfig struct {
	Provider       string `json:"provider"`
	FromAddress    string `json:"fromAddress,omitempty"`
	FromName       string `json:"fromName,omitempty"`
	SendGridAPIKey string `json:"sendgridApiKey,omitempty"`
	SMTPHost       string `json:"smtpHost,omitempty"`
	SMTPPort       int    `json:"smtpPort,omitempty"`
	SMTPUser       string `json:"smtpUser,omitempty"`
	SMTPPassword   string `json:"smtpPassword,omitempty"`
}

// MissingCredential returns the name of the credential the configured
// provider requires but lacks, or "" when the config is usable.
func (c EmailConfig) MissingCredential() string {
	switch c.Provider {
	case EmailProviderSendGrid:
		if c.SendGridAPIKey == "" {
			return "sendgridApiKey"
		}
	case EmailProviderSMTP:
		if c.SMTPHost == "" {
			return "smtpHost"
		}
	}
	return ""
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type AccentColor string

const (
	AccentIndigo  AccentColor = "indigo"
	AccentBlue    AccentColor = "blue"
	AccentEmerald AccentColor = "emerald"
	AccentRose    AccentColor = "rose"
	AccentAmber   AccentColor = "amber"
	AccentViolet  AccentColor = "violet"
)

// Module identifiers for the enabled-modules set.
const (
	ModuleCRM        = "crm"
	ModuleInvoicing  = "invoicing"
	ModuleBookings   = "bookings"
	ModuleFunnels    = "funnels"
	ModuleDocuments  = "documents"
	ModuleProjects   = "projects"
	ModuleInbox      = "inbox"
	ModuleFiles      = "files"
	ModuleStrategy   = "strategy"
	ModuleSocial     = "social"
	ModuleHiring     = "hiring"
	ModuleCanvas     = "canvas"
	ModuleCampaigns  = "campaigns"
	ModuleAutomation = "automation"
	ModuleScanner    = "scanner"
)
