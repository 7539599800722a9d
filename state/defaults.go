// ABOUTME: Seed data for a fresh workspace
// ABOUTME: Each func returns a new slice so seeds are never shared between States
package state

import (
	"github.com/harperreed/echoes/models"
	"github.com/shopspring/decimal"
)

func usd(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func defaultDeals() []models.Deal {
	return []models.Deal{
		{ID: "d1", Title: "Website Redesign", Company: "Acme Corp", Value: usd("12000"), Stage: models.StageProposal, Tags: []string{"design", "web"}, LastActivity: "2 days ago"},
		{ID: "d2", Title: "Annual Retainer", Company: "Globex", Value: usd("48000"), Stage: models.StageNegotiation, Tags: []string{"retainer"}, LastActivity: "Yesterday"},
		{ID: "d3", Title: "SEO Audit", Company: "Initech", Value: usd("3500"), Stage: models.StageLead, Tags: []string{"seo"}, LastActivity: "1 week ago"},
		{ID: "d4", Title: "Brand Strategy", Company: "Umbrella", Value: usd("18000"), Stage: models.StageContacted, Tags: []string{"brand"}, LastActivity: "3 days ago"},
		{ID: "d5", Title: "Mobile App MVP", Company: "Hooli", Value: usd("65000"), Stage: models.StageClosed, Tags: []string{"mobile", "dev"}, LastActivity: "Today"},
	}
}

func defaultContacts() []models.Contact {
	return []models.Contact{
		{ID: "ct1", Name: "Sarah Chen", Email: "sarah@acme.com", Phone: "+1 555 0101", Company: "Acme Corp", Role: "CMO", Status: models.ContactStatusCustomer, LastContacted: "2 days ago"},
		{ID: "ct2", Name: "Marcus Webb", Email: "marcus@globex.com", Company: "Globex", Role: "CEO", Status: models.ContactStatusLead, LastContacted: "Yesterday"},
		{ID: "ct3", Name: "Priya Patel", Email: "priya@initech.com", Company: "Initech", Role: "Head of Growth", Status: models.ContactStatusLead, LastContacted: "1 week ago"},
	}
}

func defaultCompanies() []models.Company {
	return []models.Company{
		{ID: "co1", Name: "Acme Corp", Industry: "Manufacturing", Website: "acme.com", Employees: 250, Status: "Customer"},
		{ID: "co2", Name: "Globex", Industry: "Logistics", Website: "globex.com", Employees: 1200, Status: "Prospect"},
		{ID: "co3", Name: "Initech", Industry: "Software", Website: "initech.com", Employees: 80, Status: "Prospect"},
	}
}

func defaultInvoices() []models.Invoice {
	return []models.Invoice{
		{ID: "INV-001", Client: "Acme Corp", Amount: usd("4500"), Status: models.InvoicePaid, Date: "2024-05-01"},
		{ID: "INV-002", Client: "Globex", Amount: usd("12000"), Status: models.InvoicePending, Date: "2024-05-15"},
		{ID: "INV-003", Client: "Initech", Amount: usd("1750"), Status: models.InvoiceOverdue, Date: "2024-04-10"},
	}
}

func defaultExpenses() []models.Expense {
	return []models.Expense{
		{ID: "e1", Description: "Figma subscription", Category: "Software", Amount: usd("45"), Date: "2024-05-02", Vendor: "Figma"},
		{ID: "e2", Description: "Client lunch", Category: "Meals", Amount: usd("86.40"), Date: "2024-05-08", Vendor: "Nopa"},
	}
}

func defaultProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Strategy Workshop", SKU: "WS-01", Price: usd("1500"), Stock: 10, Category: "Services"},
		{ID: "p2", Name: "Brand Kit", SKU: "BK-01", Price: usd("499"), Stock: 100, Category: "Digital"},
	}
}

func defaultAppointments() []models.Appointment {
	return []models.Appointment{
		{ID: "a1", Title: "Discovery Call", Client: "Marcus Webb", ServiceID: "s1", Date: "2024-06-03", Time: "10:00", Duration: 30, Status: models.AppointmentScheduled},
		{ID: "a2", Title: "Design Review", Client: "Sarah Chen", ServiceID: "s2", Date: "2024-06-04", Time: "14:00", Duration: 60, Status: models.AppointmentScheduled},
	}
}

func defaultServices() []models.Service {
	return []models.Service{
		{ID: "s1", Name: "Discovery Call", Duration: 30, Price: usd("0"), Description: "Free intro call"},
		{ID: "s2", Name: "Consulting Hour", Duration: 60, Price: usd("200"), Description: "One hour of strategy consulting"},
	}
}

func defaultFunnels() []models.Funnel {
	return []models.Funnel{
		{ID: "f1", Name: "Lead Magnet", Status: "Active", Steps: []models.FunnelStep{
			{ID: "fs1", Name: "Landing Page", Type: "page", Visits: 1200, Conversions: 340},
			{ID: "fs2", Name: "Thank You", Type: "page", Visits: 340, Conversions: 120},
		}},
	}
}

func defaultDocuments() []models.Document {
	return []models.Document{
		{ID: "doc1", Title: "Acme Master Services Agreement", Type: "Contract", Status: models.DocumentSigned, Client: "Acme Corp", UpdatedAt: "2024-04-20"},
		{ID: "doc2", Title: "Globex Retainer Proposal", Type: "Proposal", Status: models.DocumentSent, Client: "Globex", UpdatedAt: "2024-05-14"},
	}
}

func defaultProjects() []models.Project {
	return []models.Project{
		{ID: "pr1", Name: "Acme Website", Client: "Acme Corp", Status: "Active", Progress: 60, DueDate: "2024-07-01"},
		{ID: "pr2", Name: "Hooli App", Client: "Hooli", Status: "Planning", Progress: 10, DueDate: "2024-09-15"},
	}
}

func defaultTasks() []models.Task {
	return []models.Task{
		{ID: "t1", ProjectID: "pr1", Title: "Wireframes", Status: models.TaskDone, Assignee: "Alex", Priority: "High"},
		{ID: "t2", ProjectID: "pr1", Title: "Homepage build", Status: models.TaskInProgress, Assignee: "Sam", Priority: "Medium"},
		{ID: "t3", ProjectID: "pr2", Title: "Kickoff meeting", Status: models.TaskTodo, Assignee: "Alex", Priority: "Low"},
	}
}

func defaultConversations() []models.Conversation {
	return []models.Conversation{
		{ID: "c1", Name: "Sarah Chen", Channel: "Email", LastMessage: "Looks great, thanks!", Timestamp: "10:24 AM", Unread: true},
		{ID: "c2", Name: "Marcus Webb", Channel: "Chat", LastMessage: "Can we move our call?", Timestamp: "Yesterday", Unread: false},
	}
}

func defaultMessages() []models.Message {
	return []models.Message{
		{ID: "m1", ConversationID: "c1", Sender: models.SenderMe, Text: "Here is the latest mockup.", Timestamp: "10:02 AM"},
		{ID: "m2", ConversationID: "c1", Sender: models.SenderThem, Text: "Looks great, thanks!", Timestamp: "10:24 AM"},
		{ID: "m3", ConversationID: "c2", Sender: models.SenderThem, Text: "Can we move our call?", Timestamp: "Yesterday"},
	}
}

func defaultFiles() []models.File {
	return []models.File{
		{ID: "fl1", Name: "Brand Guidelines.pdf", Type: "pdf", Size: "2.4 MB", Modified: "2024-05-01", Starred: true},
		{ID: "fl2", Name: "Q2 Forecast.xlsx", Type: "spreadsheet", Size: "340 KB", Modified: "2024-05-12"},
	}
}

func defaultGoals() []models.Goal {
	return []models.Goal{
		{ID: "g1", Title: "Grow recurring revenue", Type: models.GoalObjective, Progress: 40, Owner: "Alex", X: 400, Y: 80},
		{ID: "g2", Title: "Sign 3 retainers", Type: models.GoalKeyResult, ParentID: "g1", Progress: 33, Owner: "Sam", X: 250, Y: 240},
		{ID: "g3", Title: "Reach $20k MRR", Type: models.GoalKeyResult, ParentID: "g1", Progress: 45, Owner: "Alex", X: 550, Y: 240},
	}
}

func defaultSocialPosts() []models.SocialPost {
	return []models.SocialPost{
		{ID: "sp1", Platform: "LinkedIn", Content: "We just shipped a new case study.", ScheduledFor: "2024-06-05 09:00", Status: "Scheduled"},
	}
}

func defaultCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "cd1", Name: "Jordan Lee", Role: "Designer", Stage: "Interview", Email: "jordan@example.com", Rating: 4},
		{ID: "cd2", Name: "Taylor Kim", Role: "Developer", Stage: "Applied", Email: "taylor@example.com", Rating: 3},
	}
}

func defaultCanvasItems() []models.CanvasItem {
	return []models.CanvasItem{
		{ID: "cv1", Kind: "note", Label: "Customer segments", X: 40, Y: 40, Width: 200, Height: 120, Color: "amber"},
		{ID: "cv2", Kind: "note", Label: "Value proposition", X: 280, Y: 40, Width: 200, Height: 120, Color: "emerald"},
	}
}

func defaultCampaigns() []models.Campaign {
	return []models.Campaign{
		{ID: "cm1", Name: "Spring Newsletter", Channel: "Email", Status: "Completed", Sent: 2400, Opened: 980, Clicked: 210},
	}
}

func defaultAutomationNodes() []models.AutomationNode {
	return []models.AutomationNode{
		{ID: "n1", Type: models.NodeTrigger, Label: "New lead", X: 80, Y: 120, Next: []string{"n2"}, Config: models.TriggerConfig{Event: "contact.created"}},
		{ID: "n2", Type: models.NodeDelay, Label: "Wait 1 hour", X: 300, Y: 120, Next: []string{"n3"}, Config: models.DelayConfig{Minutes: 60}},
		{ID: "n3", Type: models.NodeAction, Label: "Post to Slack", X: 520, Y: 120, Config: models.ActionConfig{Action: "post_message", IntegrationID: "slack", Template: "New lead: {{name}}"}},
	}
}

func defaultTeamMembers() []models.TeamMember {
	return []models.TeamMember{
		{ID: "tm1", Name: "Alex Rivera", Email: "alex@echoes.app", Role: "Owner", Status: "Active"},
		{ID: "tm2", Name: "Sam Okafor", Email: "sam@echoes.app", Role: "Member", Status: "Active"},
	}
}

func defaultIntegrations() []models.Integration {
	return []models.Integration{
		{ID: "slack", Name: "Slack", Category: "Communication", Status: models.IntegrationConnected, LastSync: "5 min ago"},
		{ID: "google-drive", Name: "Google Drive", Category: "Storage", Status: models.IntegrationDisconnected},
		{ID: "stripe", Name: "Stripe", Category: "Payments", Status: models.IntegrationConnected, LastSync: "1 hour ago"},
		{ID: "mailchimp", Name: "Mailchimp", Category: "Marketing", Status: models.IntegrationDisconnected},
		{ID: "quickbooks", Name: "QuickBooks", Category: "Finance", Status: models.IntegrationError, LastSync: "2 days ago"},
	}
}

func defaultProfile() models.UserProfile {
	return models.UserProfile{Name: "Alex Rivera", Email: "alex@echoes.app", Company: "Echoes Studio", AICredits: 10}
}

func defaultModules() []string {
	return []string{
		models.ModuleCRM,
		models.ModuleInvoicing,
		models.ModuleBookings,
		models.ModuleProjects,
		models.ModuleInbox,
		models.ModuleFiles,
		models.ModuleStrategy,
	}
}
