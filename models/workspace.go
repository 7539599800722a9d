// ABOUTME: Data models for scheduling, projects, messaging and content records
// ABOUTME: Covers appointments, funnels, documents, tasks, inbox, files, goals and posts
package models

import "github.com/shopspring/decimal"

const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

type Appointment struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Client    string `json:"client"`
	ServiceID string `json:"serviceId,omitempty"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"` // minutes
	Status    string `json:"status"`
}

type Service struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Duration    int             `json:"duration"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
}

type FunnelStep struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Visits      int    `json:"visits"`
	Conversions int    `json:"conversions"`
}

type Funnel struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Steps  []FunnelStep `json:"steps"`
	Status string       `json:"status"`
}

const (
	DocumentDraft  = "Draft"
	DocumentSent   = "Sent"
	DocumentSigned = "Signed"
)

type Document struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Client    string `json:"client,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Client   string `json:"client,omitempty"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	DueDate  string `json:"dueDate,omitempty"`
}

// Task statuses.
const (
	TaskTodo       = "Todo"
	TaskInProgress = "InProgress"
	TaskDone       = "Done"
)

type Task struct {
	ID        string `json:"id"`
	ProjectID string `json:"projectId,omitempty"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	Assignee  string `json:"assignee,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type Conversation struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Channel     string `json:"channel"`
	LastMessage string `json:"lastMessage"`
	Timestamp   string `json:"timestamp"`
	Unread      bool   `json:"unread"`
}

// Message senders.
const (
	SenderMe   = "me"
	SenderThem = "them"
)

type Message struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversationId"`
	Sender         string `json:"sender"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     string `json:"size"`
	Modified string `json:"modified"`
	Starred  bool   `json:"starred"`
}

// Goal types on the strategy map.
const (
	GoalObjective = "Objective"
	GoalKeyResult = "KeyResult"
)

type Goal struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	ParentID string  `json:"parentId,omitempty"`
	Progress int     `json:"progress"`
	Owner    string  `json:"owner,omitempty"`
	DueDate  string  `json:"dueDate,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type SocialPost struct {
	ID           string `json:"id"`
	Platform     string `json:"platform"`
	Content      string `json:"content"`
	ScheduledFor string `json:"scheduledFor,omitempty"`
	Status       string `json:"status"`
}

type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Stage  string `json:"stage"`
	Email  string `json:"email,omitempty"`
	Rating int    `json:"rating"`
}

type CanvasItem struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

type Campaign struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Channel string `json:"channel"`
	Status  string `json:"status"`
	Sent    int    `json:"sent"`
	Opened  int    `json:"opened"`
	Clicked int    `json:"clicked"`
}
