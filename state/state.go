// ABOUTME: The workspace State: every slice, its mutators and the composite operations
// ABOUTME: One writer lock serializes transitions; listeners run after the lock is released
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/persist"
	"go.uber.org/zap"
)

// Persisted slice names. Each is stored under persist.DefaultPrefix+name.
const (
	SliceDeals           = "deals"
	SliceContacts        = "contacts"
	SliceCompanies       = "companies"
	SliceInvoices        = "invoices"
	SliceExpenses        = "expenses"
	SliceProducts        = "products"
	SliceAppointments    = "appointments"
	SliceServices        = "services"
	SliceFunnels         = "funnels"
	SliceDocuments       = "documents"
	SliceProjects        = "projects"
	SliceTasks           = "tasks"
	SliceConversations   = "conversations"
	SliceMessages        = "messages"
	SliceFiles           = "files"
	SliceGoals           = "goals"
	SliceSocialPosts     = "socialPosts"
	SliceCandidates      = "candidates"
	SliceCanvasItems     = "canvasItems"
	SliceCampaigns       = "campaigns"
	SliceAutomationNodes = "automationNodes"
	SliceProfile         = "profile"
	SliceTeamMembers     = "teamMembers"
	SliceIntegrations    = "integrations"
	SliceEmailConfig     = "emailConfig"
	SliceEnabledModules  = "enabledModules"
	SlicePlan            = "plan"
	SliceTheme           = "theme"
	SliceAccentColor     = "accentColor"
)

var ErrNoAICredits = errors.New("no AI credits left")

// Listener receives the names of the slices a transition changed.
type Listener func(slices []string)

// AppearanceFunc applies the theme and accent palette to the presentation layer.
type AppearanceFunc func(theme models.Theme, vars map[string]string)

// State owns every workspace slice. Use New to construct it.
type State struct {
	mu    sync.RWMutex
	store *persist.Store
	saved map[string]func() any
	order []string

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int

	logger     *zap.Logger
	validate   *validator.Validate
	email      collab.EmailSender
	integrator collab.IntegrationClient
	payments   collab.PaymentProcessor
	ai         collab.AITextGenerator
	appearance AppearanceFunc
	latency    collab.Latency
	now        func() time.Time

	amu         sync.Mutex
	lookSeq     uint64 // guarded by mu
	lookApplied uint64 // guarded by amu

	Deals           *Collection[models.Deal]
	Contacts        *Collection[models.Contact]
	Companies       *Collection[models.Company]
	Invoices        *Collection[models.Invoice]
	Expenses        *Collection[models.Expense]
	Products        *Collection[models.Product]
	Appointments    *Collection[models.Appointment]
	Services        *Collection[models.Service]
	Funnels         *Collection[models.Funnel]
	Documents       *Collection[models.Document]
	Projects        *Collection[models.Project]
	Tasks           *Collection[models.Task]
	Conversations   *Collection[models.Conversation]
	Messages        *Collection[models.Message]
	Files           *Collection[models.File]
	Goals           *Collection[models.Goal]
	SocialPosts     *Collection[models.SocialPost]
	Candidates      *Collection[models.Candidate]
	CanvasItems     *Collection[models.CanvasItem]
	Campaigns       *Collection[models.Campaign]
	AutomationNodes *Collection[models.AutomationNode]
	TeamMembers     *Collection[models.TeamMember]
	Integrations    *Collection[models.Integration]

	Profile       *Value[models.UserProfile]
	EmailSettings *Value[models.EmailConfig]

	modules *Value[[]string]
	plan    *Value[models.Plan]
	theme   *Value[models.Theme]
	accent  *Value[models.AccentColor]
}

// Option configures a State.
type Option func(*State)

func WithLogger(logger *zap.Logger) Option {
	return func(s *State) { s.logger = logger }
}

func WithEmailSender(sender collab.EmailSender) Option {
	return func(s *State) { s.email = sender }
}

func WithIntegrationClient(client collab.IntegrationClient) Option {
	return func(s *State) { s.integrator = client }
}

func WithPaymentProcessor(p collab.PaymentProcessor) Option {
	return func(s *State) { s.payments = p }
}

func WithAIGenerator(g collab.AITextGenerator) Option {
	return func(s *State) { s.ai = g }
}

// WithAppearance registers the hook run after ToggleTheme and SetAccentColor.
func WithAppearance(fn AppearanceFunc) Option {
	return func(s *State) { s.appearance = fn }
}

// WithSimulatedLatency overrides the delay of every defaulted simulated
// collaborator. Collaborators passed explicitly are untouched.
func WithSimulatedLatency(l collab.Latency) Option {
	return func(s *State) { s.latency = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New loads every slice from store, seeding defaults for slices that were
// never saved or fail to decode.
func New(store *persist.Store, opts ...Option) *State {
	s := &State{
		store:     store,
		saved:     make(map[string]func() any),
		listeners: make(map[int]Listener),
		logger:    zap.NewNop(),
		validate:  validator.New(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.defaultCollaborators()

	s.Deals = newCollection(s, SliceDeals, Prepend, defaultDeals(), func(r *models.Deal) *string { return &r.ID })
	s.Contacts = newCollection(s, SliceContacts, Prepend, defaultContacts(), func(r *models.Contact) *string { return &r.ID })
	s.Companies = newCollection(s, SliceCompanies, Prepend, defaultCompanies(), func(r *models.Company) *string { return &r.ID })
	s.Invoices = newCollection(s, SliceInvoices, Prepend, defaultInvoices(), func(r *models.Invoice) *string { return &r.ID })
	s.Expenses = newCollection(s, SliceExpenses, Prepend, defaultExpenses(), func(r *models.Expense) *string { return &r.ID })
	s.Products = newCollection(s, SliceProducts, Prepend, defaultProducts(), func(r *models.Product) *string { return &r.ID })
	s.Appointments = newCollection(s, SliceAppointments, Prepend, defaultAppointments(), func(r *models.Appointment) *string { return &r.ID })
	s.Services = newCollection(s, SliceServices, Prepend, defaultServices(), func(r *models.Service) *string { return &r.ID })
	s.Funnels = newCollection(s, SliceFunnels, Prepend, defaultFunnels(), func(r *models.Funnel) *string { return &r.ID })
	s.Documents = newCollection(s, SliceDocuments, Prepend, defaultDocuments(), func(r *models.Document) *string { return &r.ID })
	s.Projects = newCollection(s, SliceProjects, Prepend, defaultProjects(), func(r *models.Project) *string { return &r.ID })
	s.Tasks = newCollection(s, SliceTasks, Append, defaultTasks(), func(r *models.Task) *string { return &r.ID })
	s.Conversations = newCollection(s, SliceConversations, Prepend, defaultConversations(), func(r *models.Conversation) *string { return &r.ID })
	s.Messages = newCollection(s, SliceMessages, Append, defaultMessages(), func(r *models.Message) *string { return &r.ID })
	s.Files = newCollection(s, SliceFiles, Append, defaultFiles(), func(r *models.File) *string { return &r.ID })
	s.Goals = newCollection(s, SliceGoals, Prepend, defaultGoals(), func(r *models.Goal) *string { return &r.ID })
	s.SocialPosts = newCollection(s, SliceSocialPosts, Append, defaultSocialPosts(), func(r *models.SocialPost) *string { return &r.ID })
	s.Candidates = newCollection(s, SliceCandidates, Append, defaultCandidates(), func(r *models.Candidate) *string { return &r.ID })
	s.CanvasItems = newCollection(s, SliceCanvasItems, Append, defaultCanvasItems(), func(r *models.CanvasItem) *string { return &r.ID })
	s.Campaigns = newCollection(s, SliceCampaigns, Prepend, defaultCampaigns(), func(r *models.Campaign) *string { return &r.ID })
	s.AutomationNodes = newCollection(s, SliceAutomationNodes, Append, defaultAutomationNodes(), func(r *models.AutomationNode) *string { return &r.ID },
		withCheck(models.AutomationNode.Validate), withPerRecordLoad[models.AutomationNode]())
	s.TeamMembers = newCollection(s, SliceTeamMembers, Append, defaultTeamMembers(), func(r *models.TeamMember) *string { return &r.ID })
	s.Integrations = newCollection(s, SliceIntegrations, Append, defaultIntegrations(), func(r *models.Integration) *string { return &r.ID })

	s.Profile = newValue(s, SliceProfile, defaultProfile())
	s.EmailSettings = newValue(s, SliceEmailConfig, models.EmailConfig{Provider: models.EmailProviderNone})
	s.modules = newValue(s, SliceEnabledModules, defaultModules())
	s.plan = newValue(s, SlicePlan, models.PlanStarter)
	s.theme = newValue(s, SliceTheme, models.ThemeLight)
	s.accent = newValue(s, SliceAccentColor, models.AccentIndigo)

	s.applyAppearance(s.lookLocked())

	return s
}

func (s *State) defaultCollaborators() {
	pick := func(def collab.Latency) collab.Latency {
		if s.latency != nil {
			return s.latency
		}
		return def
	}

	if s.email == nil {
		s.email = &collab.SimulatedEmailSender{Latency: pick(collab.Between(time.Second, 2*time.Second))}
	}
	if s.integrator == nil {
		s.integrator = &collab.SimulatedIntegrationClient{Latency: pick(collab.Fixed(time.Second))}
	}
	if s.payments == nil {
		s.payments = &collab.SimulatedPaymentProcessor{Latency: pick(collab.Fixed(1500 * time.Millisecond))}
	}
	if s.ai == nil {
		s.ai = &collab.SimulatedGenerator{Latency: pick(collab.Between(500*time.Millisecond, 1500*time.Millisecond))}
	}
}

func (s *State) register(name string, snapshot func() any) {
	s.saved[name] = snapshot
	s.order = append(s.order, name)
}

// commit runs fn under the writer lock. fn returns the slices it changed;
// those are written through before the lock is released and listeners are
// told about all of them at once afterwards.
func (s *State) commit(fn func() []string) {
	s.mu.Lock()
	changed := fn()
	for _, name := range changed {
		s.save(name)
	}
	s.mu.Unlock()

	if len(changed) > 0 {
		s.notify(changed)
	}
}

// save must be called with s.mu held. A failed write leaves the in-memory
// state ahead of the store until the next successful save or Flush.
func (s *State) save(name string) {
	if err := s.store.Save(name, s.saved[name]()); err != nil {
		s.logger.Warn("failed to persist slice", zap.String("slice", name), zap.Error(err))
	}
}

// Subscribe registers fn for change notifications and returns a func that
// removes it.
func (s *State) Subscribe(fn Listener) func() {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *State) notify(changed []string) {
	s.lmu.Lock()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.lmu.Unlock()

	for _, fn := range fns {
		fn(changed)
	}
}

// Flush writes every slice to the store.
func (s *State) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var errs []error
	for _, name := range s.order {
		if err := s.store.Save(name, s.saved[name]()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("flush: %w", errors.Join(errs...))
	}
	return nil
}

// SliceNames lists every slice in registration order.
func (s *State) SliceNames() []string {
	return append([]string(nil), s.order...)
}

// SnapshotJSON encodes a slice's current value. The bool is false for
// unknown slice names.
func (s *State) SnapshotJSON(name string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fn, ok := s.saved[name]
	if !ok {
		return nil, false, nil
	}
	data, err := json.MarshalIndent(fn(), "", "  ")
	return data, true, err
}
