// ABOUTME: Plan, AI credit, module toggle and appearance operations
// ABOUTME: Credits are only metered on the Starter plan and never go negative
package state

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/harperreed/echoes/collab"
	"github.com/harperreed/echoes/models"
	"go.uber.org/zap"
)

var ErrUnknownPlan = errors.New("unknown plan")

// ConsumeAICredit spends one credit on the Starter plan. It reports false,
// leaving the balance untouched, when a Starter profile has no credits.
// Pro and Business always succeed without spending.
func (s *State) ConsumeAICredit() bool {
	ok := false
	s.commit(func() []string {
		if !s.plan.v.MeteredCredits() {
			ok = true
			return nil
		}
		if s.Profile.v.AICredits <= 0 {
			return nil
		}
		s.Profile.v.AICredits--
		ok = true
		return []string{SliceProfile}
	})
	return ok
}

// AICredits returns the profile's remaining balance.
func (s *State) AICredits() int {
	return s.Profile.Get().AICredits
}

func (s *State) Plan() models.Plan {
	return s.plan.Get()
}

// SetPlan overwrites the plan. It reports false for unknown plans.
func (s *State) SetPlan(p models.Plan) bool {
	if !p.IsValid() {
		return false
	}
	s.plan.Set(p)
	return true
}

// Checkout charges the plan's price and switches plan only once the
// payment collaborator reports success. Free plans switch directly.
func (s *State) Checkout(ctx context.Context, p models.Plan) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, p)
	}

	price := p.Price()
	if price.IsPositive() {
		receipt, err := s.payments.Charge(ctx, collab.Charge{
			Amount:      price,
			Currency:    "usd",
			Description: fmt.Sprintf("Echoes %s plan", p),
		})
		if err != nil {
			return fmt.Errorf("checkout %s: %w", p, err)
		}
		s.logger.Info("plan payment accepted", zap.String("plan", string(p)), zap.String("reference", receipt.Reference))
	}

	s.SetPlan(p)
	return nil
}

// ToggleModule flips module's membership and returns whether it is now
// enabled.
func (s *State) ToggleModule(module string) bool {
	enabled := false
	s.commit(func() []string {
		if i := slices.Index(s.modules.v, module); i >= 0 {
			s.modules.v = slices.Delete(slices.Clone(s.modules.v), i, i+1)
		} else {
			s.modules.v = append(slices.Clone(s.modules.v), module)
			enabled = true
		}
		return []string{SliceEnabledModules}
	})
	return enabled
}

func (s *State) EnabledModules() []string {
	return slices.Clone(s.modules.Get())
}

func (s *State) IsModuleEnabled(module string) bool {
	return slices.Contains(s.modules.Get(), module)
}

func (s *State) Theme() models.Theme {
	return s.theme.Get()
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *State) ToggleTheme() models.Theme {
	var l look
	s.commit(func() []string {
		s.theme.v = s.theme.v.Toggle()
		l = s.lookLocked()
		return []string{SliceTheme}
	})
	s.applyAppearance(l)
	return l.theme
}

func (s *State) AccentColor() models.AccentColor {
	return s.accent.Get()
}

// SetAccentColor selects a palette. Unknown colors are rejected.
func (s *State) SetAccentColor(c models.AccentColor) bool {
	if !IsValidAccent(c) {
		return false
	}
	var l look
	s.commit(func() []string {
		s.accent.v = c
		l = s.lookLocked()
		return []string{SliceAccentColor}
	})
	s.applyAppearance(l)
	return true
}

// AccentVars returns the CSS custom properties of the current palette.
func (s *State) AccentVars() map[string]string {
	return PaletteVars(s.AccentColor())
}

// look is the appearance as committed, numbered in commit order.
type look struct {
	seq    uint64
	theme  models.Theme
	accent models.AccentColor
}

// lookLocked must be called with s.mu held.
func (s *State) lookLocked() look {
	s.lookSeq++
	return look{seq: s.lookSeq, theme: s.theme.v, accent: s.accent.v}
}

// applyAppearance hands l to the hook unless a later commit already has.
// The hook must not change the theme or accent itself.
func (s *State) applyAppearance(l look) {
	if s.appearance == nil {
		return
	}
	s.amu.Lock()
	defer s.amu.Unlock()
	if l.seq <= s.lookApplied {
		return
	}
	s.lookApplied = l.seq
	s.appearance(l.theme, PaletteVars(l.accent))
}
