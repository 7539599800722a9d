// ABOUTME: Workspace settings CLI commands: modules, appearance, plan and credits
// ABOUTME: Checkout goes through the configured payment processor
package cli

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/harperreed/echoes/models"
	"github.com/harperreed/echoes/state"
)

// ModulesCommand lists enabled modules.
func ModulesCommand(st *state.State, _ []string) error {
	modules := st.EnabledModules()
	if len(modules) == 0 {
		outln("No modules enabled")
		return nil
	}
	sort.Strings(modules)
	outln("Enabled modules:")
	for _, m := range modules {
		printf("  - %s\n", m)
	}
	return nil
}

// ToggleModuleCommand flips a module on or off.
func ToggleModuleCommand(st *state.State, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("usage: toggle-module <module>")
	}
	if st.ToggleModule(args[0]) {
		printf("✓ %s enabled\n", args[0])
	} else {
		printf("✓ %s disabled\n", args[0])
	}
	return nil
}

// ThemeCommand shows the theme, or toggles it with --toggle.
func ThemeCommand(st *state.State, args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	toggle := fs.Bool("toggle", false, "Switch between light and dark")
	_ = fs.Parse(args)

	theme := st.Theme()
	if *toggle {
		theme = st.ToggleTheme()
		printf("✓ Theme set to %s\n", theme)
		return nil
	}
	printf("Theme: %s\n", theme)
	return nil
}

// AccentCommand shows or sets the accent color.
func AccentCommand(st *state.State, args []string) error {
	if len(args) == 0 {
		printf("Accent: %s\n", st.AccentColor())
		return nil
	}
	color := models.AccentColor(strings.ToLower(args[0]))
	if !st.SetAccentColor(color) {
		return fmt.Errorf("unknown accent color: %s", args[0])
	}
	printf("✓ Accent set to %s\n", color)
	return nil
}

// PlanCommand shows the current plan and AI credit balance.
func PlanCommand(st *state.State, _ []string) error {
	plan := st.Plan()
	printf("Plan:    %s (%s/mo)\n", plan, dollars(plan.Price()))
	if plan.MeteredCredits() {
		printf("Credits: %d\n", st.AICredits())
	} else {
		outln("Credits: unlimited")
	}
	return nil
}

// CheckoutCommand upgrades or downgrades the plan, charging when the new
// plan has a price.
func CheckoutCommand(st *state.State, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: checkout <Starter|Pro|Business>")
	}
	plan := models.Plan(args[0])
	if !plan.IsValid() {
		return fmt.Errorf("%w: %s", state.ErrUnknownPlan, args[0])
	}
	if err := st.Checkout(context.Background(), plan); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}
	printf("✓ Now on the %s plan\n", plan)
	return nil
}
