// ABOUTME: Accent color palettes exposed to the presentation layer as CSS custom properties
// ABOUTME: Shade values are the Tailwind 50 to 900 ramps for each accent
package state

import (
	"fmt"

	"github.com/harperreed/echoes/models"
)

// Shades lists the ramp stops in ascending order.
var Shades = []int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900}

var palettes = map[models.AccentColor][10]string{
	models.AccentIndigo:  {"#eef2ff", "#e0e7ff", "#c7d2fe", "#a5b4fc", "#818cf8", "#6366f1", "#4f46e5", "#4338ca", "#3730a3", "#312e81"},
	models.AccentBlue:    {"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa", "#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a"},
	models.AccentEmerald: {"#ecfdf5", "#d1fae5", "#a7f3d0", "#6ee7b7", "#34d399", "#10b981", "#059669", "#047857", "#065f46", "#064e3b"},
	models.AccentRose:    {"#fff1f2", "#ffe4e6", "#fecdd3", "#fda4af", "#fb7185", "#f43f5e", "#e11d48", "#be123c", "#9f1239", "#881337"},
	models.AccentAmber:   {"#fffbeb", "#fef3c7", "#fde68a", "#fcd34d", "#fbbf24", "#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f"},
	models.AccentViolet:  {"#f5f3ff", "#ede9fe", "#ddd6fe", "#c4b5fd", "#a78bfa", "#8b5cf6", "#7c3aed", "#6d28d9", "#5b21b6", "#4c1d95"},
}

// IsValidAccent reports whether a palette exists for c.
func IsValidAccent(c models.AccentColor) bool {
	_, ok := palettes[c]
	return ok
}

// PaletteVars maps --accent-<shade> to the shade's hex value. Unknown
// colors yield nil.
func PaletteVars(c models.AccentColor) map[string]string {
	ramp, ok := palettes[c]
	if !ok {
		return nil
	}
	vars := make(map[string]string, len(Shades))
	for i, shade := range Shades {
		vars[fmt.Sprintf("--accent-%d", shade)] = ramp[i]
	}
	return vars
}
