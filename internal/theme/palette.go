package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a theme contributes to the terminal UI.
type Palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Danger     lipgloss.Color
	Warning    lipgloss.Color
	Border     lipgloss.Color
}

var palettes = map[Name]Palette{
	Light: {
		Background: "#F8FAFC",
		Surface:    "#FFFFFF",
		Foreground: "#0F172A",
		Muted:      "#64748B",
		Accent:     "#2563EB",
		Success:    "#15803D",
		Danger:     "#B91C1C",
		Warning:    "#B45309",
		Border:     "#CBD5E1",
	},
	Dark: {
		Background: "#0B1120",
		Surface:    "#111827",
		Foreground: "#E5E7EB",
		Muted:      "#9CA3AF",
		Accent:     "#38BDF8",
		Success:    "#22C55E",
		Danger:     "#EF4444",
		Warning:    "#F59E0B",
		Border:     "#374151",
	},
	Blue: {
		Background: "#0C1E3A",
		Surface:    "#13294B",
		Foreground: "#DBEAFE",
		Muted:      "#93C5FD",
		Accent:     "#60A5FA",
		Success:    "#34D399",
		Danger:     "#F87171",
		Warning:    "#FBBF24",
		Border:     "#1E40AF",
	},
	Purple: {
		Background: "#1E1033",
		Surface:    "#2E1065",
		Foreground: "#EDE9FE",
		Muted:      "#C4B5FD",
		Accent:     "#A78BFA",
		Success:    "#4ADE80",
		Danger:     "#FB7185",
		Warning:    "#FACC15",
		Border:     "#6D28D9",
	},
}

// PaletteFor returns the palette for n, or the default theme's palette for
// unknown names.
func PaletteFor(n Name) Palette {
	if p, ok := palettes[n]; ok {
		return p
	}
	return palettes[Default]
}
