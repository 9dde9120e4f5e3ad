package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Asset kind colors
	KindPage      = lipgloss.Color("#6366F1") // Indigo
	KindScreen    = lipgloss.Color("#8B5CF6") // Violet
	KindComponent = lipgloss.Color("#EC4899") // Pink
	KindFill      = lipgloss.Color("#60A5FA") // Blue
	KindRendered  = lipgloss.Color("#F97316") // Orange

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Asset list styles
	RowSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Oracle state styles
	StateValid = lipgloss.NewStyle().
			Foreground(Secondary)

	StatePlaceholder = lipgloss.NewStyle().
				Foreground(Warning)

	StateAbsent = lipgloss.NewStyle().
			Foreground(Error)

	// Phase indicators for the sync runner
	PhaseDone    = lipgloss.NewStyle().Foreground(Secondary).SetString("✓ ")
	PhaseFailed  = lipgloss.NewStyle().Foreground(Error).SetString("✗ ")
	PhaseRunning = lipgloss.NewStyle().Foreground(Warning)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// KindColor returns the color for an asset kind
func KindColor(kind string) lipgloss.Color {
	switch kind {
	case "page":
		return KindPage
	case "screen":
		return KindScreen
	case "component":
		return KindComponent
	case "fill":
		return KindFill
	case "rendered":
		return KindRendered
	default:
		return Primary
	}
}
