package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("33")  // Blue
	colorAccent    = lipgloss.Color("220") // Amber
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorSuccess   = lipgloss.Color("78")  // Green
	colorDanger    = lipgloss.Color("196") // Red
)

// interestColors maps catalog style names to terminal colors.
var interestColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("33"),
	"purple": lipgloss.Color("135"),
	"yellow": lipgloss.Color("220"),
	"green":  lipgloss.Color("78"),
	"red":    lipgloss.Color("203"),
	"pink":   lipgloss.Color("212"),
	"indigo": lipgloss.Color("99"),
	"teal":   lipgloss.Color("37"),
	"orange": lipgloss.Color("208"),
}

func styleColor(name string) lipgloss.Color {
	if c, ok := interestColors[name]; ok {
		return c
	}
	return colorPrimary
}

// Logo is the app badge shown on onboarding.
var Logo = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 2)

// Title style for screen headings.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	MarginBottom(1)

// Subtle style for secondary text.
var Subtle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// SelectedItem style for the currently highlighted row.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for other rows.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// Checked marks a selected interest.
var Checked = lipgloss.NewStyle().
	Foreground(colorSuccess).
	Bold(true)

// Card frames the plan focus, challenge and alert boxes.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// ChallengeCard highlights the challenge of the day.
var ChallengeCard = Card.
	BorderForeground(colorAccent)

// AlertBox is the blocking alert overlay.
var AlertBox = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorDanger).
	Foreground(lipgloss.Color("255")).
	Padding(1, 3)

// ActiveTab and InactiveTab style the bottom navigation.
var (
	ActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)

	InactiveTab = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorAccent).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorDanger).
	Bold(true).
	Padding(0, 1)

// LoadingText style for the loading screen message.
var LoadingText = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)
