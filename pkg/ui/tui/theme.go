package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPurple600 = lipgloss.Color("#9333EA")
	colorPurple400 = lipgloss.Color("#C084FC")
	colorRed500    = lipgloss.Color("#EF4444")
	colorRed600    = lipgloss.Color("#DC2626")
	colorGray100   = lipgloss.Color("#F3F4F6")
	colorGray200   = lipgloss.Color("#E5E7EB")
	colorGray300   = lipgloss.Color("#D1D5DB")
	colorGray400   = lipgloss.Color("#9CA3AF")
	colorGray500   = lipgloss.Color("#6B7280")
	colorGray600   = lipgloss.Color("#4B5563")
	colorGray700   = lipgloss.Color("#374151")
	colorGray800   = lipgloss.Color("#1F2937")
	colorGray900   = lipgloss.Color("#111827")
	colorWhite     = lipgloss.Color("#FFFFFF")
	colorAmber500  = lipgloss.Color("#F59E0B")
)

// Theme holds every style the form is rendered with.
type Theme struct {
	Dark bool

	Frame       lipgloss.Style
	Title       lipgloss.Style
	ThemeIcon   lipgloss.Style
	Label       lipgloss.Style
	Hint        lipgloss.Style
	Input       lipgloss.Style
	InputFocus  lipgloss.Style
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Prompt      lipgloss.Style

	StartButton    lipgloss.Style
	StopButton     lipgloss.Style
	DisabledButton lipgloss.Style

	StatusLabel lipgloss.Style
	StatusValue lipgloss.Style

	Notice        lipgloss.Style
	NoticeDetails lipgloss.Style

	Logs lipgloss.Style
}

// ThemeFor has no side effects; the caller decides where the result is applied.
func ThemeFor(dark bool) Theme {
	accent, surface, border, label, text, inputBorder := colorPurple600, colorWhite, colorGray200, colorGray700, colorGray900, colorGray300
	stop := colorRed500
	if dark {
		accent, surface, border, label, text, inputBorder = colorPurple400, colorGray800, colorGray700, colorGray300, colorWhite, colorGray600
		stop = colorRed600
	}

	button := lipgloss.NewStyle().
		Foreground(colorWhite).
		Bold(true).
		Padding(0, 2).
		Width(formWidth).
		Align(lipgloss.Center)
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(inputBorder).
		Padding(0, 1).
		Width(formWidth - 2)

	return Theme{
		Dark: dark,

		Frame: lipgloss.NewStyle().
			Background(surface).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 3),
		Title: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		ThemeIcon: lipgloss.NewStyle().
			Foreground(accent),
		Label: lipgloss.NewStyle().
			Foreground(label).
			Bold(true),
		Hint: lipgloss.NewStyle().
			Foreground(colorGray400).
			Italic(true),
		Input:      input,
		InputFocus: input.BorderForeground(accent),
		Text: lipgloss.NewStyle().
			Foreground(text),
		Placeholder: lipgloss.NewStyle().
			Foreground(colorGray500),
		Prompt: lipgloss.NewStyle().
			Foreground(accent),

		StartButton:    button.Background(accent),
		StopButton:     button.Background(stop),
		DisabledButton: button.Background(colorGray400).Foreground(colorGray100),

		StatusLabel: lipgloss.NewStyle().
			Foreground(label).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(colorAmber500).
			Bold(true),
		NoticeDetails: lipgloss.NewStyle().
			Foreground(colorGray500),

		Logs: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(border).
			Foreground(colorGray500),
	}
}
