package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	Card       lipgloss.Style
	CardActive lipgloss.Style
	ReelTitle  lipgloss.Style
	Creator    lipgloss.Style
	Location   lipgloss.Style
	Hashtag    lipgloss.Style
	Liked      lipgloss.Style
	Unliked    lipgloss.Style
	Playing    lipgloss.Style
	Paused     lipgloss.Style
	Muted      lipgloss.Style
	Counter    lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpSky := lipgloss.Color("#89dceb")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")
	cpSurface2 := lipgloss.Color("#585b70")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpSurface2).
			Padding(0, 1),
		CardActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cpMauve).
			Padding(0, 1),
		ReelTitle: lipgloss.NewStyle().Bold(true).Foreground(cpText),
		Creator:   lipgloss.NewStyle().Bold(true).Foreground(cpLavender),
		Location:  lipgloss.NewStyle().Foreground(cpSubtext0),
		Hashtag:   lipgloss.NewStyle().Foreground(cpSky),
		Liked:     lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		Unliked:   lipgloss.NewStyle().Foreground(cpSubtext0),
		Playing:   lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		Paused:    lipgloss.NewStyle().Foreground(cpOverlay1),
		Muted:     lipgloss.NewStyle().Foreground(cpYellow),
		Counter:   lipgloss.NewStyle().Foreground(cpRosewater),
	}
}

// LikeIcon renders the heart for a reel's like state.
func (t Theme) LikeIcon(liked bool) string {
	if liked {
		return t.Liked.Render("♥")
	}
	return t.Unliked.Render("♡")
}

// PlaybackBadge renders the playing/paused and sound state of a card. Only
// the active card plays.
func (t Theme) PlaybackBadge(active, muted bool) string {
	state := t.Paused.Render("❚❚ paused")
	if active {
		state = t.Playing.Render("▶ playing")
	}
	sound := t.MetaValue.Render("🔊 sound")
	if muted {
		sound = t.Muted.Render("🔇 muted")
	}
	return state + "  " + sound
}

func (t Theme) CardStyle(active bool) lipgloss.Style {
	if active {
		return t.CardActive
	}
	return t.Card
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
