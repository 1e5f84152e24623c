package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

func Toolbar(expanded, inDetail bool) string {
	if expanded {
		if inDetail {
			return "j/k: scroll | pgup/pgdown: page | l: like | o: open video | s: copy link | esc/backspace: back | ?: help | q: quit"
		}
		return "j/k/arrows: next/prev reel | g/G: first/last | pgup/pgdown: skip | l: like | m: mute | c: comments | s: share | i: check-in | o: open video | enter: details | n: more | r: refresh | ?: help | q: quit"
	}
	if inDetail {
		return "j/k scroll | l like | o open | s share | esc back | ? help"
	}
	return "j/k swipe | l like | m mute | enter details | n more | r refresh | ? help"
}

// Footer summarises the pager position and feed state.
func Footer(active int, hasActive bool, shown int, hasMore bool, likedCount int, muted bool, th tuitheme.Theme) string {
	position := "-"
	if hasActive && shown > 0 {
		position = fmt.Sprintf("%d/%d", active+1, shown)
	}
	more := "end"
	if hasMore {
		more = "more"
	}
	sound := "on"
	if muted {
		sound = "muted"
	}
	parts := []string{
		th.MetaLabel.Render("reel") + " " + th.MetaValue.Render(position),
		th.MetaLabel.Render("feed") + " " + th.MetaValue.Render(more),
		th.MetaLabel.Render("liked") + " " + th.MetaValue.Render(fmt.Sprintf("%d", likedCount)),
		th.MetaLabel.Render("sound") + " " + th.MetaValue.Render(sound),
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
