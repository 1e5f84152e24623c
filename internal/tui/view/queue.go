package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

type QueueLineParams struct {
	Reel   reels.Reel
	Pos    int
	Active bool
	Liked  bool
	Width  int
}

// RenderQueueLine renders one row of the "up next" strip under the card.
func RenderQueueLine(p QueueLineParams, th tuitheme.Theme) string {
	marker := " "
	if p.Active {
		marker = ">"
	}
	prefix := fmt.Sprintf("  %s%2d. ", marker, p.Pos+1)
	right := th.LikeIcon(p.Liked) + " " + caption.Count(p.Reel.Likes)
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}
	label := strings.TrimSpace(p.Reel.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = caption.Truncate(label, available)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+label+strings.Repeat(" ", gap)+right)
}

type QueueRenderInput struct {
	Size   int
	Start  int
	End    int
	Active int

	RenderLine func(index int, active bool) string
}

func RenderQueue(in QueueRenderInput) string {
	if in.Size == 0 || in.Start >= in.End || in.Start < 0 || in.End > in.Size {
		return ""
	}
	var b strings.Builder
	for i := in.Start; i < in.End; i++ {
		b.WriteString(in.RenderLine(i, i == in.Active))
		b.WriteString("\n")
	}
	return b.String()
}
