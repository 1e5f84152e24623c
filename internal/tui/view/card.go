package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
	tuitheme "github.com/glabrego/reels-cli/internal/tui/theme"
)

// maxCaptionLines caps the description shown on a card; details show all.
const maxCaptionLines = 3

type CardParams struct {
	Reel   reels.Reel
	Index  int
	Total  int
	Active bool
	Muted  bool
	Liked  bool
	Now    time.Time
	Width  int
}

// CardLines renders the body of a reel card without its frame.
func CardLines(p CardParams, th tuitheme.Theme) []string {
	width := p.Width
	if width < 20 {
		width = 20
	}
	r := p.Reel
	lines := make([]string, 0, 12)

	badge := th.PlaybackBadge(p.Active, p.Muted)
	pos := th.MetaValue.Render(fmt.Sprintf("%d/%d", p.Index+1, max(p.Total, p.Index+1)))
	lines = append(lines, spread(badge, pos, width))
	lines = append(lines, "")

	title := strings.TrimSpace(r.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, th.ReelTitle.Render(caption.Truncate(title, width)))

	who := CreatorLabel(r)
	if loc := strings.TrimSpace(r.Location); loc != "" {
		who += " · " + th.Location.Render("📍 "+loc)
	}
	lines = append(lines, who)

	desc := caption.Lines(r.Description, width)
	if len(desc) > maxCaptionLines {
		desc = desc[:maxCaptionLines]
		desc[maxCaptionLines-1] = caption.Truncate(desc[maxCaptionLines-1]+" …", width)
	}
	if len(desc) > 0 {
		lines = append(lines, "")
		lines = append(lines, desc...)
	}
	if tags := caption.Hashtags(r.Tags); tags != "" {
		lines = append(lines, th.Hashtag.Render(tags))
	}

	lines = append(lines, "")
	lines = append(lines, Stats(r, p.Liked, th))
	meta := []string{"⏱ " + caption.Duration(r.Duration)}
	if !r.CreatedAt.IsZero() {
		meta = append(meta, RelativeTimeLabel(p.Now, r.CreatedAt.Time))
	}
	lines = append(lines, th.MetaLabel.Render(strings.Join(meta, " · ")))
	lines = append(lines, th.MetaLabel.Render("[i] 📍 Check-In"))
	return lines
}

// RenderCard renders a framed reel card width cells wide.
func RenderCard(p CardParams, th tuitheme.Theme) string {
	inner := p.Width - 4
	if inner < 20 {
		inner = 20
	}
	p.Width = inner
	body := strings.Join(CardLines(p, th), "\n")
	return th.CardStyle(p.Active).Width(inner + 2).Render(body)
}

// Stats renders the engagement counters of a reel.
func Stats(r reels.Reel, liked bool, th tuitheme.Theme) string {
	parts := []string{
		th.LikeIcon(liked) + " " + th.Counter.Render(caption.Count(r.Likes)),
		"💬 " + th.Counter.Render(caption.Count(r.Comments)),
		"↗ " + th.Counter.Render(caption.Count(r.Shares)),
		"👁 " + th.Counter.Render(caption.Count(r.Views)),
	}
	return strings.Join(parts, "   ")
}

func CreatorLabel(r reels.Reel) string {
	switch {
	case r.Creator != nil && strings.TrimSpace(r.Creator.Username) != "":
		return "@" + strings.TrimSpace(r.Creator.Username)
	case strings.TrimSpace(r.CreatorID) != "":
		return "@" + strings.TrimSpace(r.CreatorID)
	default:
		return "@unknown"
	}
}

// StatusBlock renders the loading and empty states centred in width.
func StatusBlock(lines []string, width int) string {
	return strings.Join(centerLines(lines, width), "\n")
}

func RelativeTimeLabel(now, then time.Time) string {
	if now.IsZero() {
		now = time.Now()
	}
	if then.IsZero() {
		return "unknown"
	}
	if then.After(now) {
		return "just now"
	}
	d := now.Sub(then)
	if d < time.Minute {
		return "just now"
	}
	if d < time.Hour {
		n := int(d / time.Minute)
		if n == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", n)
	}
	if d < 24*time.Hour {
		n := int(d / time.Hour)
		if n == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", n)
	}
	n := int(d / (24 * time.Hour))
	if n == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", n)
}

func spread(left, right string, width int) string {
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// visibleLen is the terminal cell width of s, ignoring escape codes.
func visibleLen(s string) int {
	return lipgloss.Width(s)
}
