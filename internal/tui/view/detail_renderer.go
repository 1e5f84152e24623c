package view

import (
	"strings"

	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
)

// DetailState is what the details route knows about the open reel.
type DetailState struct {
	Loading bool
	Err     string
}

func DetailLines(
	d reels.Details,
	contentWidth int,
	horizontalMargin int,
	wrap WrapFunc,
	st DetailState,
) []string {
	lines := DetailMetaLines(d, contentWidth, wrap)
	if desc := caption.Lines(d.Description, contentWidth); len(desc) > 0 {
		lines = append(lines, "")
		lines = append(lines, desc...)
	}
	lines = append(lines, "")
	switch {
	case st.Loading:
		lines = append(lines, "Loading comments...")
	case strings.TrimSpace(st.Err) != "":
		lines = append(lines, "Comments unavailable: "+st.Err)
	default:
		lines = append(lines, CommentLines(d.CommentsList, contentWidth, wrap)...)
	}
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = prefix + line
	}
	return out
}

func centerLines(lines []string, width int) []string {
	if width <= 0 || len(lines) == 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		visible := visibleLen(line)
		if visible >= width {
			out[i] = line
			continue
		}
		pad := (width - visible) / 2
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}
