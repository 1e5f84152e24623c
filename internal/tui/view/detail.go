package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/render/caption"
)

type WrapFunc func(string, int) []string

func DetailMetaLines(d reels.Details, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 16)
	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "(untitled)"
	}
	lines = append(lines, wrap(title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len([]rune(title))))))
	lines = append(lines, "")

	lines = append(lines, "Creator: "+CreatorLabel(d.Reel))
	if d.Creator != nil && strings.TrimSpace(d.Creator.FullName) != "" {
		lines = append(lines, wrap("Name: "+d.Creator.FullName, width)...)
	}
	if d.Location != "" {
		lines = append(lines, wrap("Location: "+d.Location, width)...)
	}
	if !d.CreatedAt.IsZero() {
		lines = append(lines, "Posted: "+d.CreatedAt.UTC().Format(time.RFC3339))
	}
	lines = append(lines, "Duration: "+caption.Duration(d.Duration))
	if d.IsLiked {
		lines = append(lines, "Liked: yes")
	} else {
		lines = append(lines, "Liked: no")
	}
	lines = append(lines, fmt.Sprintf("Likes: %s | Comments: %s | Shares: %s | Views: %s",
		caption.Count(d.Likes), caption.Count(d.Comments), caption.Count(d.Shares), caption.Count(d.Views)))
	if len(d.Tags) > 0 {
		tags := make([]string, 0, len(d.Tags))
		for _, tag := range d.Tags {
			tags = append(tags, "#"+strings.TrimPrefix(tag, "#"))
		}
		lines = append(lines, wrap("Tags: "+strings.Join(tags, " "), width)...)
	}
	if d.VideoURL != "" {
		lines = append(lines, wrap("Video: "+d.VideoURL, width)...)
	}
	return lines
}

// CommentLines renders the comment thread of a reel.
func CommentLines(comments []reels.Comment, width int, wrap WrapFunc) []string {
	if len(comments) == 0 {
		return []string{"No comments yet."}
	}
	lines := make([]string, 0, len(comments)*3)
	lines = append(lines, fmt.Sprintf("Comments (%d)", len(comments)))
	for _, c := range comments {
		author := c.UserID
		if c.User != nil && strings.TrimSpace(c.User.Username) != "" {
			author = strings.TrimSpace(c.User.Username)
		}
		lines = append(lines, "")
		lines = append(lines, wrap("@"+author+": "+caption.Text(c.Content), width)...)
	}
	return lines
}
