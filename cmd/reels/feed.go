package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glabrego/reels-cli/internal/feed"
	"github.com/glabrego/reels-cli/internal/render/caption"
)

func newFeedCmd(rt *runtime) *cobra.Command {
	var cursor string
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print one page of the reel feed",
		Args:  cobra.NoArgs,
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			var snap feed.Snapshot
			if cursor == "" {
				snap = rt.service.Load(cmd.Context())
			} else {
				snap = rt.service.LoadMore(cmd.Context(), cursor)
			}
			if snap.Err != nil {
				return snap.Err
			}
			printFeed(cmd, snap)
			return nil
		}),
	}
	cmd.Flags().StringVar(&cursor, "cursor", "", "continue from a cursor printed by a previous page")
	return cmd
}

func printFeed(cmd *cobra.Command, snap feed.Snapshot) {
	out := cmd.OutOrStdout()
	if len(snap.Reels) == 0 {
		fmt.Fprintln(out, "No reels available.")
		return
	}
	for i, r := range snap.Reels {
		heart := "♡"
		if r.IsLiked {
			heart = "♥"
		}
		fmt.Fprintf(out, "%2d. %s %-8s %s %s\n", i+1, heart, caption.Count(r.Likes), r.ID, caption.Truncate(strings.TrimSpace(r.Title), 60))
	}
	if snap.HasMore {
		fmt.Fprintf(out, "\nMore: reels feed --cursor %s\n", snap.Cursor)
	}
}
