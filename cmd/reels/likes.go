package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLikesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "likes",
		Short: "Inspect and edit the locally liked reels",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List liked reel IDs in the order they were liked",
		Args:  cobra.NoArgs,
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			ids := rt.store.LikedIDs(cmd.Context())
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No liked reels.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add <reel-id>...",
		Short: "Like one or more reels",
		Args:  cobra.MinimumNArgs(1),
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := rt.store.AddLikedID(cmd.Context(), id); err != nil {
					return fmt.Errorf("like %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Liked %s\n", id)
			}
			return nil
		}),
	}

	removeCmd := &cobra.Command{
		Use:     "remove <reel-id>...",
		Aliases: []string{"rm"},
		Short:   "Remove likes from one or more reels",
		Args:    cobra.MinimumNArgs(1),
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := rt.store.RemoveLikedID(cmd.Context(), id); err != nil {
					return fmt.Errorf("unlike %s: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed like from %s\n", id)
			}
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Forget every liked reel",
		Args:  cobra.NoArgs,
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			if err := rt.store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear likes: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all likes.")
			return nil
		}),
	}

	cmd.AddCommand(listCmd, addCmd, removeCmd, clearCmd)
	return cmd
}
