package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/quest_academy/internal/transport"
)

func (c *cli) newUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Args:  cobra.ExactArgs(1),
		Short: "Upload a file and print its URL",
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			if _, err := c.requireSession(cmd.Context()); err != nil {
				return err
			}
			out, err := c.app.API.Uploads.Path(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.URL)
			return nil
		}),
	}
}

func (c *cli) newWorldsCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "worlds",
		Args:  cobra.NoArgs,
		Short: "List worlds",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			if _, err := c.requireSession(cmd.Context()); err != nil {
				return err
			}
			worlds, err := c.app.API.Worlds.List(cmd.Context(), !all)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDIFFICULTY\tZONES\tPUBLISHED")
			for _, w := range worlds {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%t\n", w.WorldID, w.Title, w.DifficultyLevel, w.ZonesCount, w.IsPublished)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "include unpublished worlds")
	return cmd
}

func (c *cli) newLeaderboardCommand() *cobra.Command {
	var (
		world         int64
		limit, offset int
	)
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Args:  cobra.NoArgs,
		Short: "Show the global or per-world leaderboard",
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			if _, err := c.requireSession(cmd.Context()); err != nil {
				return err
			}
			lb := c.app.API.Leaderboard
			var (
				entries []transport.LeaderboardEntry
				err     error
			)
			if world != 0 {
				entries, err = lb.ByWorld(cmd.Context(), world, limit, offset)
			} else {
				entries, err = lb.Global(cmd.Context(), limit, offset)
			}
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tPLAYER\tCLASS\tXP\tGOLD")
			for i, e := range entries {
				rank := offset + i + 1
				if e.RankPosition != nil {
					rank = *e.RankPosition
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", rank, e.Username, e.AvatarClass, e.TotalXP, e.TotalGold)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if me, err := lb.MyRank(cmd.Context(), world); err == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nYour rank: %d (%d XP)\n", me.Rank, me.TotalXP)
			} else {
				c.log.Debug("my rank unavailable", "error", err)
			}
			return nil
		}),
	}
	cmd.Flags().Int64Var(&world, "world", 0, "world id; global when 0")
	cmd.Flags().IntVar(&limit, "limit", 10, "rows to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}
