package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rpggio/sidetrack/internal/app"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/spf13/cobra"
)

const barWidth = 20

func insightsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Stage distribution and progress over time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.with(cmd, func(a *app.App) error {
				in := a.Dashboard.Insights()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%d projects, %d monetized\n", in.Total, in.Monetized)

				w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "\nSTAGE\tCOUNT\t")
				for _, sc := range in.Stages {
					fmt.Fprintf(w, "%s\t%d\t%s\n", sc.Stage, sc.Count, bar(sc.Count, in.Total))
				}
				fmt.Fprintln(w, "\nMONTH\tAVG PROGRESS\t")
				for _, mp := range in.ProgressByMonth {
					fmt.Fprintf(w, "%s\t%d%%\t%s\n", mp.Month, mp.Progress, bar(mp.Progress, 100))
				}
				return w.Flush()
			})
		},
	}
}

func bar(n, total int) string {
	if total <= 0 {
		return ""
	}
	return strings.Repeat("█", n*barWidth/total)
}

func activityCmd(s *session) *cobra.Command {
	var (
		q     activity.Query
		since string
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the change journal, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if since != "" {
				t, err := time.Parse(time.DateOnly, since)
				if err != nil {
					return fmt.Errorf("invalid --since %q: want YYYY-MM-DD", since)
				}
				q.Since = t
			}
			return s.with(cmd, func(a *app.App) error {
				events, err := a.Activity.Recent(cmd.Context(), q)
				if err != nil {
					return err
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				for _, e := range events {
					fmt.Fprintf(w, "%s\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.Type, e.Summary)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&q.ProjectID, "project", "", "Only entries for this project")
	cmd.Flags().StringVar(&since, "since", "", "Only entries on or after this date (YYYY-MM-DD)")
	cmd.Flags().IntVarP(&q.Limit, "limit", "n", activity.DefaultLimit, "Maximum entries")
	return cmd
}
