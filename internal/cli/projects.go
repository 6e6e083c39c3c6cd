package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rpggio/sidetrack/internal/app"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/domain/view"
	"github.com/spf13/cobra"
)

func listCmd(s *session) *cobra.Command {
	opts := view.DefaultFilter()
	var tags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.with(cmd, func(a *app.App) error {
				visible := a.Dashboard.Visible(opts, tags)
				out := cmd.OutOrStdout()
				if len(visible) == 0 {
					fmt.Fprintln(out, "No projects found")
				} else {
					printTable(out, visible)
				}
				fmt.Fprintf(out, "\nShowing %d of %d projects\n", len(visible), len(a.Dashboard.Projects()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Search, "search", "", "Match name, summary or description")
	cmd.Flags().StringVar(&opts.Status, "status", view.All, "Status to show")
	cmd.Flags().StringVar(&opts.Type, "type", view.All, "Type to show (personal, sell)")
	cmd.Flags().StringVar(&opts.Usefulness, "usefulness", view.All, "Usefulness rating to show (1-5)")
	cmd.Flags().BoolVar(&opts.ShowMonetizedOnly, "monetized", false, "Only monetized projects")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only projects carrying every given tag")
	return cmd
}

func printTable(out io.Writer, projects []project.Project) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tUSEFUL\tPROGRESS\tTAGS")
	for _, p := range projects {
		progress := "-"
		if p.Progress != nil {
			progress = strconv.Itoa(*p.Progress) + "%"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Type, statusLabel(p.Status), stars(p.Usefulness), progress, strings.Join(p.Tags, ", "))
	}
	w.Flush()
}

func statusLabel(s project.Status) string {
	switch s {
	case project.StatusLive:
		return color.New(color.FgGreen).Sprint(s)
	case project.StatusInProgress:
		return color.New(color.FgYellow).Sprint(s)
	case project.StatusAbandoned:
		return color.New(color.FgRed).Sprint(s)
	default:
		return string(s)
	}
}

func stars(n int) string {
	n = project.ClampUsefulness(n)
	return strings.Repeat("★", n) + strings.Repeat("☆", project.MaxUsefulness-n)
}

func showCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.with(cmd, func(a *app.App) error {
				p, err := a.Dashboard.Get(args[0])
				if err != nil {
					return err
				}
				printProject(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
}

func printProject(out io.Writer, p project.Project) {
	bold := color.New(color.Bold)
	fmt.Fprintf(out, "%s (%s)\n", bold.Sprint(p.Name), p.ID)
	if p.Summary != "" {
		fmt.Fprintf(out, "  %s\n", p.Summary)
	}
	fmt.Fprintf(out, "  %s\n\n", p.Description)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Type:\t%s\n", p.Type)
	fmt.Fprintf(w, "  Status:\t%s\n", statusLabel(p.Status))
	if p.Stage != "" {
		fmt.Fprintf(w, "  Stage:\t%s\n", p.Stage)
	}
	fmt.Fprintf(w, "  Usefulness:\t%s\n", stars(p.Usefulness))
	if p.Progress != nil {
		fmt.Fprintf(w, "  Progress:\t%d%%\n", *p.Progress)
	}
	if p.IsMonetized {
		fmt.Fprintf(w, "  Monetized:\tyes\n")
	}
	for _, field := range []struct{ label, value string }{
		{"GitHub", p.GithubURL},
		{"Website", p.WebsiteURL},
		{"Next action", p.NextAction},
		{"Last updated", p.LastUpdated},
	} {
		if field.value != "" {
			fmt.Fprintf(w, "  %s:\t%s\n", field.label, field.value)
		}
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:\t%s\n", strings.Join(p.Tags, ", "))
	}
	w.Flush()

	if len(p.ActivityLog) > 0 {
		fmt.Fprintln(out, "\n  Activity:")
		for _, entry := range p.ActivityLog {
			fmt.Fprintf(out, "    - %s\n", entry)
		}
	}
}

func addCmd(s *session) *cobra.Command {
	var (
		p        project.Project
		typ      string
		status   string
		stage    string
		progress int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if p.Type, err = project.ParseType(typ); err != nil {
				return err
			}
			if p.Status, err = project.ParseStatus(status); err != nil {
				return err
			}
			if p.Stage, err = project.ParseStage(stage); err != nil {
				return err
			}
			if cmd.Flags().Changed("progress") {
				p.Progress = project.IntPtr(progress)
			}
			return s.with(cmd, func(a *app.App) error {
				created, err := a.Dashboard.Create(cmd.Context(), p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s: %s\n", created.ID, created.Name)
				return nil
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "Project name")
	f.StringVar(&p.Description, "description", "", "What the project is")
	f.StringVar(&p.Summary, "summary", "", "One-line summary")
	f.StringVar(&typ, "type", string(project.TypePersonal), "personal or sell")
	f.StringVar(&status, "status", string(project.StatusIdea), "idea, in_progress, completed, abandoned or live")
	f.StringVar(&stage, "stage", "", "Idea, Build, Launch, Market or Scale")
	f.IntVar(&p.Usefulness, "usefulness", project.DefaultUsefulness, "Usefulness rating (1-5)")
	f.IntVar(&progress, "progress", 0, "Progress percentage (0-100)")
	f.BoolVar(&p.IsMonetized, "monetized", false, "The project earns money")
	f.StringVar(&p.GithubURL, "github", "", "Repository URL")
	f.StringVar(&p.WebsiteURL, "website", "", "Website URL")
	f.StringVar(&p.NextAction, "next", "", "Next action")
	f.StringSliceVar(&p.Tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func deleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.with(cmd, func(a *app.App) error {
				return a.Dashboard.Delete(cmd.Context(), args[0])
			})
		},
	}
}

func sortCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:       "sort <name|status|usefulness|type|progress>",
		Short:     "Reorder the collection",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"name", "status", "usefulness", "type", "progress"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := view.ParseSortKey(args[0])
			if err != nil {
				return err
			}
			return s.with(cmd, func(a *app.App) error {
				sorted, err := a.Dashboard.Sort(cmd.Context(), key)
				if err != nil {
					return err
				}
				printTable(cmd.OutOrStdout(), sorted)
				return nil
			})
		},
	}
}

func logCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "log <id> <text...>",
		Short: "Add a dated entry to a project's activity log",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.with(cmd, func(a *app.App) error {
				p, err := a.Dashboard.LogActivity(cmd.Context(), args[0], strings.Join(args[1:], " "))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.ActivityLog[0])
				return nil
			})
		},
	}
}

func progressCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <0-100>",
		Short: "Set a project's progress",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("progress must be a number: %q", args[1])
			}
			return s.with(cmd, func(a *app.App) error {
				p, err := a.Dashboard.SetProgress(cmd.Context(), args[0], n)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%%\n", p.Name, *p.Progress)
				return nil
			})
		},
	}
}
