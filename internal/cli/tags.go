package cli

import (
	"fmt"
	"strings"

	"github.com/rpggio/sidetrack/internal/app"
	"github.com/spf13/cobra"
)

func tagsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.with(cmd, func(a *app.App) error {
				for _, tag := range a.Dashboard.Tags() {
					fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			})
		},
	}
}

func tagCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Add or remove project tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id> <tag>",
		Short: "Attach a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.with(cmd, func(a *app.App) error {
				p, err := a.Dashboard.AddTag(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Name, strings.Join(p.Tags, ", "))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id> <tag>",
		Short: "Detach a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.with(cmd, func(a *app.App) error {
				p, err := a.Dashboard.RemoveTag(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Name, strings.Join(p.Tags, ", "))
				return nil
			})
		},
	})

	return cmd
}
