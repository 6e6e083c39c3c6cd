package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rpggio/sidetrack/internal/app"
	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/exporter"
	"github.com/spf13/cobra"
)

func importCmd(s *session) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import projects from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := importer.CheckUpload(filepath.Base(path), ""); err != nil {
				return errors.New(importer.UploadRejectedMessage)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			confirmer := importer.AlwaysConfirm
			if !yes {
				confirmer = promptConfirm(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			return s.with(cmd, func(a *app.App) error {
				outcome, err := a.Imports.Run(cmd.Context(), string(data), confirmer)
				switch {
				case errors.Is(err, importer.ErrImportCanceled):
					fmt.Fprintln(cmd.OutOrStdout(), "Import canceled")
					return nil
				case err != nil:
					return err
				}
				for _, p := range outcome.Imported {
					fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %s\n", p.ID, p.Name)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Import without asking")
	return cmd
}

// promptConfirm shows the import summary and reads y/yes from in.
func promptConfirm(in io.Reader, out io.Writer) importer.Confirmer {
	return importer.ConfirmFunc(func(_ context.Context, summary importer.Summary) (bool, error) {
		for _, msg := range summary.Errors {
			fmt.Fprintf(out, "  %s %s\n", color.New(color.FgYellow).Sprint("!"), msg)
		}
		fmt.Fprintf(out, "%s [y/N] ", summary)

		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}

func exportCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every project to projects-<date>.<format>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := exporter.ParseFormat(format)
			if err != nil {
				return err
			}
			return s.with(cmd, func(a *app.App) error {
				path, err := a.Exporter.Export(cmd.Context(), f, a.Dashboard.Projects(), a.Now())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(exporter.FormatCSV), "csv or json")
	return cmd
}

func templateCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Write the CSV import template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.with(cmd, func(a *app.App) error {
				path, err := a.Exporter.ExportTemplate(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
}
