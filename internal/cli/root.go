// Package cli implements the sidetrack command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/rpggio/sidetrack/internal/app"
	"github.com/rpggio/sidetrack/internal/config"
	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Opener builds the application for one command run. The returned func
// releases it.
type Opener func(ctx context.Context, notifier notify.Notifier) (*app.App, func() error, error)

// session opens the application once per command run.
type session struct {
	open Opener
}

// with opens the application, runs fn, and releases it.
func (s *session) with(cmd *cobra.Command, fn func(a *app.App) error) error {
	a, closeFn, err := s.open(cmd.Context(), &printNotifier{w: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(a)
}

// NewRootCmd assembles every subcommand around open.
func NewRootCmd(open Opener) *cobra.Command {
	s := &session{open: open}

	root := &cobra.Command{
		Use:           "sidetrack",
		Short:         "Track side projects from the terminal",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		listCmd(s),
		showCmd(s),
		addCmd(s),
		deleteCmd(s),
		sortCmd(s),
		tagsCmd(s),
		tagCmd(s),
		logCmd(s),
		progressCmd(s),
		importCmd(s),
		exportCmd(s),
		templateCmd(s),
		insightsCmd(s),
		activityCmd(s),
	)
	return root
}

// Execute runs the CLI against the configured database.
func Execute() {
	root := NewRootCmd(DefaultOpener)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("Error: ")+err.Error())
		os.Exit(1)
	}
}

// DefaultOpener loads configuration and opens the database it names. Logs go
// to the configured file, along with every notification, or to stderr at
// warn level.
func DefaultOpener(ctx context.Context, notifier notify.Notifier) (*app.App, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var logWriter io.Writer = os.Stderr
	level := slog.LevelWarn
	var rotated *lumberjack.Logger
	if cfg.Log.Path != "" {
		rotated = &lumberjack.Logger{
			Filename:   cfg.Log.Path,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
		logWriter = rotated
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{Level: level}))

	db, err := app.OpenDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if rotated != nil {
		// The terminal shows notifications; the log file keeps a copy.
		notifier = notify.Multi{notifier, notify.NewLogNotifier(logger)}
	}
	a := app.New(ctx, cfg, db, logger, app.Options{Notifier: notifier})

	closeFn := func() error {
		err := db.Close()
		if rotated != nil {
			_ = rotated.Close()
		}
		return err
	}
	return a, closeFn, nil
}

// printNotifier writes notifications as colored one-liners.
type printNotifier struct {
	w io.Writer
}

func (p *printNotifier) Notify(_ context.Context, n notify.Notification) {
	var mark string
	switch n.Level {
	case notify.LevelSuccess:
		mark = color.New(color.FgGreen).Sprint("✓")
	case notify.LevelWarning:
		mark = color.New(color.FgYellow).Sprint("!")
	case notify.LevelError:
		mark = color.New(color.FgRed).Sprint("✗")
	default:
		mark = color.New(color.FgBlue).Sprint("i")
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, n.Message)
}
