// Package exporter renders the project collection as downloadable files.
package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/notify"
)

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// JSON renders projects as a two-space indented JSON array.
func JSON(projects []project.Project) ([]byte, error) {
	if projects == nil {
		projects = []project.Project{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(projects); err != nil {
		return nil, fmt.Errorf("encoding projects: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// CSV renders projects in the import/export CSV format.
func CSV(projects []project.Project) []byte {
	return []byte(csvcodec.Encode(projects))
}

// Filename returns projects-YYYY-MM-DD.<format> for the UTC date of now.
func Filename(format Format, now time.Time) string {
	return fmt.Sprintf("projects-%s.%s", now.UTC().Format(time.DateOnly), format)
}

// Render produces the export file for format.
func Render(format Format, projects []project.Project, now time.Time) (File, error) {
	switch format {
	case FormatJSON:
		data, err := JSON(projects)
		if err != nil {
			return File{}, err
		}
		return File{Name: Filename(format, now), ContentType: "application/json; charset=utf-8", Data: data}, nil
	case FormatCSV:
		return File{Name: Filename(format, now), ContentType: "text/csv; charset=utf-8", Data: CSV(projects)}, nil
	}
	return File{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Template returns the downloadable import template.
func Template() File {
	return File{
		Name:        csvcodec.TemplateFilename,
		ContentType: "text/csv; charset=utf-8",
		Data:        []byte(csvcodec.Template()),
	}
}

// FileSaver stores a rendered file and reports where it went.
type FileSaver interface {
	Save(ctx context.Context, file File) (string, error)
}

// DirSaver writes files into a directory.
type DirSaver struct {
	Dir string
}

// Save implements FileSaver.
func (d DirSaver) Save(_ context.Context, file File) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", file.Name, err)
	}
	return path, nil
}

// Journal records completed exports.
type Journal interface {
	Record(ctx context.Context, typ activity.EventType, projectID, summary string, details any)
}

// Exporter renders and saves exports, then notifies the user.
type Exporter struct {
	saver    FileSaver
	notifier notify.Notifier
	journal  Journal
}

// New creates an Exporter.
func New(saver FileSaver, notifier notify.Notifier) *Exporter {
	if notifier == nil {
		notifier = notify.NewLogNotifier(nil)
	}
	return &Exporter{saver: saver, notifier: notifier}
}

// WithJournal makes Export record an activity entry per export.
func (e *Exporter) WithJournal(j Journal) *Exporter {
	e.journal = j
	return e
}

// Export renders projects in format and saves the file.
func (e *Exporter) Export(ctx context.Context, format Format, projects []project.Project, now time.Time) (string, error) {
	file, err := Render(format, projects, now)
	if err != nil {
		return "", err
	}
	location, err := e.saver.Save(ctx, file)
	if err != nil {
		return "", fmt.Errorf("saving export: %w", err)
	}
	label := strings.ToUpper(string(format))
	if e.journal != nil {
		e.journal.Record(ctx, activity.TypeProjectsExported, "",
			fmt.Sprintf("Exported %d projects as %s", len(projects), label),
			map[string]string{"format": string(format), "location": location})
	}
	notify.Success(ctx, e.notifier, "Export complete", "Projects exported as "+label)
	return location, nil
}

// ExportTemplate saves the import template.
func (e *Exporter) ExportTemplate(ctx context.Context) (string, error) {
	location, err := e.saver.Save(ctx, Template())
	if err != nil {
		return "", fmt.Errorf("saving template: %w", err)
	}
	notify.Success(ctx, e.notifier, "Template saved", "Template downloaded successfully")
	return location, nil
}
