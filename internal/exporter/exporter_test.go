package exporter_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/exporter"
	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestJSON_Indented(t *testing.T) {
	data, err := exporter.JSON([]project.Project{{ID: "1", Name: "A <b>", Description: "d", Type: project.TypeSell, Usefulness: 4, Status: project.StatusLive}})
	require.NoError(t, err)

	text := string(data)
	require.True(t, strings.HasPrefix(text, "[\n  {\n    \"id\": \"1\",\n"), text)
	require.Contains(t, text, `"name": "A <b>"`)
	require.False(t, strings.HasSuffix(text, "\n"))

	var decoded []project.Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "A <b>", decoded[0].Name)
}

func TestJSON_Empty(t *testing.T) {
	data, err := exporter.JSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestFilename(t *testing.T) {
	require.Equal(t, "projects-2024-05-01.json", exporter.Filename(exporter.FormatJSON, exportTime))
	require.Equal(t, "projects-2024-05-01.csv", exporter.Filename(exporter.FormatCSV, exportTime))
}

func TestParseFormat(t *testing.T) {
	f, err := exporter.ParseFormat(" CSV ")
	require.NoError(t, err)
	require.Equal(t, exporter.FormatCSV, f)

	_, err = exporter.ParseFormat("xml")
	require.ErrorIs(t, err, exporter.ErrUnknownFormat)
}

func TestRender(t *testing.T) {
	seed := project.Seed()
	file, err := exporter.Render(exporter.FormatCSV, seed, exportTime)
	require.NoError(t, err)
	require.Equal(t, "projects-2024-05-01.csv", file.Name)
	require.Equal(t, csvcodec.Encode(seed), string(file.Data))

	_, err = exporter.Render("xml", seed, exportTime)
	require.ErrorIs(t, err, exporter.ErrUnknownFormat)
}

func TestTemplate(t *testing.T) {
	file := exporter.Template()
	require.Equal(t, "projects-template.csv", file.Name)
	require.Equal(t, csvcodec.Template(), string(file.Data))
}

func TestExporter_SavesAndNotifies(t *testing.T) {
	dir := t.TempDir()
	rec := &notify.Recorder{}
	e := exporter.New(exporter.DirSaver{Dir: filepath.Join(dir, "out")}, rec)

	path, err := e.Export(context.Background(), exporter.FormatJSON, project.Seed(), exportTime)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "out", "projects-2024-05-01.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []project.Project
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, project.Seed(), decoded)

	path, err = e.ExportTemplate(context.Background())
	require.NoError(t, err)
	require.FileExists(t, path)

	require.Equal(t, []notify.Notification{
		{Level: notify.LevelSuccess, Title: "Export complete", Message: "Projects exported as JSON"},
		{Level: notify.LevelSuccess, Title: "Template saved", Message: "Template downloaded successfully"},
	}, rec.Notifications())
}

type journalEntry struct {
	typ     activity.EventType
	summary string
}

type journalStub struct {
	entries []journalEntry
}

func (j *journalStub) Record(_ context.Context, typ activity.EventType, _ string, summary string, _ any) {
	j.entries = append(j.entries, journalEntry{typ: typ, summary: summary})
}

func TestExporter_RecordsJournal(t *testing.T) {
	journal := &journalStub{}
	e := exporter.New(exporter.DirSaver{Dir: t.TempDir()}, &notify.Recorder{}).WithJournal(journal)

	_, err := e.Export(context.Background(), exporter.FormatCSV, project.Seed(), exportTime)
	require.NoError(t, err)

	_, err = e.Export(context.Background(), exporter.Format("xml"), project.Seed(), exportTime)
	require.ErrorIs(t, err, exporter.ErrUnknownFormat)

	require.Len(t, journal.entries, 1)
	require.Equal(t, activity.TypeProjectsExported, journal.entries[0].typ)
	require.True(t, strings.HasSuffix(journal.entries[0].summary, "as CSV"))
}
