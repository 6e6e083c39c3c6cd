package notify_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/stretchr/testify/require"
)

func TestRecorderAndMulti(t *testing.T) {
	ctx := context.Background()
	a, b := &notify.Recorder{}, &notify.Recorder{}
	multi := notify.Multi{a, b}

	notify.Success(ctx, multi, "Import Successful", "Successfully imported 2 projects")
	notify.Warning(ctx, multi, "Import Warning", "Failed to import 1 projects")

	want := []notify.Notification{
		{Level: notify.LevelSuccess, Title: "Import Successful", Message: "Successfully imported 2 projects"},
		{Level: notify.LevelWarning, Title: "Import Warning", Message: "Failed to import 1 projects"},
	}
	require.Equal(t, want, a.Notifications())
	require.Equal(t, want, b.Notifications())

	a.Reset()
	require.Empty(t, a.Notifications())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	notify.Error(context.Background(), notify.NewLogNotifier(logger), "Import Failed", "Row 1: boom")

	out := buf.String()
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, `msg="Import Failed"`)
	require.Contains(t, out, `message="Row 1: boom"`)
}
