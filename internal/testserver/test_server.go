package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/sidetrack/internal/app"
	"github.com/rpggio/sidetrack/internal/config"
	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/rpggio/sidetrack/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// FixedNow is the clock of every test server.
var FixedNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	App    *app.App
	Notes  *notify.Recorder
}

// New starts the full HTTP stack on a private in-memory database. The
// collection starts from the seed data.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	cfg := config.Default()
	cfg.Export.Dir = t.TempDir()

	notes := &notify.Recorder{}
	n := 0
	a := app.New(context.Background(), cfg, db, nil, app.Options{
		Notifier: notes,
		Now:      func() time.Time { return FixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("gen-%d", n)
		},
	})
	server := httptest.NewServer(a.Router())

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    a,
		Notes:  notes,
	}
}
