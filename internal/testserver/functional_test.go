package testserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/dashboard"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/mcp"
	"github.com/rpggio/sidetrack/internal/repository"
	"github.com/rpggio/sidetrack/internal/sqlite"
	"github.com/rpggio/sidetrack/internal/testserver"
	"github.com/rpggio/sidetrack/internal/transport"
	"github.com/stretchr/testify/require"
)

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      any             `json:"id,omitempty"`
}

type rpcError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

func rpcCall(t *testing.T, ts *testserver.TestServer, method string, params any) rpcResponse {
	t.Helper()

	payload := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		payload["params"] = params
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(ts.Server.URL+"/rpc", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func rpcResult[T any](t *testing.T, ts *testserver.TestServer, method string, params any) T {
	t.Helper()
	resp := rpcCall(t, ts, method, params)
	require.Nil(t, resp.Error, "RPC error: %+v", resp.Error)
	var out T
	require.NoError(t, json.Unmarshal(resp.Result, &out))
	return out
}

// reload reads the stored collection back through a fresh dashboard.
func reload(t *testing.T, db *sqlite.DB) []project.Project {
	t.Helper()
	store := sqlite.NewProjectStore(sqlite.NewBlobStore(db), sqlite.DefaultProjectsKey)
	dash := dashboard.NewService(store, nil)
	require.True(t, dash.Load(context.Background()))
	return dash.Projects()
}

func TestFunctional_StartsFromSeed(t *testing.T) {
	ts := testserver.New(t)

	list := rpcResult[mcp.ListProjectsResponse](t, ts, "list_projects", nil)
	require.Equal(t, len(project.Seed()), list.Total)

	tags := rpcResult[mcp.TagsResponse](t, ts, "list_tags", nil)
	require.Equal(t, []string{"React", "Personal", "Commercial", "Food", "Finance", "AI", "Writing", "Health"}, tags.Tags)

	filtered := rpcResult[mcp.ListProjectsResponse](t, ts, "list_projects", map[string]any{"tags": []string{"React", "Commercial"}})
	require.Equal(t, 1, filtered.Visible)
	require.Equal(t, "Recipe Manager", filtered.Projects[0].Name)

	// The seed is not written until something changes.
	_, err := sqlite.NewBlobStore(ts.DB).Get(context.Background(), sqlite.DefaultProjectsKey)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFunctional_EditsPersistAndJournal(t *testing.T) {
	ts := testserver.New(t)

	created := rpcResult[project.Project](t, ts, "create_project", map[string]any{
		"name":        "Sidetrack",
		"description": "dashboard for side projects",
	})
	require.Equal(t, "gen-1", created.ID)
	require.Equal(t, project.TypePersonal, created.Type)
	require.Equal(t, "2024-03-15", created.LastUpdated)

	logged := rpcResult[project.Project](t, ts, "log_activity", map[string]any{"id": created.ID, "text": "wired storage"})
	require.Equal(t, []string{"2024-03-15: wired storage"}, logged.ActivityLog)

	rpcResult[project.Project](t, ts, "add_tag", map[string]any{"id": created.ID, "tag": "go"})

	dup := rpcCall(t, ts, "add_tag", map[string]any{"id": created.ID, "tag": "go"})
	require.NotNil(t, dup.Error)
	require.Equal(t, transport.CodeInvalidParams, dup.Error.Code)
	require.Equal(t, "DUPLICATE_TAG", dup.Error.Data["code"])

	noID := rpcCall(t, ts, "update_project", map[string]any{"name": "Renamed"})
	require.NotNil(t, noID.Error)
	require.Equal(t, transport.CodeInvalidParams, noID.Error.Code)
	require.Equal(t, "INVALID_PARAMS", noID.Error.Data["code"])

	stored := reload(t, ts.DB)
	require.Len(t, stored, len(project.Seed())+1)
	last := stored[len(stored)-1]
	require.Equal(t, []string{"go"}, last.Tags)

	entries := rpcResult[[]mcp.ActivityEntryResponse](t, ts, "get_recent_activity", map[string]any{"project_id": created.ID})
	require.Len(t, entries, 3)
	require.Equal(t, activity.TypeProjectUpdated, entries[0].Type)
	require.Equal(t, activity.TypeProjectCreated, entries[2].Type)
}

func TestFunctional_SortPersistsOrder(t *testing.T) {
	ts := testserver.New(t)

	sorted := rpcResult[mcp.ListProjectsResponse](t, ts, "sort_projects", map[string]any{"key": "name"})
	require.Equal(t, "AI Writing Assistant", sorted.Projects[0].Name)
	require.Equal(t, "AI Writing Assistant", reload(t, ts.DB)[0].Name)

	bad := rpcCall(t, ts, "sort_projects", map[string]any{"key": "date"})
	require.Equal(t, "UNKNOWN_SORT_KEY", bad.Error.Data["code"])
}

func uploadCSV(t *testing.T, url, content string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "projects.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestFunctional_ImportUploadAndExport(t *testing.T) {
	ts := testserver.New(t)
	csvText := "id,name,description,type,status,tags\n" +
		"\"1\",\"Colliding\",\"takes a fresh id\",\"personal\",\"idea\",\"a; b\"\n" +
		"\"\",\"\",\"no name\",\"personal\",\"idea\",\"\"\n"

	resp := uploadCSV(t, ts.Server.URL+"/import", csvText)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, err := sqlite.NewBlobStore(ts.DB).Get(context.Background(), sqlite.DefaultProjectsKey)
	require.ErrorIs(t, err, repository.ErrNotFound, "preview must not write")

	resp = uploadCSV(t, ts.Server.URL+"/import?confirm=true", csvText)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var committed transport.ImportResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&committed))
	require.True(t, committed.Committed)
	require.Equal(t, 1, committed.Failed)
	require.Len(t, committed.Imported, 1)
	require.NotEqual(t, "1", committed.Imported[0].ID)
	require.Equal(t, []string{"a", "b"}, committed.Imported[0].Tags)

	messages := make([]string, 0)
	for _, n := range ts.Notes.Notifications() {
		messages = append(messages, n.Message)
	}
	require.Contains(t, messages, "Successfully imported 1 projects")
	require.Contains(t, messages, "Failed to import 1 projects")

	var exportResp *http.Response
	exportResp, err = http.Get(ts.Server.URL + "/export/json")
	require.NoError(t, err)
	defer exportResp.Body.Close()
	require.Equal(t, `attachment; filename="projects-2024-03-15.json"`, exportResp.Header.Get("Content-Disposition"))
	var exported []project.Project
	require.NoError(t, json.NewDecoder(exportResp.Body).Decode(&exported))
	require.Len(t, exported, len(project.Seed())+1)
}

func TestFunctional_StreamableMCP(t *testing.T) {
	ts := testserver.New(t)
	ctx := context.Background()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	res, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "set_progress",
		Arguments: map[string]any{"id": "3", "progress": 140},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	text := res.Content[0].(*sdkmcp.TextContent).Text
	var updated project.Project
	require.NoError(t, json.Unmarshal([]byte(text), &updated))
	require.Equal(t, 100, *updated.Progress)

	res, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_insights", Arguments: map[string]any{}})
	require.NoError(t, err)
	require.False(t, res.IsError)
}
