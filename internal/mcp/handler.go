package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/domain/view"
	"github.com/rpggio/sidetrack/internal/exporter"
)

// DashboardService defines the collection operations needed by MCP.
type DashboardService interface {
	Projects() []project.Project
	Get(id string) (project.Project, error)
	Visible(opts view.FilterOptions, selectedTags []string) []project.Project
	Tags() []string
	Insights() view.Insights
	Create(ctx context.Context, p project.Project) (project.Project, error)
	Update(ctx context.Context, p project.Project) (project.Project, error)
	Delete(ctx context.Context, id string) error
	Sort(ctx context.Context, key view.SortKey) ([]project.Project, error)
	AddTag(ctx context.Context, id, tag string) (project.Project, error)
	RemoveTag(ctx context.Context, id, tag string) (project.Project, error)
	LogActivity(ctx context.Context, id, text string) (project.Project, error)
	SetProgress(ctx context.Context, id string, progress int) (project.Project, error)
}

// ImportService defines CSV import operations needed by MCP.
type ImportService interface {
	Preview(csvText string) csvcodec.ImportResult
	Run(ctx context.Context, csvText string, confirmer importer.Confirmer) (importer.Outcome, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	Recent(ctx context.Context, opts activity.Query) ([]activity.Event, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Dashboard DashboardService
	Imports   ImportService
	Activity  ActivityService
	// Now stamps export filenames. Defaults to time.Now.
	Now func() time.Time
}

// Handler dispatches MCP commands.
type Handler struct {
	dashboard DashboardService
	imports   ImportService
	activity  ActivityService
	now       func() time.Time
}

// NewHandler creates a new MCP handler.
func NewHandler(svcs Services) *Handler {
	now := svcs.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		dashboard: svcs.Dashboard,
		imports:   svcs.Imports,
		activity:  svcs.Activity,
		now:       now,
	}
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		visible := h.dashboard.Visible(req.FilterOptions, req.Tags)
		return ListProjectsResponse{
			Projects: visible,
			Visible:  len(visible),
			Total:    len(h.dashboard.Projects()),
		}, nil
	case "get_project":
		var req ProjectIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.dashboard.Get(req.ID))
	case "create_project":
		var req ProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.dashboard.Create(ctx, req.toProject()))
	case "update_project":
		var req ProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.ID == "" {
			return nil, mapError(fmt.Errorf("%w: id is required", errInvalidParams))
		}
		return wrap(h.dashboard.Update(ctx, req.toProject()))
	case "delete_project":
		var req ProjectIDParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.dashboard.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteProjectResponse{Deleted: req.ID}, nil
	case "sort_projects":
		var req SortProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		key, err := view.ParseSortKey(req.Key)
		if err != nil {
			return nil, mapError(err)
		}
		sorted, err := h.dashboard.Sort(ctx, key)
		if err != nil {
			return nil, mapError(err)
		}
		return ListProjectsResponse{Projects: sorted, Visible: len(sorted), Total: len(sorted)}, nil
	case "add_tag", "remove_tag":
		var req TagParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if method == "add_tag" {
			return wrap(h.dashboard.AddTag(ctx, req.ID, req.Tag))
		}
		return wrap(h.dashboard.RemoveTag(ctx, req.ID, req.Tag))
	case "log_activity":
		var req LogActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.dashboard.LogActivity(ctx, req.ID, req.Text))
	case "set_progress":
		var req SetProgressParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return wrap(h.dashboard.SetProgress(ctx, req.ID, req.Progress))
	case "list_tags":
		return TagsResponse{Tags: h.dashboard.Tags()}, nil
	case "get_insights":
		return h.dashboard.Insights(), nil
	case "preview_import":
		var req PreviewImportParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result := h.imports.Preview(req.CSV)
		return ImportPreviewResponse{
			Successful: result.Successful,
			Failed:     result.Failed,
			Errors:     nonNil(result.Errors),
			Summary: importer.Summary{
				Successful: len(result.Successful),
				Failed:     result.Failed,
				Errors:     result.Errors,
			}.String(),
		}, nil
	case "import_csv":
		var req ImportCSVParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		confirmer := importer.NeverConfirm
		if req.Confirm {
			confirmer = importer.AlwaysConfirm
		}
		outcome, err := h.imports.Run(ctx, req.CSV, confirmer)
		if err != nil {
			apiErr := MapError(err)
			if apiErr == nil {
				return nil, err
			}
			apiErr.Details = map[string]any{
				"failed": outcome.Result.Failed,
				"errors": nonNil(outcome.Result.Errors),
			}
			return nil, apiErr
		}
		return ImportResponse{
			Imported: outcome.Imported,
			Failed:   outcome.Result.Failed,
			Errors:   nonNil(outcome.Result.Errors),
		}, nil
	case "export_projects":
		var req ExportProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		format, err := exporter.ParseFormat(req.Format)
		if err != nil {
			return nil, mapError(err)
		}
		file, err := exporter.Render(format, h.dashboard.Projects(), h.now())
		if err != nil {
			return nil, mapError(err)
		}
		return fileResponse(file), nil
	case "csv_template":
		return fileResponse(exporter.Template()), nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		q := activity.Query{
			ProjectID: req.ProjectID,
			Type:      activity.EventType(req.Type),
			Limit:     req.Limit,
			Offset:    req.Offset,
		}
		if req.Since != "" {
			since, err := time.Parse(time.DateOnly, req.Since)
			if err != nil {
				return nil, mapError(fmt.Errorf("%w: since must be YYYY-MM-DD", errInvalidParams))
			}
			q.Since = since
		}
		entries, err := h.activity.Recent(ctx, q)
		if err != nil {
			return nil, mapError(err)
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp: entry.CreatedAt,
				Type:      entry.Type,
				ProjectID: entry.ProjectID,
				Summary:   entry.Summary,
				Details:   entry.Details,
			})
		}
		return resp, nil
	default:
		return nil, mapError(fmt.Errorf("%w: %s", errUnknownMethod, method))
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || strings.TrimSpace(string(params)) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return mapError(fmt.Errorf("%w: %v", errInvalidParams, err))
	}
	return nil
}

func wrap(p project.Project, err error) (any, error) {
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func fileResponse(file exporter.File) FileResponse {
	return FileResponse{
		Filename:    file.Name,
		ContentType: file.ContentType,
		Content:     string(file.Data),
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
