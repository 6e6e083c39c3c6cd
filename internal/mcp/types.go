package mcp

import (
	"time"

	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/domain/view"
)

type ListProjectsParams struct {
	view.FilterOptions
	Tags []string `json:"tags,omitempty"`
}

type ProjectIDParams struct {
	ID string `json:"id"`
}

// ProjectParams carries every editable project field. Progress is a pointer
// so an omitted value stays unset.
type ProjectParams struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Summary     string   `json:"summary,omitempty"`
	Type        string   `json:"type,omitempty"`
	Usefulness  int      `json:"usefulness,omitempty"`
	Status      string   `json:"status,omitempty"`
	Stage       string   `json:"stage,omitempty"`
	IsMonetized bool     `json:"isMonetized,omitempty"`
	GithubURL   string   `json:"githubUrl,omitempty"`
	WebsiteURL  string   `json:"websiteUrl,omitempty"`
	NextAction  string   `json:"nextAction,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty"`
	Progress    *int     `json:"progress,omitempty"`
	ActivityLog []string `json:"activityLog,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func (p ProjectParams) toProject() project.Project {
	return project.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Summary:     p.Summary,
		Type:        project.Type(p.Type),
		Usefulness:  p.Usefulness,
		Status:      project.Status(p.Status),
		Stage:       project.Stage(p.Stage),
		IsMonetized: p.IsMonetized,
		GithubURL:   p.GithubURL,
		WebsiteURL:  p.WebsiteURL,
		NextAction:  p.NextAction,
		LastUpdated: p.LastUpdated,
		Progress:    p.Progress,
		ActivityLog: p.ActivityLog,
		Tags:        p.Tags,
	}
}

type SortProjectsParams struct {
	Key string `json:"key"`
}

type TagParams struct {
	ID  string `json:"id"`
	Tag string `json:"tag"`
}

type LogActivityParams struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type SetProgressParams struct {
	ID       string `json:"id"`
	Progress int    `json:"progress"`
}

type PreviewImportParams struct {
	CSV string `json:"csv"`
}

type ImportCSVParams struct {
	CSV     string `json:"csv"`
	Confirm bool   `json:"confirm"`
}

type ExportProjectsParams struct {
	Format string `json:"format"`
}

type GetRecentActivityParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Type      string `json:"type,omitempty"`
	Since     string `json:"since,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

type ListProjectsResponse struct {
	Projects []project.Project `json:"projects"`
	Visible  int               `json:"visible"`
	Total    int               `json:"total"`
}

type DeleteProjectResponse struct {
	Deleted string `json:"deleted"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type ImportPreviewResponse struct {
	Successful []project.Project `json:"successful"`
	Failed     int               `json:"failed"`
	Errors     []string          `json:"errors"`
	Summary    string            `json:"summary"`
}

type ImportResponse struct {
	Imported []project.Project `json:"imported"`
	Failed   int               `json:"failed"`
	Errors   []string          `json:"errors"`
}

type FileResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

type ActivityEntryResponse struct {
	Timestamp time.Time          `json:"timestamp"`
	Type      activity.EventType `json:"type"`
	ProjectID string             `json:"project_id,omitempty"`
	Summary   string             `json:"summary"`
	Details   string             `json:"details,omitempty"`
}
