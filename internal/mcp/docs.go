package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `sidetrack keeps a personal dashboard of side projects.

Each project has a name, description, type (personal or sell), usefulness (1-5),
status (idea, in_progress, completed, abandoned, live), an optional lifecycle
stage (Idea, Build, Launch, Market, Scale), optional progress (0-100), tags, and
a dated activity log with the newest entry first.

Workflow:
1) Browse with list_projects (filters are optional and combine with AND), list_tags and get_insights.
2) Edit with create_project, update_project, add_tag, log_activity and set_progress.
3) To import, call preview_import first, show the summary, then import_csv with confirm=true.
4) export_projects returns the whole collection as csv or json; csv_template returns an empty template.

Docs:
- sidetrack://docs/csv-format
- sidetrack://docs/fields
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "sidetrack://docs/csv-format",
		Name:        "csv_format",
		Title:       "CSV import and export format",
		Description: "Columns, quoting and list cells accepted by preview_import and import_csv.",
		Content: `# CSV format

The first non-blank line is the header. Header names are matched exactly
(for example githubUrl, not GithubURL); unknown headers are ignored.

Required columns: name, description, type, status. A row missing any of them is
reported as "Row N: Missing required fields (name, description, type, status)"
and skipped; the other rows still import.

Optional columns: id, summary, usefulness, stage, isMonetized, githubUrl,
websiteUrl, nextAction, lastUpdated, progress, activityLog, tags.

- Every exported cell is double-quoted; a literal quote is written twice.
- tags and activityLog are semicolon separated inside one cell.
- usefulness is clamped to 1-5 and progress to 0-100.
- isMonetized accepts yes or true in any case and exports as Yes or No.
- An unknown stage imports as Idea; an unknown type or status fails the row.
- A blank or already used id gets a fresh one on import.
`,
	},
	{
		URI:         "sidetrack://docs/fields",
		Name:        "fields",
		Title:       "Project fields",
		Description: "Meaning and allowed values of every project field.",
		Content: `# Project fields

| field       | values                                           |
|-------------|--------------------------------------------------|
| type        | personal, sell                                   |
| usefulness  | 1 to 5                                           |
| status      | idea, in_progress, completed, abandoned, live    |
| stage       | Idea, Build, Launch, Market, Scale (optional)    |
| progress    | 0 to 100 (optional)                              |
| lastUpdated | YYYY-MM-DD                                       |
| activityLog | "YYYY-MM-DD: text" entries, newest first         |

Sorting by usefulness or progress is descending; unset progress sorts as 0.
Sorting by name, status or type is ascending. Equal keys keep their order.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
