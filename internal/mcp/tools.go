package mcp

// ToolDefinition describes one MCP tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

func str(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func object(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func projectFields() map[string]any {
	return map[string]any{
		"name":        str("Project name"),
		"description": str("What the project is"),
		"summary":     str("One-line summary shown on the card"),
		"type":        map[string]any{"type": "string", "enum": []string{"personal", "sell"}},
		"usefulness":  map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
		"status":      map[string]any{"type": "string", "enum": []string{"idea", "in_progress", "completed", "abandoned", "live"}},
		"stage":       map[string]any{"type": "string", "enum": []string{"Idea", "Build", "Launch", "Market", "Scale"}},
		"isMonetized": map[string]any{"type": "boolean"},
		"githubUrl":   str("Repository URL"),
		"websiteUrl":  str("Website URL"),
		"nextAction":  str("The next concrete step"),
		"lastUpdated": str("Date of the last update (YYYY-MM-DD)"),
		"progress":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"activityLog": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		"tags":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	updateFields := projectFields()
	updateFields["id"] = str("Project ID")
	createFields := projectFields()
	createFields["id"] = str("Project ID (optional, generated when blank or taken)")

	return []ToolDefinition{
		// Browsing
		{
			Name:        "list_projects",
			Description: "List projects matching the dashboard filters; every filter is optional",
			InputSchema: object(map[string]any{
				"search":            str("Case-insensitive text matched against name, summary and description"),
				"status":            str("Status to keep, or all"),
				"type":              str("Type to keep, or all"),
				"usefulness":        str("Usefulness rating to keep (1-5), or all"),
				"showMonetizedOnly": map[string]any{"type": "boolean"},
				"tags":              map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Keep projects carrying every tag"},
			}),
		},
		{
			Name:        "get_project",
			Description: "Get one project by id",
			InputSchema: object(map[string]any{"id": str("Project ID")}, "id"),
		},
		{
			Name:        "list_tags",
			Description: "List every distinct tag in first-appearance order",
			InputSchema: object(map[string]any{}),
		},
		{
			Name:        "get_insights",
			Description: "Stage distribution and average progress per month",
			InputSchema: object(map[string]any{}),
		},

		// Editing
		{
			Name:        "create_project",
			Description: "Add a project; type defaults to personal and status to idea",
			InputSchema: object(createFields, "name", "description"),
		},
		{
			Name:        "update_project",
			Description: "Replace every field of an existing project",
			InputSchema: object(updateFields, "id", "name", "description", "type", "status"),
		},
		{
			Name:        "delete_project",
			Description: "Delete a project",
			InputSchema: object(map[string]any{"id": str("Project ID")}, "id"),
		},
		{
			Name:        "sort_projects",
			Description: "Reorder the collection by name, status, usefulness, type or progress",
			InputSchema: object(map[string]any{
				"key": map[string]any{"type": "string", "enum": []string{"name", "status", "usefulness", "type", "progress"}},
			}, "key"),
		},
		{
			Name:        "add_tag",
			Description: "Attach a tag to a project",
			InputSchema: object(map[string]any{"id": str("Project ID"), "tag": str("Tag text")}, "id", "tag"),
		},
		{
			Name:        "remove_tag",
			Description: "Detach a tag from a project",
			InputSchema: object(map[string]any{"id": str("Project ID"), "tag": str("Tag text")}, "id", "tag"),
		},
		{
			Name:        "log_activity",
			Description: "Prepend a dated entry to a project's activity log",
			InputSchema: object(map[string]any{"id": str("Project ID"), "text": str("What happened")}, "id", "text"),
		},
		{
			Name:        "set_progress",
			Description: "Set progress (clamped to 0-100)",
			InputSchema: object(map[string]any{
				"id":       str("Project ID"),
				"progress": map[string]any{"type": "integer"},
			}, "id", "progress"),
		},

		// Import / export
		{
			Name:        "preview_import",
			Description: "Decode CSV text and report what would be imported, without changing anything",
			InputSchema: object(map[string]any{"csv": str("CSV text with a header row")}, "csv"),
		},
		{
			Name:        "import_csv",
			Description: "Import CSV rows; nothing is written unless confirm is true",
			InputSchema: object(map[string]any{
				"csv":     str("CSV text with a header row"),
				"confirm": map[string]any{"type": "boolean", "description": "Commit the successful rows"},
			}, "csv"),
		},
		{
			Name:        "export_projects",
			Description: "Render the whole collection as csv or json",
			InputSchema: object(map[string]any{
				"format": map[string]any{"type": "string", "enum": []string{"csv", "json"}},
			}, "format"),
		},
		{
			Name:        "csv_template",
			Description: "Get the CSV import template",
			InputSchema: object(map[string]any{}),
		},

		// Journal
		{
			Name:        "get_recent_activity",
			Description: "List journal entries, newest first",
			InputSchema: object(map[string]any{
				"project_id": str("Only entries for this project"),
				"type":       str("Only entries of this event type"),
				"since":      str("Only entries on or after this date (YYYY-MM-DD)"),
				"limit":      map[string]any{"type": "integer", "minimum": 1},
				"offset":     map[string]any{"type": "integer", "minimum": 0},
			}),
		},
	}
}
