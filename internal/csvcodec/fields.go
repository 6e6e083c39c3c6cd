package csvcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// Column names as they appear in CSV headers and JSON exports.
const (
	ColID          = "id"
	ColName        = "name"
	ColSummary     = "summary"
	ColDescription = "description"
	ColType        = "type"
	ColUsefulness  = "usefulness"
	ColStatus      = "status"
	ColStage       = "stage"
	ColIsMonetized = "isMonetized"
	ColGithubURL   = "githubUrl"
	ColWebsiteURL  = "websiteUrl"
	ColNextAction  = "nextAction"
	ColLastUpdated = "lastUpdated"
	ColProgress    = "progress"
	ColActivityLog = "activityLog"
	ColTags        = "tags"
)

// Columns is the canonical column order.
var Columns = []string{
	ColID, ColName, ColSummary, ColDescription, ColType, ColUsefulness,
	ColStatus, ColStage, ColIsMonetized, ColGithubURL, ColWebsiteURL,
	ColNextAction, ColLastUpdated, ColProgress, ColActivityLog, ColTags,
}

const listSeparator = "; "

// column binds a header name to typed accessors on project.Project.
type column struct {
	present func(p *project.Project) bool
	format  func(p *project.Project) string
	parse   func(p *project.Project, value string, newID func() string) error
}

func always(*project.Project) bool { return true }

func textColumn(field func(p *project.Project) *string) column {
	return column{
		present: func(p *project.Project) bool { return *field(p) != "" },
		format:  func(p *project.Project) string { return *field(p) },
		parse: func(p *project.Project, value string, _ func() string) error {
			*field(p) = value
			return nil
		},
	}
}

func listColumn(field func(p *project.Project) *[]string) column {
	return column{
		present: func(p *project.Project) bool { return *field(p) != nil },
		format:  func(p *project.Project) string { return strings.Join(*field(p), listSeparator) },
		parse: func(p *project.Project, value string, _ func() string) error {
			*field(p) = splitList(value)
			return nil
		},
	}
}

var columns = map[string]column{
	ColID: {
		present: always,
		format:  func(p *project.Project) string { return p.ID },
		parse: func(p *project.Project, value string, newID func() string) error {
			if value == "" {
				value = newID()
			}
			p.ID = value
			return nil
		},
	},
	ColName:        textColumn(func(p *project.Project) *string { return &p.Name }),
	ColSummary:     textColumn(func(p *project.Project) *string { return &p.Summary }),
	ColDescription: textColumn(func(p *project.Project) *string { return &p.Description }),
	ColType: {
		present: always,
		format:  func(p *project.Project) string { return string(p.Type) },
		parse: func(p *project.Project, value string, _ func() string) error {
			if value == "" {
				return nil
			}
			t := project.Type(value)
			if !t.Valid() {
				return fmt.Errorf("unknown type %q", value)
			}
			p.Type = t
			return nil
		},
	},
	ColUsefulness: {
		present: always,
		format:  func(p *project.Project) string { return strconv.Itoa(p.Usefulness) },
		parse: func(p *project.Project, value string, _ func() string) error {
			n, ok := parseLeadingInt(value)
			if !ok {
				n = project.DefaultUsefulness
			}
			p.Usefulness = project.ClampUsefulness(n)
			return nil
		},
	},
	ColStatus: {
		present: always,
		format:  func(p *project.Project) string { return string(p.Status) },
		parse: func(p *project.Project, value string, _ func() string) error {
			if value == "" {
				return nil
			}
			s := project.Status(value)
			if !s.Valid() {
				return fmt.Errorf("unknown status %q", value)
			}
			p.Status = s
			return nil
		},
	},
	ColStage: {
		present: func(p *project.Project) bool { return p.Stage != "" },
		format:  func(p *project.Project) string { return string(p.Stage) },
		parse: func(p *project.Project, value string, _ func() string) error {
			if value == "" {
				return nil
			}
			s := project.Stage(value)
			if !s.Valid() {
				s = project.StageIdea
			}
			p.Stage = s
			return nil
		},
	},
	ColIsMonetized: {
		present: always,
		format: func(p *project.Project) string {
			if p.IsMonetized {
				return "Yes"
			}
			return "No"
		},
		parse: func(p *project.Project, value string, _ func() string) error {
			v := strings.ToLower(value)
			p.IsMonetized = v == "true" || v == "yes"
			return nil
		},
	},
	ColGithubURL:   textColumn(func(p *project.Project) *string { return &p.GithubURL }),
	ColWebsiteURL:  textColumn(func(p *project.Project) *string { return &p.WebsiteURL }),
	ColNextAction:  textColumn(func(p *project.Project) *string { return &p.NextAction }),
	ColLastUpdated: textColumn(func(p *project.Project) *string { return &p.LastUpdated }),
	ColProgress: {
		present: func(p *project.Project) bool { return p.Progress != nil },
		format: func(p *project.Project) string {
			if p.Progress == nil {
				return ""
			}
			return strconv.Itoa(*p.Progress)
		},
		parse: func(p *project.Project, value string, _ func() string) error {
			n, ok := parseLeadingInt(value)
			if !ok {
				n = 0
			}
			p.Progress = project.IntPtr(project.ClampProgress(n))
			return nil
		},
	},
	ColActivityLog: listColumn(func(p *project.Project) *[]string { return &p.ActivityLog }),
	ColTags: {
		present: func(p *project.Project) bool { return p.Tags != nil },
		format:  func(p *project.Project) string { return strings.Join(p.Tags, listSeparator) },
		parse: func(p *project.Project, value string, _ func() string) error {
			p.Tags = project.DedupeTags(splitList(value))
			return nil
		},
	},
}

// splitList splits a `;`-joined cell. An empty cell is an empty, non-nil list.
func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ";")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}

// parseLeadingInt reads an optional sign and the leading run of digits,
// so "75%" is 75 and "4.5" is 4. It fails when no digit leads the value.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
