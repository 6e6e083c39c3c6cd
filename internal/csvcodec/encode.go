package csvcodec

import (
	"strings"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// HeaderFor returns the union of columns present across projects, in order
// of first appearance, so mixed record shapes still form one table.
func HeaderFor(projects []project.Project) []string {
	seen := make(map[string]bool, len(Columns))
	var header []string
	for i := range projects {
		for _, name := range Columns {
			if seen[name] {
				continue
			}
			if columns[name].present(&projects[i]) {
				seen[name] = true
				header = append(header, name)
			}
		}
	}
	return header
}

// Encode renders projects as CSV text: an unquoted header row followed by one
// fully quoted row per project, each line ending in "\n".
// An empty collection encodes to the empty string.
func Encode(projects []project.Project) string {
	if len(projects) == 0 {
		return ""
	}
	header := HeaderFor(projects)

	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for i := range projects {
		for j, name := range header {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(columns[name].format(&projects[i])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
