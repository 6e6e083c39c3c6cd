package view

import "github.com/rpggio/sidetrack/internal/domain/project"

// AllTags returns the distinct non-empty tags across projects in order of
// first appearance, regardless of any filter.
func AllTags(projects []project.Project) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range projects {
		for _, tag := range p.Tags {
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
