package view

import (
	"strconv"
	"strings"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// All disables a status, type, or usefulness predicate.
const All = "all"

// FilterOptions are the standing filters of the dashboard, combined with AND.
// Empty strings behave like All.
type FilterOptions struct {
	Search            string `json:"search,omitempty"`
	Status            string `json:"status,omitempty"`
	Type              string `json:"type,omitempty"`
	Usefulness        string `json:"usefulness,omitempty"`
	ShowMonetizedOnly bool   `json:"showMonetizedOnly,omitempty"`
}

// DefaultFilter matches every project.
func DefaultFilter() FilterOptions {
	return FilterOptions{Status: All, Type: All, Usefulness: All}
}

func disabled(v string) bool {
	return v == "" || v == All
}

// Apply returns the visible subset of projects, in collection order.
// selectedTags, when non-empty, keeps only projects carrying every tag.
// The input is not modified.
func Apply(projects []project.Project, opts FilterOptions, selectedTags []string) []project.Project {
	search := strings.ToLower(opts.Search)

	filterUsefulness := !disabled(opts.Usefulness)
	wantUsefulness, err := strconv.Atoi(strings.TrimSpace(opts.Usefulness))
	if filterUsefulness && err != nil {
		// matches nothing, like a NaN comparison
		wantUsefulness = -1
	}

	out := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !disabled(opts.Status) && string(p.Status) != opts.Status {
			continue
		}
		if !disabled(opts.Type) && string(p.Type) != opts.Type {
			continue
		}
		if filterUsefulness && p.Usefulness != wantUsefulness {
			continue
		}
		if opts.ShowMonetizedOnly && !p.IsMonetized {
			continue
		}
		if !HasAllTags(p, selectedTags) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func matchesSearch(p project.Project, search string) bool {
	if strings.Contains(strings.ToLower(p.Name), search) {
		return true
	}
	if p.Summary != "" && strings.Contains(strings.ToLower(p.Summary), search) {
		return true
	}
	return strings.Contains(strings.ToLower(p.Description), search)
}

// HasAllTags reports whether p carries every tag in selected.
func HasAllTags(p project.Project, selected []string) bool {
	for _, tag := range selected {
		if !p.HasTag(tag) {
			return false
		}
	}
	return true
}
