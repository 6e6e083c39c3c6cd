package view

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rpggio/sidetrack/internal/domain/project"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrUnknownSortKey indicates an unsupported sort key.
var ErrUnknownSortKey = errors.New("unknown sort key")

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByStatus     SortKey = "status"
	SortByUsefulness SortKey = "usefulness"
	SortByType       SortKey = "type"
	SortByProgress   SortKey = "progress"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{SortByName, SortByStatus, SortByUsefulness, SortByType, SortByProgress}

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

// Sort returns a reordered copy of projects. Names sort ascending in
// collation order ("apple" before "Zebra"); status and type sort ascending
// by code; usefulness and progress sort descending with unset progress as 0.
// Equal keys keep their relative order.
func Sort(projects []project.Project, key SortKey) ([]project.Project, error) {
	var compare func(a, b project.Project) int
	switch key {
	case SortByName:
		// Collators keep scratch buffers, so each sort gets its own.
		col := collate.New(language.Und)
		compare = func(a, b project.Project) int { return col.CompareString(a.Name, b.Name) }
	case SortByStatus:
		compare = func(a, b project.Project) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case SortByUsefulness:
		compare = func(a, b project.Project) int { return cmp.Compare(b.Usefulness, a.Usefulness) }
	case SortByType:
		compare = func(a, b project.Project) int { return strings.Compare(string(a.Type), string(b.Type)) }
	case SortByProgress:
		compare = func(a, b project.Project) int { return cmp.Compare(b.ProgressValue(), a.ProgressValue()) }
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, key)
	}

	sorted := project.CloneAll(projects)
	slices.SortStableFunc(sorted, compare)
	return sorted, nil
}
