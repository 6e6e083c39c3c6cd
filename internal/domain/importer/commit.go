package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/rpggio/sidetrack/internal/domain/project"
)

// Commit appends accepted to existing and returns the new collection along
// with the appended records. A record keeps its id unless it is blank or
// already taken by an existing record or an earlier record of the batch;
// those get a fresh id from newID. Nothing is de-duplicated by name.
// Neither input slice is modified.
func Commit(existing, accepted []project.Project, newID func() string) (collection, added []project.Project) {
	if newID == nil {
		newID = uuid.NewString
	}

	taken := make(map[string]struct{}, len(existing)+len(accepted))
	for _, p := range existing {
		taken[p.ID] = struct{}{}
	}

	added = make([]project.Project, 0, len(accepted))
	for _, p := range accepted {
		rec := p.Clone()
		rec.ID = strings.TrimSpace(rec.ID)
		if _, clash := taken[rec.ID]; clash || rec.ID == "" {
			rec.ID = freshID(taken, newID)
		}
		taken[rec.ID] = struct{}{}
		added = append(added, rec)
	}

	collection = make([]project.Project, 0, len(existing)+len(added))
	collection = append(collection, project.CloneAll(existing)...)
	collection = append(collection, project.CloneAll(added)...)
	return collection, added
}

func freshID(taken map[string]struct{}, newID func() string) string {
	for {
		id := newID()
		if _, clash := taken[id]; !clash && id != "" {
			return id
		}
	}
}
