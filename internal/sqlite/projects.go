package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/repository"
)

// DefaultProjectsKey is the blob key the collection is stored under.
const DefaultProjectsKey = "dashboard_projects"

// ProjectStore implements repository.ProjectStore as one JSON snapshot in a
// blob store. Every Save rewrites the whole collection.
type ProjectStore struct {
	blobs repository.BlobStore
	key   string
}

// NewProjectStore creates a ProjectStore. An empty key uses DefaultProjectsKey.
func NewProjectStore(blobs repository.BlobStore, key string) *ProjectStore {
	if key == "" {
		key = DefaultProjectsKey
	}
	return &ProjectStore{blobs: blobs, key: key}
}

// Load decodes the stored snapshot
func (s *ProjectStore) Load(ctx context.Context) ([]project.Project, error) {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	var projects []project.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	if projects == nil {
		// "null" is not a collection
		return nil, fmt.Errorf("%w: snapshot is null", repository.ErrCorrupt)
	}
	return projects, nil
}

// Save writes the whole collection
func (s *ProjectStore) Save(ctx context.Context, projects []project.Project) error {
	if projects == nil {
		projects = []project.Project{}
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}
	return s.blobs.Put(ctx, s.key, data)
}
