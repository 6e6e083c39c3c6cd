// Package dashboard owns the canonical project collection. Every mutation
// builds a new collection value, saves the whole snapshot, and only then
// swaps it in.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/domain/view"
	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/rpggio/sidetrack/internal/repository"
)

// Journal records dashboard events. *activity.Service satisfies it.
type Journal interface {
	Record(ctx context.Context, typ activity.EventType, projectID, summary string, details any)
}

type nopJournal struct{}

func (nopJournal) Record(context.Context, activity.EventType, string, string, any) {}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for dated log entries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides how fresh project ids are made.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithJournal records every mutation in j.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithNotifier sends user-facing notifications to n.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// Service is the dashboard orchestrator.
type Service struct {
	store    repository.ProjectStore
	journal  Journal
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string

	mu       sync.RWMutex
	projects []project.Project
}

// NewService creates a dashboard service. The collection starts empty until Load.
func NewService(store repository.ProjectStore, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		store:    store,
		journal:  nopJournal{},
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
		projects: []project.Project{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.notifier == nil {
		s.notifier = notify.NewLogNotifier(logger)
	}
	return s
}

// Load reads the stored collection. A missing, corrupt, or unreadable
// snapshot is logged and replaced by the seed dataset. It reports whether
// stored data was used.
func (s *Service) Load(ctx context.Context) bool {
	loaded, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case err == nil:
		s.projects = normalizeAll(loaded)
		s.logger.Info("loaded projects", "count", len(s.projects))
		return true
	case errors.Is(err, repository.ErrNotFound):
		s.logger.Info("no saved projects, using seed data")
	default:
		s.logger.Error("loading projects, using seed data", "error", err)
	}
	s.projects = project.Seed()
	return false
}

// Projects returns a snapshot of the collection in its canonical order.
func (s *Service) Projects() []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return project.CloneAll(s.projects)
}

// Get returns one project by id.
func (s *Service) Get(id string) (project.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.projects, id)
	if i < 0 {
		return project.Project{}, fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	return s.projects[i].Clone(), nil
}

// Visible returns the projects passing opts and carrying every selected tag.
func (s *Service) Visible(opts view.FilterOptions, selectedTags []string) []project.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Apply(s.projects, opts, selectedTags)
}

// Tags returns the tag universe of the whole collection.
func (s *Service) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.AllTags(s.projects)
}

// Insights summarizes the whole collection.
func (s *Service) Insights() view.Insights {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.ComputeInsights(s.projects)
}

// Create adds a project from the manual form. Blank type, status, and
// lastUpdated take the form defaults. The id is generated when blank or taken.
func (s *Service) Create(ctx context.Context, p project.Project) (project.Project, error) {
	if p.Type == "" {
		p.Type = project.TypePersonal
	}
	if p.Status == "" {
		p.Status = project.StatusIdea
	}
	if p.LastUpdated == "" {
		p.LastUpdated = s.today()
	}
	p = project.Normalize(p)
	if err := project.Validate(p); err != nil {
		return project.Project{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := importer.Commit(s.projects, []project.Project{p}, s.newID)
	if err := s.commit(ctx, next); err != nil {
		return project.Project{}, fmt.Errorf("creating project: %w", err)
	}

	created := added[0]
	s.journal.Record(ctx, activity.TypeProjectCreated, created.ID, "Created "+created.Name, nil)
	notify.Success(ctx, s.notifier, "Project added", "Project added successfully")
	return created.Clone(), nil
}

// Update replaces the whole record with p.ID.
func (s *Service) Update(ctx context.Context, p project.Project) (project.Project, error) {
	p = project.Normalize(p)
	if err := project.Validate(p); err != nil {
		return project.Project{}, err
	}

	updated, err := s.mutate(ctx, p.ID, func(project.Project) (project.Project, error) {
		return p, nil
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("updating project: %w", err)
	}
	s.journal.Record(ctx, activity.TypeProjectUpdated, updated.ID, "Updated "+updated.Name, nil)
	notify.Success(ctx, s.notifier, "Project updated", "Project updated successfully")
	return updated, nil
}

// Delete removes the project with id.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.projects, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	removed := s.projects[i]

	next := make([]project.Project, 0, len(s.projects)-1)
	next = append(next, s.projects[:i]...)
	next = append(next, s.projects[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.journal.Record(ctx, activity.TypeProjectDeleted, removed.ID, "Deleted "+removed.Name, nil)
	notify.Success(ctx, s.notifier, "Project deleted", "Project deleted successfully")
	return nil
}

// Sort reorders the canonical collection by key and returns the new order.
func (s *Service) Sort(ctx context.Context, key view.SortKey) ([]project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted, err := view.Sort(s.projects, key)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, sorted); err != nil {
		return nil, fmt.Errorf("sorting projects: %w", err)
	}

	s.journal.Record(ctx, activity.TypeProjectsSorted, "", "Sorted projects by "+string(key), map[string]string{"key": string(key)})
	s.notifier.Notify(ctx, notify.Notification{Level: notify.LevelInfo, Title: "Projects sorted", Message: "Sorted projects by " + string(key)})
	return project.CloneAll(sorted), nil
}

// AddTag attaches a trimmed tag to a project.
func (s *Service) AddTag(ctx context.Context, id, tag string) (project.Project, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return project.Project{}, project.ErrEmptyTag
	}
	updated, err := s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		if p.HasTag(tag) {
			return p, fmt.Errorf("%w: %s", project.ErrDuplicateTag, tag)
		}
		p.Tags = append(p.Tags, tag)
		return p, nil
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("adding tag: %w", err)
	}
	s.journal.Record(ctx, activity.TypeProjectUpdated, id, "Tagged "+updated.Name+" with "+tag, map[string]string{"tag": tag})
	notify.Success(ctx, s.notifier, "Tag added", "Tag added")
	return updated, nil
}

// RemoveTag detaches tag from a project. Removing an absent tag is a no-op.
func (s *Service) RemoveTag(ctx context.Context, id, tag string) (project.Project, error) {
	updated, err := s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		kept := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			if t != tag {
				kept = append(kept, t)
			}
		}
		p.Tags = kept
		return p, nil
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("removing tag: %w", err)
	}
	s.journal.Record(ctx, activity.TypeProjectUpdated, id, "Removed tag "+tag+" from "+updated.Name, map[string]string{"tag": tag})
	notify.Success(ctx, s.notifier, "Tag removed", "Tag removed")
	return updated, nil
}

// LogActivity prepends "YYYY-MM-DD: text" to the project's activity log
// (newest first) and stamps lastUpdated with the same date.
func (s *Service) LogActivity(ctx context.Context, id, text string) (project.Project, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return project.Project{}, project.ErrEmptyEntry
	}
	date := s.today()
	updated, err := s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		p.ActivityLog = append([]string{date + ": " + text}, p.ActivityLog...)
		p.LastUpdated = date
		return p, nil
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("logging activity: %w", err)
	}
	s.journal.Record(ctx, activity.TypeProgressLogged, id, text, nil)
	notify.Success(ctx, s.notifier, "Activity logged", "Activity logged")
	return updated, nil
}

// SetProgress sets a project's progress, clamped into 0..100.
func (s *Service) SetProgress(ctx context.Context, id string, progress int) (project.Project, error) {
	progress = project.ClampProgress(progress)
	updated, err := s.mutate(ctx, id, func(p project.Project) (project.Project, error) {
		p.Progress = project.IntPtr(progress)
		return p, nil
	})
	if err != nil {
		return project.Project{}, fmt.Errorf("setting progress: %w", err)
	}
	s.journal.Record(ctx, activity.TypeProjectUpdated, id, fmt.Sprintf("Progress of %s set to %d%%", updated.Name, progress), map[string]int{"progress": progress})
	return updated, nil
}

// Import appends accepted records, giving fresh ids to blank or colliding
// ones. It implements importer.Committer.
func (s *Service) Import(ctx context.Context, accepted []project.Project) ([]project.Project, error) {
	normalized := normalizeAll(accepted)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, added := importer.Commit(s.projects, normalized, s.newID)
	if err := s.commit(ctx, next); err != nil {
		return nil, fmt.Errorf("importing projects: %w", err)
	}

	ids := make([]string, 0, len(added))
	for _, p := range added {
		ids = append(ids, p.ID)
	}
	s.journal.Record(ctx, activity.TypeImportCommitted, "", fmt.Sprintf("Imported %d projects", len(added)), map[string]any{"count": len(added), "ids": ids})
	return project.CloneAll(added), nil
}

// mutate applies fn to the project with id and commits the result.
func (s *Service) mutate(ctx context.Context, id string, fn func(project.Project) (project.Project, error)) (project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.projects, id)
	if i < 0 {
		return project.Project{}, fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	changed, err := fn(s.projects[i].Clone())
	if err != nil {
		return project.Project{}, err
	}
	changed = project.Normalize(changed)
	changed.ID = s.projects[i].ID

	next := project.CloneAll(s.projects)
	next[i] = changed
	if err := s.commit(ctx, next); err != nil {
		return project.Project{}, err
	}
	return changed.Clone(), nil
}

// commit saves next and swaps it in. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, next []project.Project) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	s.projects = next
	return nil
}

func (s *Service) today() string {
	return s.now().UTC().Format(time.DateOnly)
}

func indexOf(projects []project.Project, id string) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func normalizeAll(projects []project.Project) []project.Project {
	out := make([]project.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, project.Normalize(p))
	}
	return out
}
