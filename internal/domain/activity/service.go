package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultLimit caps Recent when the query sets no limit.
const DefaultLimit = 50

// Service is the dashboard change journal.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Append validates and stores an event, stamping CreatedAt when unset.
func (s *Service) Append(ctx context.Context, event *Event) error {
	if event == nil || event.Type == "" || strings.TrimSpace(event.Summary) == "" {
		return ErrInvalidInput
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}
	if err := s.store.Append(ctx, event); err != nil {
		return fmt.Errorf("appending %s event: %w", event.Type, err)
	}
	return nil
}

// Record appends an event for a completed mutation. details, when non-nil,
// is stored as JSON. Failures are logged only: a lost journal line must not
// undo a saved change.
func (s *Service) Record(ctx context.Context, typ EventType, projectID, summary string, details any) {
	event := &Event{Type: typ, ProjectID: projectID, Summary: summary}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("encoding journal details", "type", typ, "error", err)
		} else {
			event.Details = string(raw)
		}
	}
	if err := s.Append(ctx, event); err != nil {
		s.logger.Warn("recording journal event", "type", typ, "project_id", projectID, "error", err)
	}
}

// Recent returns matching events, newest first, never nil.
func (s *Service) Recent(ctx context.Context, q Query) ([]Event, error) {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	events, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("reading journal: %w", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}
