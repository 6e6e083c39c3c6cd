package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/sidetrack/internal/domain/activity"
)

// Journal stores dashboard events in the journal table. Timestamps are unix
// nanoseconds so Since filters compare numerically.
type Journal struct {
	db *DB
}

func NewJournal(db *DB) *Journal {
	return &Journal{db: db}
}

func (j *Journal) Append(ctx context.Context, event *activity.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	res, err := j.db.ExecContext(ctx,
		`INSERT INTO journal (project_id, event_type, summary, details, created_at) VALUES (?, ?, ?, ?, ?)`,
		nullable(event.ProjectID), string(event.Type), event.Summary, nullable(event.Details), event.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("inserting journal event: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		event.ID = id
	}
	return nil
}

func (j *Journal) Find(ctx context.Context, q activity.Query) ([]activity.Event, error) {
	var (
		where []string
		args  []any
	)
	if q.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, q.ProjectID)
	}
	if q.Type != "" {
		where = append(where, "event_type = ?")
		args = append(args, string(q.Type))
	}
	if !q.Since.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, q.Since.UnixNano())
	}

	var b strings.Builder
	b.WriteString(`SELECT id, project_id, event_type, summary, details, created_at FROM journal`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")
	// SQLite only accepts OFFSET after LIMIT; -1 means no limit.
	limit := q.Limit
	if limit <= 0 {
		limit = -1
	}
	b.WriteString(" LIMIT ? OFFSET ?")
	args = append(args, limit, max(q.Offset, 0))

	rows, err := j.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	events := []activity.Event{}
	for rows.Next() {
		var (
			e         activity.Event
			projectID sql.NullString
			details   sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &projectID, &e.Type, &e.Summary, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning journal event: %w", err)
		}
		e.ProjectID = projectID.String
		e.Details = details.String
		e.CreatedAt = time.Unix(0, createdAt).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading journal rows: %w", err)
	}
	return events, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
