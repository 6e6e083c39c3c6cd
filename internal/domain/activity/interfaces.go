package activity

import "context"

// Store is the append-only journal backing Service.
type Store interface {
	Append(ctx context.Context, event *Event) error
	Find(ctx context.Context, q Query) ([]Event, error)
}
