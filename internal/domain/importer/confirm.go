package importer

import (
	"context"
	"fmt"
)

// Summary is what the user sees before an import is committed.
type Summary struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors,omitempty"`
}

func (s Summary) String() string {
	msg := fmt.Sprintf("Import %d projects?", s.Successful)
	if s.Failed > 0 {
		msg += fmt.Sprintf(" %d rows failed and will be skipped.", s.Failed)
	}
	return msg
}

// Confirmer gates a decoded import before it mutates the collection.
type Confirmer interface {
	Confirm(ctx context.Context, summary Summary) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, summary Summary) (bool, error)

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, summary Summary) (bool, error) {
	return f(ctx, summary)
}

// AlwaysConfirm accepts every import.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, Summary) (bool, error) { return true, nil })

// NeverConfirm declines every import.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, Summary) (bool, error) { return false, nil })
