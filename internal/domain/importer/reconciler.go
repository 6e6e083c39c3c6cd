package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rpggio/sidetrack/internal/csvcodec"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/notify"
)

// Committer applies accepted records to the live collection and returns
// them as stored, with their final ids.
type Committer interface {
	Import(ctx context.Context, accepted []project.Project) ([]project.Project, error)
}

// Outcome reports what an import did.
type Outcome struct {
	Result   csvcodec.ImportResult `json:"result"`
	Imported []project.Project     `json:"imported"`
}

// Reconciler turns CSV text into an accepted mutation of the collection.
type Reconciler struct {
	decoder   csvcodec.Decoder
	committer Committer
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewReconciler creates a Reconciler. A nil notifier logs through logger.
func NewReconciler(committer Committer, notifier notify.Notifier, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	return &Reconciler{committer: committer, notifier: notifier, logger: logger}
}

// Preview decodes csvText without committing anything.
func (r *Reconciler) Preview(csvText string) csvcodec.ImportResult {
	return r.decoder.Decode(csvText)
}

// Run decodes csvText, asks confirmer, and commits the successful rows.
//
// With no successful rows the joined errors are sent as one failure
// notification and ErrNothingToImport is returned. A declined confirmation
// returns ErrImportCanceled. Neither touches the collection.
func (r *Reconciler) Run(ctx context.Context, csvText string, confirmer Confirmer) (Outcome, error) {
	result := r.decoder.Decode(csvText)
	outcome := Outcome{Result: result, Imported: []project.Project{}}

	if len(result.Successful) == 0 {
		notify.Error(ctx, r.notifier, "Import failed", "Import failed: "+strings.Join(result.Errors, ", "))
		return outcome, ErrNothingToImport
	}

	if confirmer == nil {
		confirmer = NeverConfirm
	}
	ok, err := confirmer.Confirm(ctx, Summary{
		Successful: len(result.Successful),
		Failed:     result.Failed,
		Errors:     result.Errors,
	})
	if err != nil {
		return outcome, fmt.Errorf("confirming import: %w", err)
	}
	if !ok {
		return outcome, ErrImportCanceled
	}

	imported, err := r.committer.Import(ctx, result.Successful)
	if err != nil {
		return outcome, fmt.Errorf("committing import: %w", err)
	}
	outcome.Imported = imported

	notify.Success(ctx, r.notifier, "Import complete", fmt.Sprintf("Successfully imported %d projects", len(imported)))
	if result.Failed > 0 {
		notify.Warning(ctx, r.notifier, "Some rows were skipped", fmt.Sprintf("Failed to import %d projects", result.Failed))
		r.logger.Warn("import row errors", "failed", result.Failed, "errors", strings.Join(result.Errors, "; "))
	}
	return outcome, nil
}
