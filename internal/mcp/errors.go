package mcp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/domain/project"
	"github.com/rpggio/sidetrack/internal/domain/view"
	"github.com/rpggio/sidetrack/internal/exporter"
)

// errInvalidParams marks tool arguments that could not be decoded.
var errInvalidParams = errors.New("invalid params")

// errUnknownMethod marks a dispatch to a tool that does not exist.
var errUnknownMethod = errors.New("unknown method")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_projects to find valid ids"}
	case errors.Is(err, project.ErrDuplicateTag):
		return &APIError{Code: "DUPLICATE_TAG", Message: "Tag already exists"}
	case errors.Is(err, project.ErrEmptyTag), errors.Is(err, project.ErrEmptyEntry), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Name, description, type and status are required"}
	case errors.Is(err, view.ErrUnknownSortKey):
		return &APIError{Code: "UNKNOWN_SORT_KEY", Message: err.Error(), RecoveryHint: "Use one of " + joinSortKeys()}
	case errors.Is(err, exporter.ErrUnknownFormat):
		return &APIError{Code: "UNKNOWN_FORMAT", Message: err.Error(), RecoveryHint: "Use csv or json"}
	case errors.Is(err, importer.ErrNotCSV):
		return &APIError{Code: "NOT_CSV", Message: importer.UploadRejectedMessage}
	case errors.Is(err, importer.ErrImportCanceled):
		return &APIError{Code: "IMPORT_NOT_CONFIRMED", Message: "import was not confirmed", RecoveryHint: "Review preview_import, then call import_csv with confirm=true"}
	case errors.Is(err, importer.ErrNothingToImport):
		return &APIError{Code: "NO_IMPORTABLE_ROWS", Message: "no row could be imported", RecoveryHint: "Fix the listed rows; csv_template shows the expected columns"}
	case errors.Is(err, errInvalidParams):
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
	case errors.Is(err, errUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error()}
	default:
		return nil
	}
}

func joinSortKeys() string {
	keys := make([]string, 0, len(view.SortKeys))
	for _, k := range view.SortKeys {
		keys = append(keys, string(k))
	}
	return strings.Join(keys, ", ")
}
