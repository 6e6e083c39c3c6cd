package importer

import "errors"

var (
	// ErrNotCSV is returned by CheckUpload for files that are not CSV.
	ErrNotCSV = errors.New("not a CSV file")

	// ErrImportCanceled is returned when the confirmation step declines the import.
	ErrImportCanceled = errors.New("import canceled")

	// ErrNothingToImport is returned when no row of the file decoded successfully.
	ErrNothingToImport = errors.New("no importable rows")
)

// UploadRejectedMessage is shown to the user when CheckUpload fails.
const UploadRejectedMessage = "Please upload a CSV file"
