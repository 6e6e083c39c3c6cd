package importer

import (
	"fmt"
	"mime"
	"strings"
)

// CSVContentType is the accepted upload MIME type.
const CSVContentType = "text/csv"

// CheckUpload rejects anything that is neither text/csv nor named *.csv
// before it reaches the codec. contentType may carry parameters.
func CheckUpload(filename, contentType string) error {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == CSVContentType {
		return nil
	}
	if strings.HasSuffix(filename, ".csv") {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotCSV, filename)
}
