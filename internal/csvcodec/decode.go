package csvcodec

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/sidetrack/internal/domain/project"
)

// ErrNoDataRows is the message reported when a CSV has no rows after the header.
const ErrNoDataRows = "CSV file has no data rows"

const missingRequired = "Missing required fields (name, description, type, status)"

// ImportResult is the outcome of decoding CSV text. Rows that fail are
// counted and described, never returned as a Go error.
type ImportResult struct {
	Successful []project.Project `json:"successful"`
	Failed     int               `json:"failed"`
	Errors     []string          `json:"errors"`
}

// Decoder turns CSV text into projects.
type Decoder struct {
	// NewID generates identifiers for blank id cells. Defaults to uuid.NewString.
	NewID func() string
}

// Decode parses text with a default Decoder.
func Decode(text string) ImportResult {
	return Decoder{}.Decode(text)
}

// Decode parses text. The first non-blank record is the header; row numbers
// in messages are physical line numbers counted from the header (row 0), so
// blank lines and lines inside multi-line quoted cells are included.
// Columns beyond the end of a short row are left unset. Unknown headers are
// ignored.
func (d Decoder) Decode(text string) ImportResult {
	newID := d.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	records := splitRecords(strings.TrimPrefix(text, "\ufeff"))

	headerAt := -1
	for i, rec := range records {
		if strings.TrimSpace(rec.text) != "" {
			headerAt = i
			break
		}
	}
	if headerAt < 0 || !hasDataRows(records[headerAt+1:]) {
		return ImportResult{
			Successful: []project.Project{},
			Failed:     1,
			Errors:     []string{ErrNoDataRows},
		}
	}

	headers := TokenizeRow(strings.TrimSpace(records[headerAt].text))
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	result := ImportResult{
		Successful: []project.Project{},
		Errors:     []string{},
	}
	for i := headerAt + 1; i < len(records); i++ {
		row := strings.TrimSpace(records[i].text)
		if row == "" {
			continue
		}
		rowNum := records[i].line - records[headerAt].line

		proj, err := decodeRow(headers, row, newID)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if project.ValidateRequired(proj) != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", rowNum, missingRequired))
			continue
		}
		result.Successful = append(result.Successful, proj)
	}

	return result
}

func hasDataRows(records []record) bool {
	for _, rec := range records {
		if strings.TrimSpace(rec.text) != "" {
			return true
		}
	}
	return false
}

// decodeRow maps one record onto a project. A panic while coercing a cell is
// reported as that row's error so the rest of the batch still runs.
func decodeRow(headers []string, row string, newID func() string) (proj project.Project, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	values := TokenizeRow(row)
	for i, header := range headers {
		if i >= len(values) {
			break
		}
		col, ok := columns[header]
		if !ok {
			continue
		}
		if err := col.parse(&proj, strings.TrimSpace(values[i]), newID); err != nil {
			return proj, err
		}
	}
	return proj, nil
}
