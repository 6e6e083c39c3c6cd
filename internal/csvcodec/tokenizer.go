package csvcodec

import "strings"

// TokenizeRow splits one CSV record into raw field values.
//
// Commas separate fields unless inside quotes. A quote toggles the quoted
// state, except that `""` inside quotes is a literal quote character.
// Quote characters themselves never reach the output.
func TokenizeRow(row string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for i := 0; i < len(row); i++ {
		c := row[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(row) && row[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}

	return append(fields, cur.String())
}

// record is one CSV record and the zero-based line it starts on.
type record struct {
	text string
	line int
}

// splitRecords breaks text into records on newlines outside quotes, so a
// quoted cell may span lines. A quote opens a quoted section only at the
// start of a cell; a stray quote inside an unquoted cell is plain text.
func splitRecords(text string) []record {
	var records []record
	start, line, startLine := 0, 0, 0
	inQuotes, cellStart := false, true
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			line++
		}
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					i++
				} else {
					inQuotes = false
				}
			}
			continue
		}
		switch c {
		case '"':
			inQuotes = cellStart
		case ',':
			cellStart = true
			continue
		case '\n':
			records = append(records, record{text: text[start:i], line: startLine})
			start, startLine = i+1, line
			cellStart = true
			continue
		case ' ', '\t':
			if cellStart {
				continue
			}
		}
		cellStart = false
	}
	return append(records, record{text: text[start:], line: startLine})
}
