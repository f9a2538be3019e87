package dashboard

import "strings"

// ParseCSV splits text into rows of fields.
//
// Fields are separated by commas and may be enclosed in double quotes, in
// which case they can contain commas and newlines, and "" stands for a
// literal quote. Carriage returns outside quotes are dropped. An empty line
// is not a row, and rows are not required to have the same number of fields.
func ParseCSV(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)
	// Delimiters are all ASCII, so scanning bytes leaves UTF-8 sequences intact.
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}
		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			field.Reset()
			if len(row) == 1 && row[0] == "" {
				row = nil
				continue
			}
			rows = append(rows, row)
			row = nil
		case '\r':
		default:
			field.WriteByte(c)
		}
	}

	row = append(row, field.String())
	for _, f := range row {
		if f != "" {
			rows = append(rows, row)
			break
		}
	}
	return rows
}
