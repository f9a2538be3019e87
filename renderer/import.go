package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dashboard"
	md "github.com/nao1215/markdown"
)

// PreviewRows is the number of rows shown in an import preview.
const PreviewRows = 25

// ImportPreviewMarkdown renders the first n rows of a batch as they will be read.
func ImportPreviewMarkdown(b *dashboard.ImportBatch, n int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Import Preview")
	doc.PlainText(fmt.Sprintf("Loaded %d rows.\n", b.Len()))

	table := md.TableSet{Header: make([]string, len(b.Headers))}
	table.Alignment = make([]md.TableAlignment, len(b.Headers))
	for i, h := range b.Headers {
		table.Header[i] = cell(h)
		table.Alignment[i] = md.AlignLeft
	}
	for _, row := range b.Preview(n) {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cell(c)
		}
		table.Rows = append(table.Rows, cells)
	}
	doc.Table(table)
	if more := b.Len() - n; more > 0 {
		doc.PlainText(fmt.Sprintf("\n... and %d more rows.", more))
	}
	return doc.String()
}
