package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/dashboard"
	md "github.com/nao1215/markdown"
)

// ShortID is the length of the id prefix shown in the positions list.
const ShortID = 8

// PositionsMarkdown renders a list of positions, in the given order.
func PositionsMarkdown(positions []dashboard.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Positions")
	if len(positions) == 0 {
		doc.PlainText("No positions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft,
		},
		Header: []string{"ID", "Name", "Sleeve", "Type", "Issuer", "Value", "P/L", "Maturity", "Tags"},
	}
	total := dashboard.NZD(0)
	for _, p := range positions {
		total = total.Add(p.Value())
		pl := ""
		if v, ok := p.ProfitLoss(); ok {
			pl = v.SignedString()
		}
		id := p.ID
		if len(id) > ShortID {
			id = id[:ShortID]
		}
		table.Rows = append(table.Rows, []string{
			id,
			cell(p.Name),
			cell(p.Sleeve),
			string(p.Type),
			cell(p.Issuer),
			p.Value().String(),
			pl,
			p.MaturityDate.String(),
			cell(strings.Join(p.Tags, ", ")),
		})
	}
	doc.Table(table)
	doc.PlainText(fmt.Sprintf("%d positions, total %s", len(positions), total))
	return doc.String()
}

// PositionMarkdown renders the details of a single position.
func PositionMarkdown(p dashboard.Position) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(p.Name)
	rows := [][]string{
		{"ID", p.ID},
		{"Sleeve", cell(p.Sleeve)},
		{"Type", string(p.Type)},
		{"Issuer", cell(p.Issuer)},
		{"Value", p.Value().String()},
	}
	if p.CostNZD.Valid {
		rows = append(rows, []string{"Cost", dashboard.NZD(p.CostNZD.Decimal).String()})
	}
	if pl, ok := p.ProfitLoss(); ok {
		rows = append(rows, []string{"P/L", pl.SignedString()})
	}
	if !p.MaturityDate.IsZero() {
		rows = append(rows, []string{"Maturity", p.MaturityDate.String()})
	}
	if r := Rate(p.ExpectedRate); r != "" {
		rows = append(rows, []string{"Rate", r})
	}
	if len(p.Tags) > 0 {
		rows = append(rows, []string{"Tags", cell(strings.Join(p.Tags, ", "))})
	}
	if p.Notes != "" {
		rows = append(rows, []string{"Notes", cell(p.Notes)})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Field", "Value"},
		Rows:      rows,
	})
	return doc.String()
}
