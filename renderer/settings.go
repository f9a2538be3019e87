package renderer

import (
	"bytes"

	"github.com/etnz/dashboard"
	md "github.com/nao1215/markdown"
)

// TargetsMarkdown renders the sleeves and their targets.
func TargetsMarkdown(sleeves []dashboard.Sleeve) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Sleeve Targets")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Sleeve", "Target"},
	}
	for _, s := range sleeves {
		table.Rows = append(table.Rows, []string{cell(s.Name), s.Target.String()})
	}
	table.Rows = append(table.Rows, []string{md.Bold("Total"), md.Bold(dashboard.SumTargets(sleeves).String())})
	doc.Table(table)
	return doc.String()
}

// RunwayMarkdown renders the runway settings and the runway they give.
func RunwayMarkdown(o *dashboard.Overview) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Runway")
	burn := "not set"
	if o.Runway.HasBurn() {
		burn = dashboard.NZD(o.Runway.Burn()).String()
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Setting", "Value"},
		Rows: [][]string{
			{"Monthly burn", burn},
			{"Runway sleeve", cell(o.Runway.Sleeve())},
			{"Sleeve value", o.RunwayValue.String()},
			{"Runway", RunwayMonths(o)},
		},
	})
	if !o.RunwayMonths.Valid {
		doc.PlainText("Set a monthly burn to compute the runway: dash runway -burn <amount>")
	}
	return doc.String()
}
