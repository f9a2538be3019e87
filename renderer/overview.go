package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/dashboard"
	md "github.com/nao1215/markdown"
)

// OverviewMarkdown renders the dashboard overview: headline figures,
// allocation against targets and upcoming maturities.
func OverviewMarkdown(o *dashboard.Overview, on dashboard.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Dashboard on %s", on))

	maxDrift := "-"
	if o.MaxDriftSleeve != "" {
		maxDrift = fmt.Sprintf("%s: %s", o.MaxDriftSleeve, o.MaxDrift)
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Value"), md.Bold(o.Total.String())},
		Rows: [][]string{
			{"Positions", fmt.Sprintf("%d positions, %d cash accounts", o.PositionCount, o.CashAccounts)},
			{"Runway", RunwayLabel(o)},
			{"Max drift", cell(maxDrift)},
		},
	})

	doc.H2("Allocation")
	allocation := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Sleeve", "Target", "Actual", "Drift", "Value", "Status"},
	}
	for _, s := range o.Sleeves {
		d := o.Drift[s.Name]
		allocation.Rows = append(allocation.Rows, []string{
			cell(s.Name),
			s.Target.String(),
			o.ActualPct[s.Name].String(),
			d.SignedString(),
			o.Value(s.Name).String(),
			dashboard.DriftBand(d).String(),
		})
	}
	// sleeves used by positions but without a target.
	for _, k := range o.Keys {
		if _, declared := o.Target(k); declared {
			continue
		}
		allocation.Rows = append(allocation.Rows, []string{
			cell(k), "-", o.ActualPct[k].String(), "-", o.Value(k).String(), "no target",
		})
	}
	doc.Table(allocation)

	doc.H2("Upcoming Maturities")
	if len(o.Upcoming) == 0 {
		doc.PlainText(fmt.Sprintf("No maturities or calls within %d days. Set a maturity date on positions to see them here.", dashboard.UpcomingHorizon))
	} else {
		doc.Table(upcomingTable(o.Upcoming))
	}
	return doc.String()
}

func upcomingTable(upcoming []dashboard.Maturity) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Position", "Type", "Sleeve", "Value", "When", "Date", "Rate"},
	}
	for _, m := range upcoming {
		table.Rows = append(table.Rows, []string{
			cell(m.Name),
			string(m.Type),
			cell(m.Sleeve),
			m.Value().String(),
			When(m.Days),
			m.MaturityDate.String(),
			Rate(m.ExpectedRate),
		})
	}
	return table
}
