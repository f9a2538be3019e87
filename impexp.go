package dashboard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// this file contains the CSV import: spreadsheet rows are mapped to positions
// and reconciled with the positions already in the State.
// Spreadsheets are messy, so every coercion here is total: a bad cell
// degrades to an empty value, it never fails the import.

// ImportMode selects how CSV rows are reconciled with the positions.
type ImportMode string

const (
	// ModePositions imports full positions, matched on name and issuer.
	ModePositions ImportMode = "positions"
	// ModeBalances only updates cash accounts balances, matched on name.
	ModeBalances ImportMode = "balances"
)

// ParseImportMode parses "positions" or "balances".
func ParseImportMode(s string) (ImportMode, error) {
	switch m := ImportMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModePositions, ModeBalances:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q, want %q or %q", ErrUnknownImportMode, s, ModePositions, ModeBalances)
}

// NormalizeHeader returns the canonical key of a CSV header: trimmed, lower
// case, with runs of whitespace replaced by a single underscore.
func NormalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), "_")
}

// Accepted headers for each position field, in order of preference. Headers
// are compared after normalization, token for token.
var positionAliases = map[string][]string{
	"name":     {"name", "position", "asset", "security"},
	"sleeve":   {"sleeve", "bucket"},
	"type":     {"type", "asset_type"},
	"issuer":   {"issuer", "institution", "provider"},
	"value":    {"value_nzd", "value", "market_value", "balance", "amount"},
	"cost":     {"cost_nzd", "cost", "principal", "book_value"},
	"currency": {"currency"},
	"maturity": {"maturity_date", "maturity", "matures", "call_date"},
	"rate":     {"expected_rate", "rate", "interest_rate"},
	"tags":     {"tags"},
	"notes":    {"notes", "memo", "description"},
}

// Accepted headers for each field of a cash balance.
var balanceAliases = map[string][]string{
	"account": {"account", "name"},
	"sleeve":  {"sleeve", "bucket"},
	"value":   {"value_nzd", "value", "balance", "amount"},
	"notes":   {"notes", "memo", "description"},
}

// ImportBatch is a CSV file ready to be committed.
type ImportBatch struct {
	Headers []string            // normalized
	Rows    []map[string]string // keyed by normalized header, cells trimmed
}

// ReadImportBatch parses a CSV text into an ImportBatch.
func ReadImportBatch(text string) (*ImportBatch, error) {
	return NewImportBatch(ParseCSV(text))
}

// NewImportBatch turns parsed CSV rows into an ImportBatch. The first row is
// the header. Missing cells of short rows are empty strings.
func NewImportBatch(rows [][]string) (*ImportBatch, error) {
	if len(rows) < 2 {
		return nil, ErrEmptyCSV
	}
	b := &ImportBatch{Headers: make([]string, len(rows[0]))}
	for i, h := range rows[0] {
		b.Headers[i] = NormalizeHeader(h)
	}
	for _, r := range rows[1:] {
		row := make(map[string]string, len(b.Headers))
		for i, h := range b.Headers {
			var cell string
			if i < len(r) {
				cell = strings.TrimSpace(r[i])
			}
			row[h] = cell
		}
		b.Rows = append(b.Rows, row)
	}
	return b, nil
}

// Len returns the number of data rows.
func (b *ImportBatch) Len() int { return len(b.Rows) }

// Preview returns at most n rows, cells in header order.
func (b *ImportBatch) Preview(n int) [][]string {
	if n > len(b.Rows) {
		n = len(b.Rows)
	}
	res := make([][]string, 0, n)
	for _, row := range b.Rows[:n] {
		cells := make([]string, len(b.Headers))
		for i, h := range b.Headers {
			cells[i] = row[h]
		}
		res = append(res, cells)
	}
	return res
}

// pick returns the first non-empty cell among aliases.
func pick(row map[string]string, aliases []string) string {
	for _, a := range aliases {
		if v := row[NormalizeHeader(a)]; v != "" {
			return v
		}
	}
	return ""
}

// ParseNumber reads a number out of a spreadsheet cell, ignoring currency
// symbols, thousand separators and the like. It returns null when nothing
// sensible is left.
func ParseNumber(s string) decimal.NullDecimal {
	var b strings.Builder
	for _, r := range s {
		if ('0' <= r && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return decimal.NullDecimal{}
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(f))
}

var (
	isoDateRE      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dayFirstDateRE = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

// looseDateLayouts are tried in order when a cell is neither ISO nor day-first.
var looseDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-1-2",
	"2006/1/2",
	"Jan 2, 2006",
	"Jan 2 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2-Jan-2006",
	"Mon Jan 2 2006",
	"Mon, 2 Jan 2006",
	"1-2-2006",
}

// ParseLooseDate reads a date out of a spreadsheet cell. It accepts ISO dates,
// day-first D/M/YYYY dates and a few common written forms. It returns the
// zero Date when the cell is not a valid date.
func ParseLooseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	if isoDateRE.MatchString(s) {
		if on, err := time.Parse(DateFormat, s); err == nil {
			return NewDate(on.Date())
		}
		return Date{}
	}
	if m := dayFirstDateRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		d := NewDate(year, time.Month(month), day)
		// NewDate normalizes 31/02 into March, which is not what the cell says.
		if d.Day() != day || d.Month() != time.Month(month) {
			return Date{}
		}
		return d
	}
	for _, layout := range looseDateLayouts {
		if on, err := time.Parse(layout, s); err == nil {
			return NewDate(on.Date())
		}
	}
	return Date{}
}

// SplitTags splits a comma separated list of tags, dropping empty items.
func SplitTags(s string) []string {
	tags := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// positions maps the rows to positions, dropping rows without a name.
// Identifiers are left empty.
func (b *ImportBatch) positions(sleeves []Sleeve) []Position {
	var res []Position
	for _, r := range b.Rows {
		name := pick(r, positionAliases["name"])
		if name == "" {
			continue
		}
		sleeve := pick(r, positionAliases["sleeve"])
		if sleeve == "" {
			sleeve = CoreGrowthSleeve
		}
		currency := pick(r, positionAliases["currency"])
		if currency == "" {
			currency = BaseCurrency
		}
		res = append(res, Position{
			Name:         name,
			Sleeve:       CoerceSleeve(sleeve, sleeves),
			Type:         CoerceType(pick(r, positionAliases["type"])),
			Issuer:       pick(r, positionAliases["issuer"]),
			ValueNZD:     ParseNumber(pick(r, positionAliases["value"])).Decimal,
			CostNZD:      ParseNumber(pick(r, positionAliases["cost"])),
			Currency:     currency,
			MaturityDate: ParseLooseDate(pick(r, positionAliases["maturity"])),
			ExpectedRate: ParseNumber(pick(r, positionAliases["rate"])),
			Tags:         SplitTags(pick(r, positionAliases["tags"])),
			Notes:        pick(r, positionAliases["notes"]),
		})
	}
	return res
}

// balance is a cash account balance read from a CSV row.
type balance struct {
	Account string
	Sleeve  string
	Value   decimal.Decimal
	Notes   string
}

// balances maps the rows to cash balances, dropping rows without an account.
func (b *ImportBatch) balances(sleeves []Sleeve) []balance {
	var res []balance
	for _, r := range b.Rows {
		account := pick(r, balanceAliases["account"])
		if account == "" {
			continue
		}
		sleeve := pick(r, balanceAliases["sleeve"])
		if sleeve == "" {
			sleeve = LiquiditySleeve
		}
		res = append(res, balance{
			Account: account,
			Sleeve:  CoerceSleeve(sleeve, sleeves),
			Value:   ParseNumber(pick(r, balanceAliases["value"])).Decimal,
			Notes:   pick(r, balanceAliases["notes"]),
		})
	}
	return res
}

// CommitImport merges the batch into the positions.
//
// In ModePositions a row updates the position with the same name and issuer
// (case-insensitive), every field but the identifier is overwritten.
// Otherwise the row is added as a new position.
//
// In ModeBalances a row updates sleeve, value and notes of the cash position
// with the same name, or adds a new cash position.
//
// Rows without a name are ignored. When no row is left, ErrEmptyImport is
// returned and the State is not modified.
func (s *State) CommitImport(b *ImportBatch, mode ImportMode) (Change, error) {
	var c Change
	switch mode {
	case ModePositions:
		incoming := b.positions(s.Sleeves)
		if len(incoming) == 0 {
			return c, ErrEmptyImport
		}
		for _, p := range incoming {
			if i := s.findByNameIssuer(p.Name, p.Issuer); i >= 0 {
				p.ID = s.Positions[i].ID
				s.Positions[i] = p
				c.Updated++
				continue
			}
			p.ID = NewID()
			s.Positions = append(s.Positions, p)
			c.Added++
		}
		return c, nil

	case ModeBalances:
		incoming := b.balances(s.Sleeves)
		if len(incoming) == 0 {
			return c, ErrEmptyImport
		}
		for _, a := range incoming {
			if i := s.findCash(a.Account); i >= 0 {
				p := &s.Positions[i]
				p.Sleeve = a.Sleeve
				p.ValueNZD = a.Value
				p.Notes = a.Notes
				c.Updated++
				continue
			}
			s.Positions = append(s.Positions, Position{
				ID:       NewID(),
				Name:     a.Account,
				Sleeve:   a.Sleeve,
				Type:     TypeCash,
				ValueNZD: a.Value,
				Currency: BaseCurrency,
				Tags:     []string{"cash"},
				Notes:    a.Notes,
			})
			c.Added++
		}
		return c, nil
	}
	return c, fmt.Errorf("%w: %q", ErrUnknownImportMode, mode)
}

func (s *State) findByNameIssuer(name, issuer string) int {
	for i, p := range s.Positions {
		if strings.EqualFold(p.Name, name) && strings.EqualFold(p.Issuer, issuer) {
			return i
		}
	}
	return -1
}

func (s *State) findCash(name string) int {
	for i, p := range s.Positions {
		if p.Type == TypeCash && strings.EqualFold(p.Name, name) {
			return i
		}
	}
	return -1
}
