package dashboard

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PositionType is the kind of a holding, from a fixed vocabulary.
type PositionType string

const (
	TypeCash        PositionType = "Cash"
	TypeTermDeposit PositionType = "Term Deposit"
	TypeManagedFund PositionType = "Managed Fund"
	TypeETF         PositionType = "ETF"
	TypeShares      PositionType = "Shares"
	TypeCrypto      PositionType = "Crypto"
	TypePrivate     PositionType = "Private"
	TypeOther       PositionType = "Other"
)

// PositionTypes lists the vocabulary of position types, in display order.
var PositionTypes = []PositionType{
	TypeCash, TypeTermDeposit, TypeManagedFund, TypeETF, TypeShares, TypeCrypto, TypePrivate, TypeOther,
}

// CoerceType returns the position type matching s case-insensitively, or TypeOther.
func CoerceType(s string) PositionType {
	s = strings.TrimSpace(s)
	for _, t := range PositionTypes {
		if strings.EqualFold(string(t), s) {
			return t
		}
	}
	return TypeOther
}

// Position is a single holding: a cash account, a term deposit, a fund...
type Position struct {
	ID           string
	Name         string
	Sleeve       string
	Type         PositionType
	Issuer       string
	ValueNZD     decimal.Decimal
	CostNZD      decimal.NullDecimal // null when the cost basis is unknown
	Currency     string              // informational only
	MaturityDate Date                // zero when the position does not mature
	ExpectedRate decimal.NullDecimal // annualized, in percent
	Tags         []string
	Notes        string
}

// NewID returns a fresh position identifier.
func NewID() string { return uuid.NewString() }

// Value returns the position value as Money.
func (p Position) Value() Money { return NZD(p.ValueNZD) }

// ProfitLoss returns value minus cost. It is only defined when the cost is
// known and not zero.
func (p Position) ProfitLoss() (Money, bool) {
	if !p.CostNZD.Valid || p.CostNZD.Decimal.IsZero() {
		return Money{}, false
	}
	return NZD(p.ValueNZD.Sub(p.CostNZD.Decimal)), true
}

// Validate checks what is required to save a position.
func (p Position) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// MarshalJSON writes the position with the fields in the document order.
func (p Position) MarshalJSON() ([]byte, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	var w jsonObjectWriter
	w.Append("id", p.ID)
	w.Append("name", p.Name)
	w.Append("sleeve", p.Sleeve)
	w.Append("type", p.Type)
	w.Append("issuer", p.Issuer)
	w.Number("valueNZD", p.ValueNZD)
	w.NullNumber("costNZD", p.CostNZD)
	w.Append("currency", p.Currency)
	w.Append("maturityDate", p.MaturityDate)
	w.NullNumber("expectedRate", p.ExpectedRate)
	w.Append("tags", tags)
	w.Append("notes", p.Notes)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a position leniently: a field of the wrong type
// degrades to its empty value instead of failing the whole document.
func (p *Position) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		Name         json.RawMessage `json:"name"`
		Sleeve       json.RawMessage `json:"sleeve"`
		Type         json.RawMessage `json:"type"`
		Issuer       json.RawMessage `json:"issuer"`
		ValueNZD     json.RawMessage `json:"valueNZD"`
		CostNZD      json.RawMessage `json:"costNZD"`
		Currency     json.RawMessage `json:"currency"`
		MaturityDate json.RawMessage `json:"maturityDate"`
		ExpectedRate json.RawMessage `json:"expectedRate"`
		Tags         json.RawMessage `json:"tags"`
		Notes        json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var tags []string
	if err := json.Unmarshal(raw.Tags, &tags); err != nil {
		tags = nil
	}
	var maturity Date
	if err := json.Unmarshal(raw.MaturityDate, &maturity); err != nil {
		maturity = Date{}
	}
	*p = Position{
		ID:           stringFromJSON(raw.ID),
		Name:         stringFromJSON(raw.Name),
		Sleeve:       stringFromJSON(raw.Sleeve),
		Type:         CoerceType(stringFromJSON(raw.Type)),
		Issuer:       stringFromJSON(raw.Issuer),
		ValueNZD:     numberFromJSON(raw.ValueNZD).Decimal,
		CostNZD:      numberFromJSON(raw.CostNZD),
		Currency:     stringFromJSON(raw.Currency),
		MaturityDate: maturity,
		ExpectedRate: numberFromJSON(raw.ExpectedRate),
		Tags:         tags,
		Notes:        stringFromJSON(raw.Notes),
	}
	return nil
}

// stringFromJSON returns a JSON string, the text of a JSON number, or "".
func stringFromJSON(b []byte) string {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	}
	return ""
}

// numberFromJSON returns a JSON number, or a string holding a number. Anything
// else is null.
func numberFromJSON(b []byte) decimal.NullDecimal {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return decimal.NullDecimal{}
	}
	var s string
	switch x := v.(type) {
	case json.Number:
		s = x.String()
	case string:
		s = strings.TrimSpace(x)
	default:
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// PositionFilter selects positions for the positions list.
type PositionFilter struct {
	Query  string       // case-insensitive, searched in name, issuer, tags and notes
	Sleeve string       // exact sleeve name, "" for all
	Type   PositionType // exact type, "" for all
}

// Match reports whether p passes the filter.
func (f PositionFilter) Match(p Position) bool {
	if f.Sleeve != "" && p.Sleeve != f.Sleeve {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	var hay []string
	for _, s := range []string{p.Name, p.Issuer, strings.Join(p.Tags, ","), p.Notes} {
		if s != "" {
			hay = append(hay, s)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(hay, " ")), q)
}

// FilterPositions returns the positions matching f, largest value first.
func FilterPositions(positions []Position, f PositionFilter) []Position {
	res := make([]Position, 0, len(positions))
	for _, p := range positions {
		if f.Match(p) {
			res = append(res, p)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].ValueNZD.GreaterThan(res[j].ValueNZD)
	})
	return res
}

// FindPosition returns the index of the position with the given id, or -1.
func FindPosition(positions []Position, id string) int {
	for i, p := range positions {
		if p.ID == id {
			return i
		}
	}
	return -1
}
