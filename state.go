package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StateVersion is the version of the persisted document.
const StateVersion = 1

// State is the whole dashboard: sleeves, runway settings and positions.
//
// It is only mutated through its commands, each returning a Change summary.
// A command that fails leaves the State untouched.
type State struct {
	Version   int
	UpdatedAt time.Time // zero until the first save
	Sleeves   []Sleeve
	Runway    RunwayConfig
	Positions []Position
}

// DefaultState returns the starter dashboard: default sleeves, no burn and an
// empty cash account to fill in.
func DefaultState() *State {
	return &State{
		Version: StateVersion,
		Sleeves: DefaultSleeves(),
		Runway:  DefaultRunway(),
		Positions: []Position{{
			ID:       NewID(),
			Name:     "Cash on Call",
			Sleeve:   LiquiditySleeve,
			Type:     TypeCash,
			Issuer:   "Bank",
			CostNZD:  decimal.NewNullDecimal(decimal.Zero),
			Currency: BaseCurrency,
			Tags:     []string{"cash"},
		}},
	}
}

// Change summarizes what a command did.
type Change struct {
	Added   int
	Updated int
	Deleted int
}

// IsZero reports whether the command changed nothing.
func (c Change) IsZero() bool { return c == Change{} }

func (c Change) String() string {
	var parts []string
	if c.Added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", c.Added))
	}
	if c.Updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", c.Updated))
	}
	if c.Deleted > 0 {
		parts = append(parts, fmt.Sprintf("%d deleted", c.Deleted))
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}

// Clone returns a deep copy of the State.
func (s *State) Clone() *State {
	c := *s
	c.Sleeves = append([]Sleeve(nil), s.Sleeves...)
	c.Positions = make([]Position, len(s.Positions))
	for i, p := range s.Positions {
		p.Tags = append([]string(nil), p.Tags...)
		c.Positions[i] = p
	}
	return &c
}

// Position returns the position with the given id.
func (s *State) Position(id string) (Position, bool) {
	if i := FindPosition(s.Positions, id); i >= 0 {
		return s.Positions[i], true
	}
	return Position{}, false
}

// ResolveID returns the id of the position whose id is ref, or the only one
// starting with ref.
func (s *State) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", ErrPositionNotFound)
	}
	if _, ok := s.Position(ref); ok {
		return ref, nil
	}
	var found []string
	for _, p := range s.Positions {
		if strings.HasPrefix(p.ID, ref) {
			found = append(found, p.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrPositionNotFound, ref)
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("%w: %q matches %d positions", ErrAmbiguousID, ref, len(found))
}

// normalize trims the free text fields and coerces the type.
func normalize(p Position) Position {
	p.Name = strings.TrimSpace(p.Name)
	p.Issuer = strings.TrimSpace(p.Issuer)
	p.Sleeve = strings.TrimSpace(p.Sleeve)
	p.Type = CoerceType(string(p.Type))
	p.Currency = strings.TrimSpace(p.Currency)
	if p.Currency == "" {
		p.Currency = BaseCurrency
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

// AddPosition adds p as a new position with a fresh id.
func (s *State) AddPosition(p Position) (Position, Change, error) {
	if err := p.Validate(); err != nil {
		return Position{}, Change{}, err
	}
	p = normalize(p)
	p.ID = NewID()
	s.Positions = append(s.Positions, p)
	return p, Change{Added: 1}, nil
}

// UpdatePosition replaces the position with the same id.
func (s *State) UpdatePosition(p Position) (Change, error) {
	if err := p.Validate(); err != nil {
		return Change{}, err
	}
	i := FindPosition(s.Positions, p.ID)
	if i < 0 {
		return Change{}, fmt.Errorf("%w: %q", ErrPositionNotFound, p.ID)
	}
	s.Positions[i] = normalize(p)
	return Change{Updated: 1}, nil
}

// DeletePosition removes the position with the given id.
func (s *State) DeletePosition(id string) (Change, error) {
	i := FindPosition(s.Positions, id)
	if i < 0 {
		return Change{}, fmt.Errorf("%w: %q", ErrPositionNotFound, id)
	}
	s.Positions = append(s.Positions[:i], s.Positions[i+1:]...)
	return Change{Deleted: 1}, nil
}

// SaveTargets replaces the sleeves. Targets must sum to 100% and names must be
// unique.
func (s *State) SaveTargets(next []Sleeve) (Change, error) {
	sleeves := make([]Sleeve, len(next))
	for i, sl := range next {
		sleeves[i] = Sleeve{Name: strings.TrimSpace(sl.Name), Target: sl.Target}
	}
	if err := ValidateTargets(sleeves); err != nil {
		return Change{}, err
	}
	s.Sleeves = sleeves
	return Change{Updated: len(sleeves)}, nil
}

// ResetTargets restores the default sleeves.
func (s *State) ResetTargets() Change {
	s.Sleeves = DefaultSleeves()
	return Change{Updated: len(s.Sleeves)}
}

// SetRunway replaces the runway settings.
func (s *State) SetRunway(r RunwayConfig) Change {
	r.SleeveName = strings.TrimSpace(r.SleeveName)
	if r.SleeveName == "" {
		r.SleeveName = LiquiditySleeve
	}
	s.Runway = r
	return Change{Updated: 1}
}

// Overview computes the overview of the State as of today.
func (s *State) Overview(today Date) *Overview {
	return Calculate(s.Positions, s.Sleeves, s.Runway, today)
}
