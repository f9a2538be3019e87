package dashboard

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if got := SumTargets(s.Sleeves); !got.Equal(100) {
		t.Errorf("default targets sum to %v, want 100", got)
	}
	if len(s.Positions) != 1 || s.Positions[0].Name != "Cash on Call" || s.Positions[0].Type != TypeCash {
		t.Errorf("default positions = %+v, want the starter cash account", s.Positions)
	}
	if s.Runway.Sleeve() != LiquiditySleeve || s.Runway.HasBurn() {
		t.Errorf("default runway = %+v", s.Runway)
	}
}

func TestState_AddUpdateDelete(t *testing.T) {
	s := &State{Sleeves: DefaultSleeves(), Runway: DefaultRunway()}

	if _, _, err := s.AddPosition(Position{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("AddPosition(no name) error = %v, want %v", err, ErrNameRequired)
	}

	p, change, err := s.AddPosition(Position{Name: " Bonus Saver ", Type: "cash", ValueNZD: decimal.NewFromInt(500)})
	if err != nil {
		t.Fatalf("AddPosition() error = %v", err)
	}
	if change != (Change{Added: 1}) || p.ID == "" || p.Name != "Bonus Saver" || p.Type != TypeCash || p.Currency != BaseCurrency {
		t.Errorf("AddPosition() = %+v, %+v", p, change)
	}

	p.ValueNZD = decimal.NewFromInt(750)
	if _, err := s.UpdatePosition(p); err != nil {
		t.Fatalf("UpdatePosition() error = %v", err)
	}
	if got, _ := s.Position(p.ID); !got.ValueNZD.Equal(decimal.NewFromInt(750)) {
		t.Errorf("updated value = %v, want 750", got.ValueNZD)
	}

	if _, err := s.UpdatePosition(Position{ID: "nope", Name: "x"}); !errors.Is(err, ErrPositionNotFound) {
		t.Errorf("UpdatePosition(unknown) error = %v, want %v", err, ErrPositionNotFound)
	}

	if change, err := s.DeletePosition(p.ID); err != nil || change != (Change{Deleted: 1}) {
		t.Errorf("DeletePosition() = %+v, %v", change, err)
	}
	if len(s.Positions) != 0 {
		t.Errorf("len(Positions) = %d, want 0", len(s.Positions))
	}
	if _, err := s.DeletePosition(p.ID); !errors.Is(err, ErrPositionNotFound) {
		t.Errorf("DeletePosition(twice) error = %v, want %v", err, ErrPositionNotFound)
	}
}

func TestState_SaveTargets(t *testing.T) {
	tests := []struct {
		name    string
		sleeves []Sleeve
		wantErr bool
	}{
		{"valid", []Sleeve{{"A", 60}, {"B", 40}}, false},
		{"within tolerance", []Sleeve{{"A", 33.333}, {"B", 33.333}, {"C", 33.334}}, false},
		{"sum too low", []Sleeve{{"A", 60}, {"B", 39}}, true},
		{"duplicate", []Sleeve{{"A", 50}, {" A", 50}}, true},
		{"empty name", []Sleeve{{"", 100}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			_, err := s.SaveTargets(tt.sleeves)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SaveTargets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidTargets) {
					t.Errorf("SaveTargets() error = %v, want %v", err, ErrInvalidTargets)
				}
				if len(s.Sleeves) != len(DefaultSleeves()) {
					t.Errorf("rejected targets modified the sleeves")
				}
				return
			}
			if len(s.Sleeves) != len(tt.sleeves) {
				t.Errorf("len(Sleeves) = %d, want %d", len(s.Sleeves), len(tt.sleeves))
			}
		})
	}
}

func TestState_ResetTargetsAndRunway(t *testing.T) {
	s := DefaultState()
	s.SaveTargets([]Sleeve{{"All in", 100}})
	s.ResetTargets()
	if len(s.Sleeves) != 4 || s.Sleeves[0].Name != LiquiditySleeve {
		t.Errorf("ResetTargets() sleeves = %v", s.Sleeves)
	}

	s.SetRunway(RunwayConfig{MonthlyBurnNZD: dec(3000), SleeveName: " "})
	if s.Runway.SleeveName != LiquiditySleeve || !s.Runway.Burn().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("SetRunway() runway = %+v", s.Runway)
	}
}

func TestState_Clone(t *testing.T) {
	s := DefaultState()
	c := s.Clone()
	c.Positions[0].Tags[0] = "changed"
	c.Sleeves[0].Target = 0
	if s.Positions[0].Tags[0] != "cash" || s.Sleeves[0].Target != 25 {
		t.Errorf("Clone() shares memory with the original")
	}
}

func TestChange_String(t *testing.T) {
	tests := []struct {
		c    Change
		want string
	}{
		{Change{}, "no change"},
		{Change{Added: 2, Updated: 1}, "2 added, 1 updated"},
		{Change{Deleted: 1}, "1 deleted"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestState_ResolveID(t *testing.T) {
	s := &State{Positions: []Position{
		{ID: "abc123", Name: "A"},
		{ID: "abd456", Name: "B"},
		{ID: "ab", Name: "C"},
	}}
	tests := []struct {
		ref     string
		want    string
		wantErr error
	}{
		{"abc", "abc123", nil},
		{" abd4 ", "abd456", nil},
		{"ab", "ab", nil}, // exact match wins over prefixes
		{"a", "", ErrAmbiguousID},
		{"zz", "", ErrPositionNotFound},
		{"", "", ErrPositionNotFound},
	}
	for _, tt := range tests {
		got, err := s.ResolveID(tt.ref)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ResolveID(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ResolveID(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
