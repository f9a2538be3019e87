package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/etnz/dashboard/store"
)

func TestSession_LoadDefault(t *testing.T) {
	s := NewSession(&store.Memory{})
	st, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(st.Positions) != 1 || len(st.Sleeves) != 4 {
		t.Errorf("Load() = %+v, want the default state", st)
	}
}

func TestSession_Do(t *testing.T) {
	ctx := context.Background()
	s := NewSession(&store.Memory{})
	s.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	_, change, err := s.Do(ctx, func(st *State) (Change, error) {
		_, c, err := st.AddPosition(Position{Name: "Shares"})
		return c, err
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if change != (Change{Added: 1}) {
		t.Errorf("Do() change = %+v, want 1 added", change)
	}

	st, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(st.Positions) != 2 || st.Positions[1].Name != "Shares" {
		t.Errorf("Load() positions = %+v, want the added position saved", st.Positions)
	}
	if !st.UpdatedAt.Equal(s.now()) {
		t.Errorf("UpdatedAt = %v, want %v", st.UpdatedAt, s.now())
	}
}

func TestSession_FailedCommandSavesNothing(t *testing.T) {
	ctx := context.Background()
	s := NewSession(&store.Memory{})
	_, _, err := s.Do(ctx, func(st *State) (Change, error) {
		st.Positions = nil
		return st.SaveTargets([]Sleeve{{Name: "A", Target: 10}})
	})
	if !errors.Is(err, ErrInvalidTargets) {
		t.Fatalf("Do() error = %v, want %v", err, ErrInvalidTargets)
	}
	st, _ := s.Load(ctx)
	if len(st.Positions) != 1 {
		t.Errorf("failed command was saved: %d positions", len(st.Positions))
	}
}

func TestSession_RestoreAndWipe(t *testing.T) {
	ctx := context.Background()
	s := NewSession(&store.Memory{})

	if _, err := s.Restore(ctx, []byte(`{"positions":"nope"}`)); !errors.Is(err, ErrMalformedBackup) {
		t.Errorf("Restore(malformed) error = %v, want %v", err, ErrMalformedBackup)
	}

	st, err := s.Restore(ctx, []byte(`{"version":1,"positions":[{"id":"a","name":"A","valueNZD":1},{"id":"b","name":"B","valueNZD":2}]}`))
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if len(st.Positions) != 2 || st.Positions[0].ID != "a" {
		t.Errorf("Restore() positions = %+v", st.Positions)
	}

	if err := s.Wipe(ctx); err != nil {
		t.Fatalf("Wipe() error = %v", err)
	}
	st, _ = s.Load(ctx)
	if len(st.Positions) != 1 || st.Positions[0].Name != "Cash on Call" {
		t.Errorf("Load() after Wipe() = %+v, want the default state", st.Positions)
	}
}
