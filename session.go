package dashboard

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/etnz/dashboard/store"
)

// StateKey is the key of the dashboard document in the store.
const StateKey = "state"

// Command is a named mutation of the State.
type Command func(s *State) (Change, error)

// Session reads and writes the State in a store.
type Session struct {
	store store.Store
	now   func() time.Time
}

// NewSession returns a Session over st.
func NewSession(st store.Store) *Session {
	return &Session{store: st, now: time.Now}
}

// Load returns the current State, the default one when nothing was saved yet.
func (s *Session) Load(ctx context.Context) (*State, error) {
	data, err := s.store.Load(ctx, StateKey)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultState(), nil
	}
	if err != nil {
		return nil, err
	}
	return DecodeState(data), nil
}

// Do loads the State, runs cmd on it and saves the result, as a single
// update of the store. When cmd fails nothing is saved.
func (s *Session) Do(ctx context.Context, cmd Command) (*State, Change, error) {
	var (
		state  *State
		change Change
	)
	err := s.store.Update(ctx, StateKey, func(old []byte) ([]byte, error) {
		current := DefaultState()
		if old != nil {
			current = DecodeState(old)
		}
		c, err := cmd(current)
		if err != nil {
			return nil, err
		}
		current.UpdatedAt = s.now()
		var buf bytes.Buffer
		if err := EncodeState(&buf, current); err != nil {
			return nil, err
		}
		state, change = current, c
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, Change{}, err
	}
	return state, change, nil
}

// Restore replaces the whole State with a backup document. A malformed backup
// is rejected with ErrMalformedBackup and the current State is kept.
func (s *Session) Restore(ctx context.Context, backup []byte) (*State, error) {
	restored, err := DecodeBackup(backup)
	if err != nil {
		return nil, err
	}
	state, _, err := s.Do(ctx, func(st *State) (Change, error) {
		*st = *restored
		return Change{Added: len(st.Positions)}, nil
	})
	return state, err
}

// Wipe deletes the saved State. The next Load returns the default State.
func (s *Session) Wipe(ctx context.Context) error {
	return s.store.Remove(ctx, StateKey)
}
