package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"
)

// This file contains the persisted document: one JSON object holding the
// whole State. The same document is used as the backup file.
//
// Reading the persisted document is tolerant: whatever is broken is replaced
// by its default and logged, the dashboard always opens. Reading a backup is
// strict: a document without a positions array is rejected.

// updatedAtFormat is ISO-8601 in UTC with milliseconds.
const updatedAtFormat = "2006-01-02T15:04:05.000Z07:00"

// BackupFilename returns the name of the backup file for a given day.
func BackupFilename(on Date) string {
	return fmt.Sprintf("invest-dashboard-backup-%s.json", on)
}

// MarshalJSON writes the document with its fields in a fixed order.
func (s *State) MarshalJSON() ([]byte, error) {
	var updatedAt any
	if !s.UpdatedAt.IsZero() {
		updatedAt = s.UpdatedAt.UTC().Format(updatedAtFormat)
	}
	sleeves := s.Sleeves
	if sleeves == nil {
		sleeves = []Sleeve{}
	}
	positions := s.Positions
	if positions == nil {
		positions = []Position{}
	}
	var w jsonObjectWriter
	w.Append("version", s.Version)
	w.Append("updatedAt", updatedAt)
	w.Append("sleeves", sleeves)
	w.Append("runway", s.Runway)
	w.Append("positions", positions)
	return w.MarshalJSON()
}

// EncodeState writes the State as an indented JSON document.
func EncodeState(w io.Writer, s *State) error {
	compact, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode state: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return fmt.Errorf("cannot indent state: %w", err)
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

// jstate is the document as read from the disk, every field kept raw to be
// validated on its own.
type jstate struct {
	Version   json.RawMessage `json:"version"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
	Sleeves   json.RawMessage `json:"sleeves"`
	Runway    json.RawMessage `json:"runway"`
	Positions json.RawMessage `json:"positions"`
}

// isArray reports whether a raw JSON value is an array.
func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// isObject reports whether a raw JSON value is an object.
func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// DecodeState reads the persisted document. It never fails: invalid JSON
// gives the default State, and each invalid part is replaced by its default.
func DecodeState(data []byte) *State {
	var js jstate
	if err := json.Unmarshal(data, &js); err != nil {
		log.Printf("state is not valid JSON, starting from the default state: %v", err)
		return DefaultState()
	}
	return decodeState(js)
}

// DecodeBackup reads a backup document. It returns ErrMalformedBackup when
// the document is not JSON or has no positions array. Other parts are
// defaulted as in DecodeState.
func DecodeBackup(data []byte) (*State, error) {
	var js jstate
	if err := json.Unmarshal(data, &js); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}
	if !isArray(js.Positions) {
		return nil, fmt.Errorf("%w: positions missing or not an array", ErrMalformedBackup)
	}
	return decodeState(js), nil
}

func decodeState(js jstate) *State {
	s := &State{Version: StateVersion}

	if v := numberFromJSON(js.Version); v.Valid {
		s.Version = int(v.Decimal.IntPart())
	}

	if at := stringFromJSON(js.UpdatedAt); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			log.Printf("ignoring invalid updatedAt %q: %v", at, err)
		}
		s.UpdatedAt = t
	}

	if isArray(js.Sleeves) {
		if err := json.Unmarshal(js.Sleeves, &s.Sleeves); err != nil {
			log.Printf("invalid sleeves, using the default ones: %v", err)
			s.Sleeves = nil
		}
	}
	if len(s.Sleeves) == 0 {
		log.Printf("no sleeves, using the default ones")
		s.Sleeves = DefaultSleeves()
	}

	s.Runway = DefaultRunway()
	if isObject(js.Runway) {
		if err := json.Unmarshal(js.Runway, &s.Runway); err != nil {
			log.Printf("invalid runway settings, using the default ones: %v", err)
			s.Runway = DefaultRunway()
		}
		if s.Runway.SleeveName == "" {
			s.Runway.SleeveName = LiquiditySleeve
		}
	}

	s.Positions = []Position{}
	if !isArray(js.Positions) {
		if len(js.Positions) > 0 {
			log.Printf("positions is not an array, starting with no positions")
		}
		return s
	}
	var items []json.RawMessage
	if err := json.Unmarshal(js.Positions, &items); err != nil {
		log.Printf("invalid positions, starting with no positions: %v", err)
		return s
	}
	for i, item := range items {
		var p Position
		if !isObject(item) {
			log.Printf("skipping position #%d: not an object", i)
			continue
		}
		if err := json.Unmarshal(item, &p); err != nil {
			log.Printf("skipping position #%d: %v", i, err)
			continue
		}
		if p.ID == "" {
			p.ID = NewID()
		}
		if p.Currency == "" {
			p.Currency = BaseCurrency
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		s.Positions = append(s.Positions, p)
	}
	return s
}
