package form

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-runtimeinputs/pkg/schema"
)

// ErrUnknownPath is returned when a value targets a path the schema does not
// declare.
var ErrUnknownPath = errors.New("form: unknown path")

// State holds the declarations of one schema and the raw value bound to each
// canonical path. It is not safe for concurrent use; the Coordinator
// serialises access.
type State struct {
	schema schema.Schema
	index  map[string]int
	values map[string]any
}

// NewState seeds a state with declaration defaults, then applies prefill.
// Prefill keys may use bracket or dotted notation.
func NewState(s schema.Schema, prefill map[string]any) (*State, error) {
	if err := schema.Validate(s); err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	st := &State{
		schema: s,
		index:  make(map[string]int, len(s.Declarations)),
		values: make(map[string]any, len(s.Declarations)),
	}
	for i, decl := range s.Declarations {
		path := schema.CanonicalPath(decl.Path)
		st.index[path] = i
		if decl.Default != nil {
			st.values[path] = decl.Default
		}
	}
	for path, raw := range prefill {
		if err := st.Set(path, raw); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// Schema returns the schema the state was built from.
func (s *State) Schema() schema.Schema {
	return s.schema
}

// Declarations returns the declarations in schema order.
func (s *State) Declarations() []schema.Declaration {
	return append([]schema.Declaration(nil), s.schema.Declarations...)
}

// Declaration looks up the declaration for path.
func (s *State) Declaration(path string) (schema.Declaration, bool) {
	idx, ok := s.index[schema.CanonicalPath(path)]
	if !ok {
		return schema.Declaration{}, false
	}
	return s.schema.Declarations[idx], true
}

// Set binds raw to path. A nil raw clears the binding.
func (s *State) Set(path string, raw any) error {
	canonical := schema.CanonicalPath(path)
	if _, ok := s.index[canonical]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPath, path)
	}
	if raw == nil {
		delete(s.values, canonical)
		return nil
	}
	s.values[canonical] = raw
	return nil
}

// Value implements inputs.ValueSource.
func (s *State) Value(path string) (any, bool) {
	raw, ok := s.values[schema.CanonicalPath(path)]
	return raw, ok
}

// Raw returns a copy of the bound raw values keyed by canonical path.
func (s *State) Raw() map[string]any {
	out := make(map[string]any, len(s.values))
	for path, raw := range s.values {
		out[path] = raw
	}
	return out
}
