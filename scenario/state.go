package scenario

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// State is the shared state of one scenario run.
// Steps write values for later steps to read. A State is only ever used by the
// single active step, so it is not safe for concurrent use.
type State struct {
	values  map[string]any
	writers map[string]string
}

// NewState creates an empty State.
func NewState() *State {
	return &State{
		values:  make(map[string]any),
		writers: make(map[string]string),
	}
}

// Set stores value under key. A later write shadows an earlier one.
func (s *State) Set(key string, value any) {
	s.set(key, value, "")
}

func (s *State) set(key string, value any, writer string) {
	s.values[key] = value
	s.writers[key] = writer
}

// Get returns the value stored under key.
func (s *State) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// WrittenBy returns the name of the step that last wrote key.
func (s *State) WrittenBy(key string) (string, bool) {
	w, ok := s.writers[key]
	return w, ok
}

// Keys returns all written keys in sorted order.
func (s *State) Keys() []string {
	keys := lo.Keys(s.values)
	slices.Sort(keys)
	return keys
}

// Value reads key from s as T.
func Value[T any](s *State, key string) (T, error) {
	var zero T
	raw, ok := s.values[key]
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrKeyNotSet, key)
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrKeyType, key, raw, zero)
	}
	return v, nil
}

// MustValue reads key from the step's state as T and fails the step if it is
// missing or of another type.
func MustValue[T any](sc *Context, key string) T {
	sc.Helper()

	v, err := Value[T](sc.state, key)
	if err != nil {
		sc.Errorf("reading state: %v", err)
		sc.FailNow()
	}
	return v
}
