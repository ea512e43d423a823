package lookerup

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Entry is one (key, value) pair of a LookupTable.
type Entry struct {
	Key   Key
	Value RawValue
}

// LookupTable maps every Key representable by its WindowSpec to a RawValue.
// A LookupTable is immutable once built and safe for concurrent use.
type LookupTable struct {
	window WindowSpec
	// Indexed by Key.Index.
	values []RawValue
}

// NewLookupTable pairs the i'th key in canonical order (see Key.Index)
// with pattern[i]. The pattern must have exactly w.NumKeys() entries.
func NewLookupTable(w WindowSpec, pattern []RawValue) (*LookupTable, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if len(pattern) != w.NumKeys() {
		return nil, errors.Wrapf(ErrConfiguration,
			"window %v requires a pattern of length %d, got %d",
			w, w.NumKeys(), len(pattern))
	}

	values := make([]RawValue, len(pattern))
	copy(values, pattern)
	glog.V(2).Infof("Built lookup table for window %v with %d entries", w, len(values))
	return &LookupTable{window: w, values: values}, nil
}

// NewLookupTableFromEntries rebuilds a table from entries given in any order.
// Every key of w must appear exactly once.
func NewLookupTableFromEntries(w WindowSpec, entries []Entry) (*LookupTable, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	if len(entries) != w.NumKeys() {
		return nil, errors.Wrapf(ErrConfiguration,
			"window %v requires %d entries, got %d", w, w.NumKeys(), len(entries))
	}

	pattern := make([]RawValue, len(entries))
	seen := make([]bool, len(entries))
	for _, e := range entries {
		idx, err := e.Key.Index(w)
		if err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "entry %v: %v", e.Key, err)
		}
		if seen[idx] {
			return nil, errors.Wrapf(ErrConfiguration, "duplicate entry for key %v", e.Key)
		}

		seen[idx] = true
		pattern[idx] = e.Value
	}

	return &LookupTable{window: w, values: pattern}, nil
}

func (t *LookupTable) Window() WindowSpec {
	return t.window
}

// Len returns the number of keys in the table.
func (t *LookupTable) Len() int {
	return len(t.values)
}

// Get returns the value for k, or ErrKeyNotFound if k does not belong
// to this table's window.
func (t *LookupTable) Get(k Key) (RawValue, error) {
	idx, err := k.Index(t.window)
	if err != nil {
		return RawValue{}, err
	}

	return t.values[idx], nil
}

func (t *LookupTable) Contains(k Key) bool {
	return k.Fits(t.window)
}

// Entries returns all (key, value) pairs in canonical order.
func (t *LookupTable) Entries() []Entry {
	result := make([]Entry, len(t.values))
	for i, v := range t.values {
		result[i] = Entry{Key: KeyAt(t.window, i), Value: v}
	}
	return result
}

// Pattern returns a copy of the values in canonical order.
func (t *LookupTable) Pattern() []RawValue {
	result := make([]RawValue, len(t.values))
	copy(result, t.values)
	return result
}

// Validate checks every entry, returning the first ErrInvalidRawValue.
func (t *LookupTable) Validate() error {
	for i, v := range t.values {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(err, "key %v", KeyAt(t.window, i))
		}
	}
	return nil
}

// IsDeterministic returns whether every entry is a discrete Action.
func (t *LookupTable) IsDeterministic() bool {
	for _, v := range t.values {
		if !v.IsDiscrete() {
			return false
		}
	}
	return true
}
