// Package tables provides sources of lookup table pattern data.
package tables

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/lookerup"
)

// ErrNotFound is returned when a provider has no pattern for a TableID.
var ErrNotFound = errors.New("table not found")

// Source is a provider that can enumerate its tables.
type Source interface {
	lookerup.PatternProvider
	List() ([]lookerup.TableID, error)
}

// Sink stores pattern data.
type Sink interface {
	Put(id lookerup.TableID, pattern []lookerup.RawValue) error
}

// Memory is an in-memory lookerup.PatternProvider.
type Memory map[lookerup.TableID][]lookerup.RawValue

func NewMemory() Memory {
	return make(Memory)
}

// Put stores a copy of pattern under id.
func (m Memory) Put(id lookerup.TableID, pattern []lookerup.RawValue) error {
	m[id] = append([]lookerup.RawValue(nil), pattern...)
	return nil
}

// Pattern implements lookerup.PatternProvider.
func (m Memory) Pattern(id lookerup.TableID) ([]lookerup.RawValue, error) {
	pattern, ok := m[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%v", id)
	}

	return append([]lookerup.RawValue(nil), pattern...), nil
}

// List returns the stored TableIDs sorted by name, then window.
func (m Memory) List() ([]lookerup.TableID, error) {
	result := make([]lookerup.TableID, 0, len(m))
	for id := range m {
		result = append(result, id)
	}

	sortIDs(result)
	return result, nil
}

func sortIDs(ids []lookerup.TableID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Window.Self != b.Window.Self {
			return a.Window.Self < b.Window.Self
		}
		if a.Window.Opp != b.Window.Opp {
			return a.Window.Opp < b.Window.Opp
		}
		return a.Window.OppStart < b.Window.OppStart
	})
}

// CopyAll copies every table listed by src into dst.
func CopyAll(dst Sink, src Source) (int, error) {
	ids, err := src.List()
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		pattern, err := src.Pattern(id)
		if err != nil {
			return 0, err
		}
		if err := dst.Put(id, pattern); err != nil {
			return 0, errors.Wrapf(err, "copy %v", id)
		}
	}

	return len(ids), nil
}
