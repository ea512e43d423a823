package lookerup

import (
	"expvar"
	"fmt"

	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

var (
	tableCacheHits   = expvar.NewInt("lookerup/table_cache_hits")
	tableCacheMisses = expvar.NewInt("lookerup/table_cache_misses")
)

// TableID identifies one set of pattern data.
type TableID struct {
	Name   string
	Window WindowSpec
}

func (id TableID) String() string {
	return fmt.Sprintf("%s[%v]", id.Name, id.Window)
}

// PatternProvider supplies the flat pattern for a table, in canonical
// key order. Implementations are in package tables.
type PatternProvider interface {
	Pattern(id TableID) ([]RawValue, error)
}

// Definition describes one named table-driven strategy.
type Definition struct {
	Name   string
	Window WindowSpec
	// MemoryDepth overrides the derived Classifier.MemoryDepth if non-nil.
	MemoryDepth *int
}

func (d Definition) TableID() TableID {
	return TableID{Name: d.Name, Window: d.Window}
}

func memoryDepth(n int) *int {
	return &n
}

// Definitions are the published Gambler strategies trained with
// particle swarm optimization.
var Definitions = []Definition{
	{Name: "PSO Gambler Mem1", Window: WindowSpec{1, 1, 0}, MemoryDepth: memoryDepth(1)},
	{Name: "PSO Gambler 1_1_1", Window: WindowSpec{1, 1, 1}},
	{Name: "PSO Gambler 2_2_2", Window: WindowSpec{2, 2, 2}},
	{Name: "PSO Gambler 2_2_2 Noise 05", Window: WindowSpec{2, 2, 2}},
}

// Registry builds lookup tables from a PatternProvider once and shares
// them between all strategies created from it. It is safe for
// concurrent use.
type Registry struct {
	provider    PatternProvider
	definitions map[string]Definition
	tables      *lru.Cache
}

// NewRegistry creates a Registry knowing the given definitions,
// or Definitions if none are given.
func NewRegistry(p PatternProvider, cacheSize int, defs ...Definition) (*Registry, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "create table cache")
	}

	if len(defs) == 0 {
		defs = Definitions
	}

	byName := make(map[string]Definition, len(defs))
	for _, d := range defs {
		if _, ok := byName[d.Name]; ok {
			return nil, errors.Wrapf(ErrConfiguration, "duplicate definition %q", d.Name)
		}
		byName[d.Name] = d
	}

	return &Registry{
		provider:    p,
		definitions: byName,
		tables:      cache,
	}, nil
}

func (r *Registry) Definition(name string) (Definition, bool) {
	d, ok := r.definitions[name]
	return d, ok
}

// Table returns the lookup table for id, building it on first use.
func (r *Registry) Table(id TableID) (*LookupTable, error) {
	if t, ok := r.tables.Get(id); ok {
		tableCacheHits.Add(1)
		return t.(*LookupTable), nil
	}

	tableCacheMisses.Add(1)
	pattern, err := r.provider.Pattern(id)
	if err != nil {
		return nil, errors.Wrapf(err, "load pattern for %v", id)
	}

	t, err := NewLookupTable(id.Window, pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "build table %v", id)
	}

	glog.V(1).Infof("Loaded lookup table %v (%d entries)", id, t.Len())
	r.tables.Add(id, t)
	return t, nil
}

// NewGambler creates a new Gambler instance for the named definition.
// Each instance should be given its own RandomSource.
func (r *Registry) NewGambler(name string, rng RandomSource) (*Gambler, error) {
	d, ok := r.definitions[name]
	if !ok {
		return nil, errors.Wrapf(ErrConfiguration, "unknown strategy %q", name)
	}

	t, err := r.Table(d.TableID())
	if err != nil {
		return nil, err
	}

	g := NewGambler(d.Name, t, rng)
	if d.MemoryDepth != nil {
		g.classifier.MemoryDepth = *d.MemoryDepth
	}
	return g, nil
}

// NewDeterministicLookerUp creates a strategy for the named definition
// whose table must contain only Actions.
func (r *Registry) NewDeterministicLookerUp(name string) (*DeterministicLookerUp, error) {
	d, ok := r.definitions[name]
	if !ok {
		return nil, errors.Wrapf(ErrConfiguration, "unknown strategy %q", name)
	}

	t, err := r.Table(d.TableID())
	if err != nil {
		return nil, err
	}

	return NewDeterministicLookerUp(d.Name, t)
}
