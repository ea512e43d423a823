package lookerup

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Strategy selects the next move of a match given both players' histories.
type Strategy interface {
	Name() string
	Play(self, opp []Action) (Action, error)
}

// LookerUp reads the raw table value for the current history.
// It holds no mutable state and may be shared across matches.
type LookerUp struct {
	table *LookupTable
}

func NewLookerUp(t *LookupTable) *LookerUp {
	return &LookerUp{table: t}
}

func (l *LookerUp) Table() *LookupTable {
	return l.table
}

// NextRawValue extracts the key for the given histories and looks it up.
func (l *LookerUp) NextRawValue(self, opp []Action) (RawValue, error) {
	key := Extract(self, opp, l.table.window)
	v, err := l.table.Get(key)
	if err != nil {
		return RawValue{}, err
	}

	if glog.V(3) {
		glog.Infof("History %s/%s: key %v => %v",
			FormatActions(self), FormatActions(opp), key, v)
	}
	return v, nil
}

// DeterministicLookerUp plays a table whose entries are all Actions.
type DeterministicLookerUp struct {
	name string
	*LookerUp
}

// NewDeterministicLookerUp returns ErrConfiguration if any entry of t
// is a probability.
func NewDeterministicLookerUp(name string, t *LookupTable) (*DeterministicLookerUp, error) {
	for _, e := range t.Entries() {
		if !e.Value.IsDiscrete() {
			return nil, errors.Wrapf(ErrConfiguration,
				"%s: key %v has probability %v in a deterministic table", name, e.Key, e.Value)
		}
		if err := e.Value.Validate(); err != nil {
			return nil, errors.Wrapf(ErrConfiguration, "%s: key %v: %v", name, e.Key, err)
		}
	}

	return &DeterministicLookerUp{name: name, LookerUp: NewLookerUp(t)}, nil
}

func (s *DeterministicLookerUp) Name() string {
	return s.name
}

func (s *DeterministicLookerUp) Play(self, opp []Action) (Action, error) {
	v, err := s.NextRawValue(self, opp)
	if err != nil {
		return 0, errors.Wrap(err, s.name)
	}

	decisions.Add(1)
	return v.Action(), nil
}

// Gambler plays a table whose entries may be probabilities of cooperating,
// drawing from its own RandomSource when needed. A Gambler must not be
// used by more than one goroutine at a time.
type Gambler struct {
	name       string
	classifier Classifier
	*LookerUp
	rng RandomSource
}

func NewGambler(name string, t *LookupTable, rng RandomSource) *Gambler {
	return &Gambler{
		name:       name,
		classifier: Classify(t),
		LookerUp:   NewLookerUp(t),
		rng:        rng,
	}
}

func (g *Gambler) Name() string {
	return g.name
}

func (g *Gambler) Classifier() Classifier {
	return g.classifier
}

func (g *Gambler) Play(self, opp []Action) (Action, error) {
	v, err := g.NextRawValue(self, opp)
	if err != nil {
		return 0, errors.Wrap(err, g.name)
	}

	a, err := Select(v, g.rng)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: history %s/%s",
			g.name, FormatActions(self), FormatActions(opp))
	}

	decisions.Add(1)
	return a, nil
}

// Classifier summarizes the behaviour of a table-driven strategy.
type Classifier struct {
	// MemoryDepth is the number of past turns the strategy reads,
	// or InfiniteMemory if it depends on the opponent's opening moves.
	MemoryDepth int
	// Stochastic is true if any entry requires a random draw.
	Stochastic bool
}

const InfiniteMemory = -1

// Classify derives a Classifier from the window and entries of t.
func Classify(t *LookupTable) Classifier {
	w := t.Window()
	c := Classifier{MemoryDepth: InfiniteMemory}
	if w.OppStart == 0 {
		c.MemoryDepth = w.Self
		if w.Opp > c.MemoryDepth {
			c.MemoryDepth = w.Opp
		}
	}

	for _, v := range t.values {
		if v.IsMixed() {
			c.Stochastic = true
			break
		}
	}

	return c
}
