package lookerup

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MaxWindowDepth is the longest single window a Key can hold.
	MaxWindowDepth = 16
	// MaxTotalDepth bounds the size of a table to 2^24 entries.
	MaxTotalDepth = 24
)

// WindowSpec defines which moves of the game history form a lookup key:
// our last Self moves, the opponent's last Opp moves, and the opponent's
// first OppStart moves.
type WindowSpec struct {
	Self     int
	Opp      int
	OppStart int
}

func (w WindowSpec) String() string {
	return fmt.Sprintf("%d_%d_%d", w.Self, w.Opp, w.OppStart)
}

// Validate returns ErrConfiguration if w cannot key a lookup table.
func (w WindowSpec) Validate() error {
	for _, d := range [...]int{w.Self, w.Opp, w.OppStart} {
		if d < 0 || d > MaxWindowDepth {
			return errors.Wrapf(ErrConfiguration,
				"window %v: depth %d outside [0, %d]", w, d, MaxWindowDepth)
		}
	}

	if w.TotalDepth() > MaxTotalDepth {
		return errors.Wrapf(ErrConfiguration,
			"window %v: total depth %d exceeds %d", w, w.TotalDepth(), MaxTotalDepth)
	}

	return nil
}

func (w WindowSpec) TotalDepth() int {
	return w.Self + w.Opp + w.OppStart
}

// NumKeys is the number of distinct keys, and therefore the exact
// pattern length a table with this window requires.
func (w WindowSpec) NumKeys() int {
	return 1 << uint(w.TotalDepth())
}

// RequiredHistory is the number of completed turns needed before
// a key can be read from the history rather than defaulted.
func (w WindowSpec) RequiredHistory() int {
	n := w.Self
	if w.Opp > n {
		n = w.Opp
	}
	if w.OppStart > n {
		n = w.OppStart
	}
	return n
}

// DefaultKey is the key used while there is not yet enough history:
// every window is filled with Cooperate.
func (w WindowSpec) DefaultKey() Key {
	return Key{
		Self:     Plays{n: uint8(w.Self)},
		Opp:      Plays{n: uint8(w.Opp)},
		OppStart: Plays{n: uint8(w.OppStart)},
	}
}

// Plays is a bit-packed sequence of at most MaxWindowDepth actions.
// The earliest action is the most significant bit (Cooperate = 0).
type Plays struct {
	bits uint32
	n    uint8
}

// NewPlays packs the given actions. It panics if there are more than
// MaxWindowDepth of them.
func NewPlays(actions []Action) Plays {
	if len(actions) > MaxWindowDepth {
		panic(fmt.Errorf("%d actions exceed max window depth %d", len(actions), MaxWindowDepth))
	}

	var p Plays
	for _, a := range actions {
		p.bits = (p.bits << 1) | uint32(a&1)
	}
	p.n = uint8(len(actions))
	return p
}

func (p Plays) Len() int {
	return int(p.n)
}

// At returns the i'th action, 0 being the earliest.
func (p Plays) At(i int) Action {
	if i < 0 || i >= int(p.n) {
		panic(fmt.Errorf("index %d out of range for %d plays", i, p.n))
	}

	return Action((p.bits >> uint(int(p.n)-1-i)) & 1)
}

func (p Plays) Actions() []Action {
	result := make([]Action, p.n)
	for i := range result {
		result[i] = p.At(i)
	}
	return result
}

func (p Plays) String() string {
	return FormatActions(p.Actions())
}

// Key is a lookup table key. Keys are comparable: two keys are equal
// iff all three windows hold the same actions.
type Key struct {
	Self     Plays
	Opp      Plays
	OppStart Plays
}

// NewKey builds a Key from explicit windows.
func NewKey(self, opp, oppStart []Action) Key {
	return Key{
		Self:     NewPlays(self),
		Opp:      NewPlays(opp),
		OppStart: NewPlays(oppStart),
	}
}

func (k Key) String() string {
	parts := []string{k.Self.String(), k.Opp.String(), k.OppStart.String()}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Fits returns whether the window lengths of k match w.
func (k Key) Fits(w WindowSpec) bool {
	return k.Self.Len() == w.Self && k.Opp.Len() == w.Opp && k.OppStart.Len() == w.OppStart
}

// Index returns the position of k in the canonical key order for w.
//
// Canonical order is that of the published pattern data: the opponent
// start window varies slowest, then our own window, then the opponent
// window fastest. For WindowSpec{1, 1, 0} the (self, opp) order is
// (C, C), (C, D), (D, C), (D, D).
func (k Key) Index(w WindowSpec) (int, error) {
	if !k.Fits(w) {
		return 0, errors.Wrapf(ErrKeyNotFound, "key %v does not fit window %v", k, w)
	}

	idx := k.OppStart.bits
	idx = (idx << uint(w.Self)) | k.Self.bits
	idx = (idx << uint(w.Opp)) | k.Opp.bits
	return int(idx), nil
}

// KeyAt is the inverse of Key.Index.
func KeyAt(w WindowSpec, idx int) Key {
	if idx < 0 || idx >= w.NumKeys() {
		panic(fmt.Errorf("index %d out of range for window %v", idx, w))
	}

	bits := uint32(idx)
	take := func(n int) Plays {
		p := Plays{bits: bits & (1<<uint(n) - 1), n: uint8(n)}
		bits >>= uint(n)
		return p
	}

	opp := take(w.Opp)
	self := take(w.Self)
	oppStart := take(w.OppStart)
	return Key{Self: self, Opp: opp, OppStart: oppStart}
}

// Extract forms the lookup key for the next turn from the full histories
// of both players. If either history is too short to fill every window,
// the DefaultKey for w is returned so that a strategy is playable from
// the first turn.
//
// Actions in the histories are assumed valid (Cooperate or Defect).
func Extract(self, opp []Action, w WindowSpec) Key {
	n := w.RequiredHistory()
	if len(opp) < n || len(self) < n {
		return w.DefaultKey()
	}

	return Key{
		Self:     NewPlays(self[len(self)-w.Self:]),
		Opp:      NewPlays(opp[len(opp)-w.Opp:]),
		OppStart: NewPlays(opp[:w.OppStart]),
	}
}
