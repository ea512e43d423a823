package lookerup

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

type valueKind uint8

const (
	discreteValue valueKind = iota
	probabilityValue
)

// RawValue is a single lookup table entry: either a hard Action
// or the probability of cooperating.
type RawValue struct {
	kind   valueKind
	action Action
	p      float64
}

// Discrete returns a RawValue that always plays the given Action.
func Discrete(a Action) RawValue {
	return RawValue{kind: discreteValue, action: a}
}

// Probability returns a RawValue that cooperates with probability p.
// The range of p is checked when the value is used, not here.
func Probability(p float64) RawValue {
	return RawValue{kind: probabilityValue, p: p}
}

func (v RawValue) IsDiscrete() bool {
	return v.kind == discreteValue
}

// Action is only meaningful if IsDiscrete.
func (v RawValue) Action() Action {
	return v.action
}

// P is only meaningful if !IsDiscrete.
func (v RawValue) P() float64 {
	return v.p
}

// Validate returns ErrInvalidRawValue if v can never be played.
func (v RawValue) Validate() error {
	if v.IsDiscrete() {
		if !v.action.IsValid() {
			return errors.Wrapf(ErrInvalidRawValue, "action %d", uint8(v.action))
		}
		return nil
	}

	if math.IsNaN(v.p) || v.p < 0 || v.p > 1 {
		return errors.Wrapf(ErrInvalidRawValue, "probability %v outside [0, 1]", v.p)
	}
	return nil
}

// IsMixed returns whether v is a probability strictly between 0 and 1,
// i.e. whether playing it requires a random draw.
func (v RawValue) IsMixed() bool {
	return !v.IsDiscrete() && v.p > 0 && v.p < 1
}

// String implements Stringer.
func (v RawValue) String() string {
	if v.IsDiscrete() {
		return v.action.String()
	}

	return strconv.FormatFloat(v.p, 'g', -1, 64)
}

// ParseRawValue parses "C", "D" or a decimal probability.
func ParseRawValue(s string) (RawValue, error) {
	if a, err := ParseAction(s); err == nil {
		return Discrete(a), nil
	}

	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return RawValue{}, errors.Wrapf(err, "parse table value %q", s)
	}

	return Probability(p), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v RawValue) MarshalBinary() ([]byte, error) {
	var buf [9]byte
	buf[0] = byte(v.kind)
	if v.IsDiscrete() {
		buf[1] = byte(v.action)
	} else {
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(v.p))
	}
	return buf[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (v *RawValue) UnmarshalBinary(buf []byte) error {
	if len(buf) != 9 {
		return errors.Errorf("raw value: expected 9 bytes, got %d", len(buf))
	}

	switch valueKind(buf[0]) {
	case discreteValue:
		*v = Discrete(Action(buf[1]))
	case probabilityValue:
		*v = Probability(math.Float64frombits(binary.LittleEndian.Uint64(buf[1:])))
	default:
		return errors.Errorf("raw value: unknown kind %d", buf[0])
	}
	return nil
}
