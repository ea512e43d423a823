package lookerup

import (
	"github.com/pkg/errors"
)

// Action is one move in an iterated prisoner's dilemma.
type Action uint8

const (
	Cooperate Action = iota
	Defect
)

// C and D are the conventional short names.
const (
	C = Cooperate
	D = Defect
)

var actionStr = [...]string{
	"C",
	"D",
}

// String implements Stringer.
func (a Action) String() string {
	if int(a) >= len(actionStr) {
		return "Invalid"
	}

	return actionStr[a]
}

// Flip returns the opposite action.
func (a Action) Flip() Action {
	return a ^ 1
}

// IsValid returns whether a is one of Cooperate or Defect.
func (a Action) IsValid() bool {
	return a <= Defect
}

func ParseAction(s string) (Action, error) {
	switch s {
	case "C", "c":
		return Cooperate, nil
	case "D", "d":
		return Defect, nil
	}

	return 0, errors.Errorf("invalid action: %q", s)
}

// ParseActions parses a compact history string such as "CCDC".
func ParseActions(s string) ([]Action, error) {
	result := make([]Action, 0, len(s))
	for i := range s {
		a, err := ParseAction(s[i : i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "position %d of %q", i, s)
		}
		result = append(result, a)
	}

	return result, nil
}

// FormatActions renders a history in the compact form read by ParseActions.
func FormatActions(actions []Action) string {
	buf := make([]byte, len(actions))
	for i, a := range actions {
		buf[i] = a.String()[0]
	}
	return string(buf)
}
