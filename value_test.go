package lookerup

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestParseRawValue(t *testing.T) {
	testCases := []struct {
		input    string
		expected RawValue
	}{
		{"C", Discrete(C)},
		{"D", Discrete(D)},
		{"0.25", Probability(0.25)},
		{"1.0", Probability(1)},
		{"0", Probability(0)},
	}

	for _, tc := range testCases {
		v, err := ParseRawValue(tc.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.input, err)
		}
		if v != tc.expected {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.expected, v)
		}
	}

	if _, err := ParseRawValue("maybe"); err == nil {
		t.Error("expected error for unparseable value")
	}
}

func TestParseRawValueDoesNotCheckRange(t *testing.T) {
	v, err := ParseRawValue("1.5")
	if err != nil {
		t.Fatal(err)
	}
	if errors.Cause(v.Validate()) != ErrInvalidRawValue {
		t.Errorf("expected ErrInvalidRawValue, got %v", v.Validate())
	}
}

func TestValidate(t *testing.T) {
	valid := []RawValue{Discrete(C), Discrete(D), Probability(0), Probability(0.5), Probability(1)}
	for _, v := range valid {
		if err := v.Validate(); err != nil {
			t.Errorf("%v: unexpected error: %v", v, err)
		}
	}

	invalid := []RawValue{Discrete(Action(2)), Probability(-0.1), Probability(1.01), Probability(math.NaN())}
	for _, v := range invalid {
		if err := v.Validate(); errors.Cause(err) != ErrInvalidRawValue {
			t.Errorf("%v: expected ErrInvalidRawValue, got %v", v, err)
		}
	}
}

func TestMarshalBinary(t *testing.T) {
	for _, v := range []RawValue{Discrete(C), Discrete(D), Probability(0.52173487)} {
		buf, err := v.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}

		var decoded RawValue
		if err := decoded.UnmarshalBinary(buf); err != nil {
			t.Fatal(err)
		}
		if decoded != v {
			t.Errorf("input: %v, output: %v", v, decoded)
		}
	}
}
