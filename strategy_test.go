package lookerup

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func TestLookerUpExample(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{1, 1, 0}, patternOf(t, "DCCD"))
	if err != nil {
		t.Fatal(err)
	}

	l := NewLookerUp(table)
	v, err := l.NextRawValue([]Action{C}, []Action{D})
	if err != nil {
		t.Fatal(err)
	}
	if v != Discrete(C) {
		t.Errorf("expected C, got %v", v)
	}

	rng := &scriptedSource{draws: drawGrid}
	a, err := Select(v, rng)
	if err != nil || a != C {
		t.Errorf("expected C, got %v (%v)", a, err)
	}
}

func TestLookerUpEmptyHistory(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{1, 1, 0}, patternOf(t, "DCCD"))
	if err != nil {
		t.Fatal(err)
	}

	v, err := NewLookerUp(table).NextRawValue(nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	expected, _ := table.Get(table.Window().DefaultKey())
	if v != expected || v != Discrete(D) {
		t.Errorf("expected initial entry %v, got %v", expected, v)
	}
}

func TestNextRawValueIsPure(t *testing.T) {
	w := WindowSpec{2, 2, 2}
	pattern := make([]RawValue, w.NumKeys())
	for i := range pattern {
		pattern[i] = Probability(float64(i) / float64(len(pattern)))
	}
	table, err := NewLookupTable(w, pattern)
	if err != nil {
		t.Fatal(err)
	}

	l := NewLookerUp(table)
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 50; n++ {
		self := make([]Action, n)
		opp := make([]Action, n)
		for i := 0; i < n; i++ {
			self[i] = Action(rng.Intn(2))
			opp[i] = Action(rng.Intn(2))
		}

		v1, err1 := l.NextRawValue(self, opp)
		v2, err2 := l.NextRawValue(self, opp)
		if err1 != nil || err2 != nil {
			t.Fatal(err1, err2)
		}
		if v1 != v2 {
			t.Errorf("history %s/%s: %v != %v", FormatActions(self), FormatActions(opp), v1, v2)
		}
	}
}

func TestDeterministicLookerUp(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{0, 1, 0}, patternOf(t, "CD"))
	if err != nil {
		t.Fatal(err)
	}

	s, err := NewDeterministicLookerUp("Tit For Tat Table", table)
	if err != nil {
		t.Fatal(err)
	}

	var self, opp []Action
	script := mustParse(t, "CDDCD")
	expected := mustParse(t, "CCDDC")
	for i, oppMove := range script {
		a, err := s.Play(self, opp)
		if err != nil {
			t.Fatal(err)
		}
		if a != expected[i] {
			t.Errorf("turn %d: expected %v, got %v", i, expected[i], a)
		}
		self = append(self, a)
		opp = append(opp, oppMove)
	}
}

func TestDeterministicLookerUpRejectsProbabilities(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{0, 1, 0}, []RawValue{Discrete(C), Probability(0.5)})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewDeterministicLookerUp("mixed", table); errors.Cause(err) != ErrConfiguration {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestGamblerDiscreteTableUsesNoRandomness(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{1, 1, 0}, patternOf(t, "DCCD"))
	if err != nil {
		t.Fatal(err)
	}

	rng := &scriptedSource{draws: drawGrid}
	g := NewGambler("discrete", table, rng)
	self := mustParse(t, "CDCD")
	opp := mustParse(t, "DDCC")
	for n := 0; n <= len(self); n++ {
		if _, err := g.Play(self[:n], opp[:n]); err != nil {
			t.Fatal(err)
		}
	}
	if rng.n != 0 {
		t.Errorf("expected no draws, got %d", rng.n)
	}
	if g.Classifier().Stochastic {
		t.Error("discrete table classified as stochastic")
	}
}

func TestGamblerInvalidValue(t *testing.T) {
	table, err := NewLookupTable(WindowSpec{0, 1, 0}, []RawValue{Probability(0.5), Probability(-1)})
	if err != nil {
		t.Fatal(err)
	}

	g := NewGambler("invalid", table, &scriptedSource{draws: drawGrid})
	if _, err := g.Play([]Action{C}, []Action{C}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := g.Play([]Action{C}, []Action{D}); errors.Cause(err) != ErrInvalidRawValue {
		t.Errorf("expected ErrInvalidRawValue, got %v", err)
	}
}

func TestGamblerSeedReproducible(t *testing.T) {
	w := WindowSpec{1, 1, 1}
	pattern := []RawValue{
		Probability(0.9), Probability(0.2), Probability(0.6), Probability(0.1),
		Probability(0.8), Probability(0.3), Discrete(C), Discrete(D),
	}
	table, err := NewLookupTable(w, pattern)
	if err != nil {
		t.Fatal(err)
	}

	play := func(seed int64) []Action {
		g := NewGambler("seeded", table, rand.New(rand.NewSource(seed)))
		var self, opp []Action
		for i := 0; i < 100; i++ {
			a, err := g.Play(self, opp)
			if err != nil {
				t.Fatal(err)
			}
			self = append(self, a)
			opp = append(opp, Action(i%3/2))
		}
		return self
	}

	if FormatActions(play(7)) != FormatActions(play(7)) {
		t.Error("same seed produced different play")
	}
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		window     WindowSpec
		pattern    []RawValue
		depth      int
		stochastic bool
	}{
		{WindowSpec{0, 1, 0}, patternOf(t, "CD"), 1, false},
		{WindowSpec{2, 1, 0}, patternOf(t, "CDCDCDCD"), 2, false},
		{WindowSpec{0, 1, 1}, patternOf(t, "CDCD"), InfiniteMemory, false},
		{WindowSpec{0, 1, 0}, []RawValue{Probability(0), Probability(1)}, 1, false},
		{WindowSpec{0, 1, 0}, []RawValue{Probability(0.5), Discrete(D)}, 1, true},
	}

	for _, tc := range testCases {
		table, err := NewLookupTable(tc.window, tc.pattern)
		if err != nil {
			t.Fatal(err)
		}

		c := Classify(table)
		if c.MemoryDepth != tc.depth || c.Stochastic != tc.stochastic {
			t.Errorf("%v %v: expected {%d %v}, got %+v",
				tc.window, tc.pattern, tc.depth, tc.stochastic, c)
		}
	}
}

func BenchmarkGamblerPlay(b *testing.B) {
	w := WindowSpec{2, 2, 2}
	pattern := make([]RawValue, w.NumKeys())
	for i := range pattern {
		pattern[i] = Probability(float64(i) / float64(len(pattern)))
	}
	table, err := NewLookupTable(w, pattern)
	if err != nil {
		b.Fatal(err)
	}

	g := NewGambler("bench", table, rand.New(rand.NewSource(1)))
	self := mustParse(b, "CDCDCCDDCCDCDDCD")
	opp := mustParse(b, "DDCCDCDCCDDCDCCD")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Play(self, opp); err != nil {
			b.Fatal(err)
		}
	}
}
