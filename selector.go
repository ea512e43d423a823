package lookerup

import (
	"expvar"
)

var (
	decisions   = expvar.NewInt("lookerup/decisions")
	randomDraws = expvar.NewInt("lookerup/random_draws")
)

// RandomSource provides uniform draws in [0, 1). *rand.Rand implements it.
//
// A RandomSource must not be shared between concurrently running matches
// if results are to be reproducible from a seed.
type RandomSource interface {
	Float64() float64
}

// Select turns a table value into an Action. Discrete values are returned
// unchanged without consuming a draw. For a probability p, one draw u is
// taken and Cooperate is returned iff u < p; p == 0 and p == 1 are decided
// without a draw.
func Select(v RawValue, rng RandomSource) (Action, error) {
	if err := v.Validate(); err != nil {
		return 0, err
	}

	if v.IsDiscrete() {
		return v.Action(), nil
	}

	switch p := v.P(); p {
	case 0:
		return Defect, nil
	case 1:
		return Cooperate, nil
	default:
		randomDraws.Add(1)
		if rng.Float64() < p {
			return Cooperate, nil
		}
		return Defect, nil
	}
}
