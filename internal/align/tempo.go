package align

import "fmt"

const (
	// MinTempoFactor and MaxTempoFactor bound a single stretch operation.
	// ffmpeg's atempo filter degrades audio quality outside this range, so
	// larger overall ratios are reached by chaining in-range steps.
	MinTempoFactor = 0.5
	MaxTempoFactor = 2.0
)

// TempoStep is one bounded stretch operation. The product of all factors in a
// plan equals the required overall factor within floating-point rounding.
type TempoStep struct {
	Factor float64
}

// PlanTempo computes the stretch chain that forces audio of currentSec to play
// in exactly targetSec. Factors above MaxTempoFactor emit full 2.0 steps,
// factors below MinTempoFactor emit full 0.5 steps, and the in-range remainder
// closes the chain.
func PlanTempo(currentSec, targetSec float64) ([]TempoStep, error) {
	if targetSec <= 0 {
		return nil, fmt.Errorf("%w: target %.3fs", ErrInvalidDuration, targetSec)
	}
	if currentSec <= 0 {
		return nil, fmt.Errorf("%w: current %.3fs", ErrInvalidDuration, currentSec)
	}

	remaining := currentSec / targetSec

	var steps []TempoStep
	for remaining > MaxTempoFactor {
		steps = append(steps, TempoStep{Factor: MaxTempoFactor})
		remaining /= MaxTempoFactor
	}
	for remaining < MinTempoFactor {
		steps = append(steps, TempoStep{Factor: MinTempoFactor})
		remaining /= MinTempoFactor
	}
	steps = append(steps, TempoStep{Factor: remaining})

	return steps, nil
}

// OverallFactor returns the product of all step factors in the chain.
func OverallFactor(steps []TempoStep) float64 {
	factor := 1.0
	for _, s := range steps {
		factor *= s.Factor
	}
	return factor
}
