package service

import (
	"math/rand/v2"
	"sync"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
)

// Outcome is the simulated result of one backend round trip.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeTimeout
	OutcomeRateLimited
	OutcomeSystemError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeSystemError:
		return "system_error"
	default:
		return "unknown"
	}
}

// Err converts a failed outcome into its taxonomy error. Success yields nil.
func (o Outcome) Err() error {
	switch o {
	case OutcomeSuccess:
		return nil
	case OutcomeTimeout:
		return domain.ErrNetwork.WithDetails("timeout")
	case OutcomeRateLimited:
		return domain.ErrServerInternal.WithDetails("rate limit exceeded")
	default:
		return domain.ErrSystemFault.WithDetails("system error")
	}
}

// OutcomeSource decides how simulated calls end.
type OutcomeSource interface {
	// Next returns the outcome of the next backend call.
	Next() Outcome
	// Pick returns a value in [0, n) for variant selection. n must be > 0.
	Pick(n int) int
}

// RandomOutcomes draws outcomes from a seeded PCG.
//
// Half of all calls succeed. Failures split into timeout 1/4, rate limited
// 1/8 and system error 1/8.
type RandomOutcomes struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomOutcomes creates a RandomOutcomes. A zero seed draws a random one.
func NewRandomOutcomes(seed uint64) *RandomOutcomes {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomOutcomes{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next implements OutcomeSource.
func (r *RandomOutcomes) Next() Outcome {
	r.mu.Lock()
	n := r.rng.IntN(8)
	r.mu.Unlock()

	switch {
	case n < 4:
		return OutcomeSuccess
	case n < 6:
		return OutcomeTimeout
	case n == 6:
		return OutcomeRateLimited
	default:
		return OutcomeSystemError
	}
}

// Pick implements OutcomeSource.
func (r *RandomOutcomes) Pick(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

type succeedingOutcomes struct{}

// SucceedingOutcomes returns a source whose calls always succeed and whose
// Pick always returns 0.
func SucceedingOutcomes() OutcomeSource {
	return succeedingOutcomes{}
}

func (succeedingOutcomes) Next() Outcome { return OutcomeSuccess }
func (succeedingOutcomes) Pick(int) int  { return 0 }

// FixedOutcomes replays a script of outcomes, then succeeds.
type FixedOutcomes struct {
	mu       sync.Mutex
	outcomes []Outcome
	picks    []int
}

// NewFixedOutcomes creates a FixedOutcomes that returns outcomes in order.
func NewFixedOutcomes(outcomes ...Outcome) *FixedOutcomes {
	return &FixedOutcomes{outcomes: outcomes}
}

// WithPicks sets the values returned by Pick, in order. Values are reduced
// modulo n. Once exhausted Pick returns 0.
func (f *FixedOutcomes) WithPicks(picks ...int) *FixedOutcomes {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.picks = picks
	return f
}

// Next implements OutcomeSource.
func (f *FixedOutcomes) Next() Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.outcomes) == 0 {
		return OutcomeSuccess
	}
	o := f.outcomes[0]
	f.outcomes = f.outcomes[1:]
	return o
}

// Pick implements OutcomeSource.
func (f *FixedOutcomes) Pick(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.picks) == 0 {
		return 0
	}
	p := f.picks[0]
	f.picks = f.picks[1:]
	return p % n
}

// Remaining returns the number of scripted outcomes not yet drawn.
func (f *FixedOutcomes) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.outcomes)
}
