package persuasion

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Interval is a closed real interval [Lo, Hi] over which the state and
// message spaces are discretized.
type Interval struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// DefaultGridSize is the grid resolution used when a problem definition
// does not specify one.
const DefaultGridSize = 10

// DefaultInterval is the domain used when a problem definition does not
// specify one.
var DefaultInterval = Interval{Lo: 0, Hi: 1}

// ProblemSpec declares the economic primitives of one persuasion
// instance: the grid resolution, the domain interval, and the four
// scalar functions that define the game.
//
// The sender privately observes a state s and commits to a mechanism
// that maps states to messages m. The receiver observes the message and
// acts; r is the receiver's action variable, evaluated on the same grid
// as m.
//
// A ProblemSpec must not be mutated after construction. Build one with
// NewProblemSpec, which validates the grid parameters.
type ProblemSpec struct {
	// GridSize is the number of discretization points. Must be >= 1.
	GridSize int

	// Interval is the domain for both states and messages. Lo < Hi.
	Interval Interval

	// PriorDensity is the (unnormalized) prior density over states.
	// It is sampled on the grid and normalized to a probability vector.
	PriorDensity func(s float64) float64

	// ReceiverUtility is the receiver's utility from action r in state s.
	ReceiverUtility func(s, r float64) float64

	// ReceiverConditionalDensity weights the receiver's utility in the
	// incentive-compatibility functional.
	ReceiverConditionalDensity func(s, r float64) float64

	// SenderUtility is the sender's utility from message m in state s.
	// Its grid samples form the LP objective.
	SenderUtility func(s, m float64) float64
}

// NewProblemSpec constructs a validated ProblemSpec.
// Returns *ConfigError if the grid parameters or functions are invalid.
func NewProblemSpec(
	gridSize int,
	interval Interval,
	prior func(float64) float64,
	receiverUtility, receiverDensity func(float64, float64) float64,
	senderUtility func(float64, float64) float64,
) (*ProblemSpec, error) {
	spec := &ProblemSpec{
		GridSize:                   gridSize,
		Interval:                   interval,
		PriorDensity:               prior,
		ReceiverUtility:            receiverUtility,
		ReceiverConditionalDensity: receiverDensity,
		SenderUtility:              senderUtility,
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks the spec's invariants.
// Returns *ConfigError describing the first violated field.
func (p *ProblemSpec) Validate() error {
	if p.GridSize < 1 {
		return &ConfigError{Field: "grid", Message: "grid size must be at least 1"}
	}
	if !(p.Interval.Lo < p.Interval.Hi) {
		return &ConfigError{Field: "interval", Message: "interval lower bound must be strictly below upper bound"}
	}
	if p.PriorDensity == nil {
		return &ConfigError{Field: "prior", Message: "prior density function is required"}
	}
	if p.ReceiverUtility == nil {
		return &ConfigError{Field: "receiver.utility", Message: "receiver utility function is required"}
	}
	if p.ReceiverConditionalDensity == nil {
		return &ConfigError{Field: "receiver.density", Message: "receiver conditional density function is required"}
	}
	if p.SenderUtility == nil {
		return &ConfigError{Field: "sender.utility", Message: "sender utility function is required"}
	}
	return nil
}

// DefaultSpec returns the reference example: ten grid points on [0, 1],
// receiver utility s-r with unit conditional density, sender utility m²,
// and a standard normal prior.
func DefaultSpec() *ProblemSpec {
	return &ProblemSpec{
		GridSize:                   DefaultGridSize,
		Interval:                   DefaultInterval,
		PriorDensity:               distuv.UnitNormal.Prob,
		ReceiverUtility:            func(s, r float64) float64 { return s - r },
		ReceiverConditionalDensity: func(s, r float64) float64 { return 1 },
		SenderUtility:              func(s, m float64) float64 { return m * m },
	}
}
