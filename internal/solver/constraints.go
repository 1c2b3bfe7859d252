package solver

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ethche/BayesLP/internal/persuasion"
)

// buildConstraints assembles the LP equality matrix A with shape
// (2n)×(n²), where column i·n+k corresponds to mechanism entry
// (state i, message k).
//
// Rows 0..n-1 are the Bayes-plausibility block: row i holds a 1 in
// every column of state i, so A·x recovers the mechanism's state
// marginal. This is kron(I_n, ones_n) written out directly.
//
// Rows n..2n-1 are the incentive block: row n+k holds
// u(s_i, m_k)·g(s_i, m_k) at column i·n+k for every state i, so A·x
// computes the receiver's weighted expected utility given each message.
// The blocks are the stacked diagonals of the weight matrix, one
// diagonal per state.
func buildConstraints(spec *persuasion.ProblemSpec, grid []float64) (*mat.Dense, error) {
	n := len(grid)
	a := mat.NewDense(2*n, n*n, nil)

	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a.Set(i, i*n+k, 1)
		}
	}

	weights, err := persuasion.SampleMatrix("receiver.utility*receiver.density",
		func(s, r float64) float64 {
			return spec.ReceiverUtility(s, r) * spec.ReceiverConditionalDensity(s, r)
		}, grid)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a.Set(n+k, i*n+k, weights[i][k])
		}
	}

	return a, nil
}
