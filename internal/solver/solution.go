package solver

// SolutionRecord holds the outcome of one primal solve. It is created
// once per solve and never mutated afterwards.
type SolutionRecord struct {
	// Grid is the discretization the mechanism is indexed by.
	Grid []float64 `json:"grid"`

	// Mechanism is the joint probability distribution over
	// (state, message) grid pairs. Rows index states, columns index
	// messages; entries are non-negative and sum to 1.
	Mechanism [][]float64 `json:"mechanism"`

	// Prior is the normalized prior marginal over states. The
	// mechanism's row sums match it within solver tolerance.
	Prior []float64 `json:"prior"`

	// ICConstraint is the incentive-compatibility target per message.
	// Currently always zero; see the package comment.
	ICConstraint []float64 `json:"ic_constraint"`

	// ValueMatrix is the sender's utility at each (state, message)
	// grid pair.
	ValueMatrix [][]float64 `json:"value_matrix"`

	// Value is the sender's expected utility under the mechanism, the
	// LP optimum.
	Value float64 `json:"value"`
}

// SupportSize counts mechanism entries carrying more than tol mass.
// Useful as a cheap summary of how revealing the mechanism is.
func (r *SolutionRecord) SupportSize(tol float64) int {
	count := 0
	for _, row := range r.Mechanism {
		for _, p := range row {
			if p > tol {
				count++
			}
		}
	}
	return count
}

// RowSums returns the mechanism's state marginal, one sum per row.
func (r *SolutionRecord) RowSums() []float64 {
	sums := make([]float64, len(r.Mechanism))
	for i, row := range r.Mechanism {
		for _, p := range row {
			sums[i] += p
		}
	}
	return sums
}
