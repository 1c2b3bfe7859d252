// Package solver discretizes a Bayesian persuasion problem into an
// equality-constrained linear program and recovers the optimal
// information-disclosure mechanism.
//
// The solve is a pure, single-pass transform with no state across
// invocations:
//
//  1. Sample the prior on the grid and normalize it to a probability
//     vector.
//  2. Flatten the sender's value matrix row-major into the LP cost
//     vector, negated so that minimization maximizes sender utility.
//  3. Assemble the (2n)×(n²) equality system: the first n rows force
//     each state's mechanism mass to equal its prior probability
//     (Bayes plausibility), the last n rows apply the receiver's
//     utility-weighted incentive functional per message.
//  4. Delegate min c·x s.t. Ax=b, x>=0 to gonum's simplex and reshape
//     the solution into the n×n mechanism.
//
// KNOWN LIMITATION: the incentive-compatibility rows are pinned to a
// zero target. This enforces equality-to-zero of the receiver's
// weighted expected utility given each message, not true incentive
// compatibility against competing messages. Callers should read ICConstraint as a
// placeholder, not as a verified best-response condition.
//
// Determinism: the simplex routine is deterministic, so solving the
// same spec twice yields the same mechanism. There is no randomness,
// no retry, and no timeout.
package solver
