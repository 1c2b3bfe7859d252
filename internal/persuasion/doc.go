// Package persuasion defines the core types for Bayesian persuasion
// problems: the economic primitives of a single problem instance, the
// discretization grid, and the error taxonomy shared by the solver and
// its callers.
//
// This package contains types and pure helpers only. All other internal
// packages import persuasion; persuasion imports nothing internal. This
// keeps it the foundational layer with no circular dependencies.
//
// A ProblemSpec is immutable once constructed. Each solve reads its own
// spec and allocates fresh state, so independent solves may run
// concurrently without coordination.
package persuasion
