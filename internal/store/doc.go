// Package store persists solve runs to SQLite.
//
// Each run records the problem name, grid parameters, the LP optimum
// and the mechanism itself. Mechanism and prior payloads are stored as
// canonical JSON so a run's bytes are identical whenever the solve is,
// which makes runs diffable and content-comparable across machines.
//
// The store is a log: runs are inserted once and never updated.
package store
