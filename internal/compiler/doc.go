// Package compiler turns problem definitions authored in CUE into
// persuasion.ProblemSpec values ready for the solver.
//
// A definition names a problem and supplies the grid resolution, the
// domain interval, and four scalar functions written as CEL expressions
// over the double variables s (state), m (message) and r (receiver
// action):
//
//	problem: quadratic: {
//		grid:     3
//		interval: [0.0, 1.0]
//		prior: "1.0"
//		receiver: {
//			utility: "s - r"
//			density: "1.0"
//		}
//		sender: utility: "m * m"
//	}
//
// Expressions must type-check to double. The environment provides the
// constants pi and e and the functions exp, log, sqrt, abs, pow and
// normpdf. Each expression is compiled exactly once; a definition's
// compiled closures are plain Go functions with no CEL state shared
// between solves.
package compiler
