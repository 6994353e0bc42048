// Package wfc implements an infinite-grid procedural tile generator based on
// constraint propagation, in the style of Wave Function Collapse. Given a
// ruleset that enumerates legal 3x3 neighborhoods with weights, it answers
// point queries World.Get(x, y) such that every observed tile is consistent
// with every rule in every direction, and the sampled distribution respects
// rule weights.
//
// The package is single-threaded per World: propagation within one Get call
// runs to a fixed point before returning, and a World's internal state must
// not be shared across goroutines. Callers that want concurrent generation
// should instantiate independent Worlds (see internal/parallel.Pool for
// one way to do that) rather than share one.
//
// # API Stability
//
// This package follows semantic versioning. The current version is
// reported by CurrentVersion.
package wfc
