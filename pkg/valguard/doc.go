// Package valguard wraps raw scalars in strongly-typed, immutable value
// objects, attaches composable constraints to those values, and decides
// constraint subsumption ("does satisfying A guarantee satisfying B?")
// without evaluating any concrete data. A constrained mapping type enforces
// "every stored value satisfies constraint C" as a standing invariant.
package valguard
