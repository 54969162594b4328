// Package safedouble establishes the exact integer boundary of IEEE binary64
// and validates float64-encoded index, length, and count candidates against it.
//
// Script hosts whose only numeric type is float64 deliver every index and
// length as a double. Converting such a value to a fixed-width integer is only
// lossless while its magnitude stays at or below 2^53; beyond that, distinct
// integers collapse onto the same double and a conversion silently addresses
// the wrong element. Domain is the single decision point that every
// index-accepting entry point must pass a candidate through before using it
// to size or address storage.
//
// The boundary is a closed-form constant, never probed at runtime: iterative
// doubling-and-round-trip loops misbehave under extended-precision evaluation
// environments, where intermediate comparisons are computed wider than the
// stored double.
package safedouble
