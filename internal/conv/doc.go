// Package conv provides checked integer conversions for untrusted counts read
// from snapshot frames.
//
// Element counts arrive from disk as fixed-width unsigned integers; converting
// them to Go's platform-dependent int without a bounds check silently wraps on
// corrupted input. These helpers return an error instead.
//
// For conversions that are provably safe by domain constraints (loop indices,
// bounded counters), use direct casts instead.
package conv
