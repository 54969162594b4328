// Package scriptvec provides an embeddable numeric vector container for hosts
// that embed a scripting interpreter whose only numeric representation is
// IEEE binary64.
//
// Every value crossing the interpreter boundary arrives as a float64 —
// element values, but also indices, lengths, and counts. A float64 can carry
// an integer exactly only up to 2^53; past that, converting it to a Go int
// silently addresses the wrong element. scriptvec therefore routes every
// float64-encoded index, length, or count through a safedouble.Domain before
// it touches storage.
//
// # Quick Start
//
//	dom := safedouble.New()
//	dom.Initialize()
//
//	vec, _ := scriptvec.New(dom)
//	_ = vec.Resize(8)
//	_ = vec.Set(0, 3.14)
//	x, _ := vec.Get(0)
//
// Hosts that manage several vectors by name use a Registry, which owns the
// domain and injects it into every vector it creates:
//
//	reg := scriptvec.NewRegistry()
//	vec, _ := reg.Create("samples")
//
// # Safety model
//
// Validation failures are classified, never recovered: a rejected index or
// length leaves the vector untouched, and the caller translates the error
// into a user-visible rejection. Calling into a vector whose domain was never
// initialized panics, since that is a defect in the host's startup sequence
// rather than a user-input error.
//
// # Persistence
//
// The persistence package snapshots vectors through pluggable blob stores
// (local filesystem, memory, S3, MinIO) with checksummed, optionally
// compressed on-disk frames.
package scriptvec
