package scriptvec

import (
	"context"
	"fmt"
	"sync"

	"github.com/scriptvec/scriptvec/safedouble"
	"github.com/scriptvec/scriptvec/selection"
)

// Vector is a growable container of float64 elements whose index, length, and
// count arguments arrive as float64 from the interpreter boundary.
//
// Every such argument passes through the injected safedouble.Domain before it
// is used to size or address storage. Validation failures leave the vector
// untouched; no partial mutation occurs.
//
// A Vector is safe for concurrent use.
type Vector struct {
	mu     sync.RWMutex
	dom    *safedouble.Domain
	data   []float64
	limits Limits
	logger *Logger
}

// New creates an empty Vector bound to dom.
//
// New initializes dom if the host has not done so yet; Initialize is
// idempotent, so a domain shared across vectors is set up exactly once.
func New(dom *safedouble.Domain, opts ...Option) (*Vector, error) {
	if dom == nil {
		return nil, ErrNilDomain
	}
	dom.Initialize()

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Vector{
		dom:    dom,
		limits: o.limits,
		logger: o.logger,
	}, nil
}

// Domain returns the safe-integer domain the vector validates against.
func (v *Vector) Domain() *safedouble.Domain {
	return v.dom
}

// Length returns the element count as a float64, the representation the
// interpreter consumes. The count is bounded by Limits.MaxElements, far below
// the safe integer boundary, so the conversion is always exact.
func (v *Vector) Length() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return float64(len(v.data))
}

// Len returns the element count as an int, for Go-side callers.
func (v *Vector) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.data)
}

// Get returns the element at index.
func (v *Vector) Get(index float64) (float64, error) {
	i, err := v.dom.ToIndex(index)
	if err != nil {
		return 0, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if i >= len(v.data) {
		return 0, &ErrIndexOutOfRange{Index: i, Length: len(v.data)}
	}
	return v.data[i], nil
}

// Set assigns value to the element at index.
func (v *Vector) Set(index, value float64) error {
	i, err := v.dom.ToIndex(index)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if i >= len(v.data) {
		return &ErrIndexOutOfRange{Index: i, Length: len(v.data)}
	}
	v.data[i] = value
	return nil
}

// Append adds values to the end of the vector.
func (v *Vector) Append(values ...float64) error {
	if len(values) > v.limits.MaxBatch {
		return fmt.Errorf("batch size %d exceeds limit %d", len(values), v.limits.MaxBatch)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.data)+len(values) > v.limits.MaxElements {
		err := fmt.Errorf("append would exceed element limit: %d + %d > %d",
			len(v.data), len(values), v.limits.MaxElements)
		v.logger.LogAppend(context.Background(), len(values), err)
		return err
	}
	v.data = append(v.data, values...)
	v.logger.LogAppend(context.Background(), len(values), nil)
	return nil
}

// Resize sets the vector to exactly length elements. Growth zero-fills;
// shrinking discards the tail.
func (v *Vector) Resize(length float64) error {
	n, err := v.dom.ToLength(length)
	if err != nil {
		v.logger.LogResize(context.Background(), length, err)
		return err
	}
	if n > v.limits.MaxElements {
		err := fmt.Errorf("length %d exceeds element limit %d", n, v.limits.MaxElements)
		v.logger.LogResize(context.Background(), length, err)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case n <= len(v.data):
		v.data = v.data[:n]
	case n <= cap(v.data):
		old := len(v.data)
		v.data = v.data[:n]
		clear(v.data[old:])
	default:
		grown := make([]float64, n)
		copy(grown, v.data)
		v.data = grown
	}
	v.logger.LogResize(context.Background(), length, nil)
	return nil
}

// Range returns a copy of the elements in the inclusive span [first, last].
func (v *Vector) Range(first, last float64) ([]float64, error) {
	lo, err := v.dom.ToIndex(first)
	if err != nil {
		return nil, err
	}
	hi, err := v.dom.ToIndex(last)
	if err != nil {
		return nil, err
	}
	if lo > hi {
		return nil, &ErrInvalidRange{First: lo, Last: hi}
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if hi >= len(v.data) {
		return nil, &ErrIndexOutOfRange{Index: hi, Length: len(v.data)}
	}
	out := make([]float64, hi-lo+1)
	copy(out, v.data[lo:hi+1])
	return out, nil
}

// Fill assigns value to every element in the inclusive span [first, last].
func (v *Vector) Fill(first, last, value float64) error {
	lo, err := v.dom.ToIndex(first)
	if err != nil {
		return err
	}
	hi, err := v.dom.ToIndex(last)
	if err != nil {
		return err
	}
	if lo > hi {
		return &ErrInvalidRange{First: lo, Last: hi}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if hi >= len(v.data) {
		return &ErrIndexOutOfRange{Index: hi, Length: len(v.data)}
	}
	for i := lo; i <= hi; i++ {
		v.data[i] = value
	}
	return nil
}

// Gather returns the elements addressed by sel, in ascending index order.
func (v *Vector) Gather(sel *selection.Set) ([]float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]float64, 0, int(sel.Cardinality()))
	var rangeErr error
	sel.Iterate(func(i uint64) bool {
		if i >= uint64(len(v.data)) {
			rangeErr = &ErrIndexOutOfRange{Index: int(i), Length: len(v.data)}
			return false
		}
		out = append(out, v.data[i])
		return true
	})
	if rangeErr != nil {
		return nil, rangeErr
	}
	return out, nil
}

// Values returns a copy of all elements.
func (v *Vector) Values() []float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Replace swaps the vector's contents for values, copying them. Used by
// snapshot restore; subject to the same element limit as Resize.
func (v *Vector) Replace(values []float64) error {
	if len(values) > v.limits.MaxElements {
		return fmt.Errorf("length %d exceeds element limit %d", len(values), v.limits.MaxElements)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.data = make([]float64, len(values))
	copy(v.data, values)
	return nil
}

// Clear removes all elements.
func (v *Vector) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data = nil
}

// Sum returns the sum of all elements. The sum of an empty vector is 0.
func (v *Vector) Sum() float64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var s float64
	for _, x := range v.data {
		s += x
	}
	return s
}

// Min returns the smallest element, or ErrEmpty for an empty vector.
func (v *Vector) Min() (float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.data) == 0 {
		return 0, ErrEmpty
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x < m {
			m = x
		}
	}
	return m, nil
}

// Max returns the largest element, or ErrEmpty for an empty vector.
func (v *Vector) Max() (float64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.data) == 0 {
		return 0, ErrEmpty
	}
	m := v.data[0]
	for _, x := range v.data[1:] {
		if x > m {
			m = x
		}
	}
	return m, nil
}
