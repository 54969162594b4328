// Package selection provides index sets built from float64-encoded index
// candidates. Interpreters hand over index lists as doubles; Set validates
// each through a safedouble.Domain and stores the survivors in a 64-bit
// Roaring bitmap, since validated indices can reach 2^53 and therefore do not
// fit a 32-bit bitmap.
package selection

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/scriptvec/scriptvec/safedouble"
)

// Set is a set of validated element indices.
//
// A Set is not safe for concurrent mutation; build it, then share it
// read-only the way the domain itself is shared.
type Set struct {
	dom *safedouble.Domain
	rb  *roaring64.Bitmap
}

// New creates an empty Set validating against dom.
func New(dom *safedouble.Domain) *Set {
	return &Set{
		dom: dom,
		rb:  roaring64.New(),
	}
}

// Add validates each candidate and adds it to the set. On the first invalid
// candidate it stops and returns the classification error; candidates already
// added remain in the set.
func (s *Set) Add(indices ...float64) error {
	for _, c := range indices {
		i, err := s.dom.ToIndex(c)
		if err != nil {
			return err
		}
		s.rb.Add(uint64(i))
	}
	return nil
}

// Contains reports whether the validated candidate is in the set.
func (s *Set) Contains(index float64) (bool, error) {
	i, err := s.dom.ToIndex(index)
	if err != nil {
		return false, err
	}
	return s.rb.Contains(uint64(i)), nil
}

// Cardinality returns the number of indices in the set.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// IsEmpty reports whether the set has no indices.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// And intersects the set with other in place.
func (s *Set) And(other *Set) {
	s.rb.And(other.rb)
}

// Or unions the set with other in place.
func (s *Set) Or(other *Set) {
	s.rb.Or(other.rb)
}

// Iterate calls fn for each index in ascending order until fn returns false.
func (s *Set) Iterate(fn func(uint64) bool) {
	it := s.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// ToSlice returns the indices in ascending order.
func (s *Set) ToSlice() []uint64 {
	return s.rb.ToArray()
}

// Clone returns a deep copy sharing the same domain.
func (s *Set) Clone() *Set {
	return &Set{
		dom: s.dom,
		rb:  s.rb.Clone(),
	}
}
