package safedouble

import (
	"errors"
	"fmt"
	"math"
)

const (
	// mantissaBits is the explicit fraction width of IEEE binary64.
	mantissaBits = 52

	// MaxSafeInteger is the largest integer N such that every integer in
	// [-N, N] is exactly representable in IEEE binary64: 2^53.
	//
	// Untyped so it can serve both as a float64 boundary and as an exact
	// integer constant. 2^53 itself round-trips exactly; 2^53+1 does not
	// (the next representable double is 2^53+2).
	MaxSafeInteger = 1 << (mantissaBits + 1)
)

// Ties MaxSafeInteger to the mantissa width at compile time. The array length
// is 1 exactly when MaxSafeInteger == 2^(mantissaBits+1).
var _ [1]struct{} = [MaxSafeInteger>>mantissaBits - 1]struct{}{}

var (
	// ErrOutOfSafeRange is returned when a candidate's magnitude exceeds
	// MaxSafeInteger and can no longer be converted to an integer without
	// rounding.
	ErrOutOfSafeRange = errors.New("value outside safe integer range")

	// ErrNegative is returned when a negative candidate reaches a context
	// that requires a non-negative size, length, or index.
	ErrNegative = errors.New("negative value where size or index required")

	// ErrNotInteger is returned when a fractional candidate reaches an
	// integer conversion. Fractional candidates are rejected, never
	// truncated or rounded.
	ErrNotInteger = errors.New("value is not an integer")
)

// Domain validates float64-encoded integer candidates against the safe
// integer boundary of the floating-point format carrying them.
//
// A Domain has two states, Uninitialized and Initialized, with a single
// one-way transition through Initialize. Construct one Domain during host
// startup and inject it into every validation call site; after Initialize
// it is read-only and safe for concurrent use without locks.
type Domain struct {
	max         float64
	initialized bool
}

// New returns an uninitialized Domain. Initialize must be called before any
// validation method; the zero value behaves the same way.
func New() *Domain {
	return &Domain{}
}

// Initialize sets the safe integer boundary to MaxSafeInteger. It is a pure
// constant assignment that cannot fail, and it is idempotent: repeated calls
// leave the boundary unchanged. It must complete before the Domain is shared
// across goroutines.
func (d *Domain) Initialize() {
	if d.initialized {
		return
	}
	d.max = MaxSafeInteger
	d.initialized = true
}

// Initialized reports whether Initialize has run.
func (d *Domain) Initialized() bool {
	return d.initialized
}

// Max returns the safe integer boundary as a float64.
func (d *Domain) Max() float64 {
	d.mustInit()
	return d.max
}

// Validate reports whether candidate lies within the safe integer range,
// i.e. |candidate| <= MaxSafeInteger. NaN and infinities are out of range.
// It is a pure predicate with no side effects; fractional values inside the
// range are accepted here and rejected only by the integer conversions.
func (d *Domain) Validate(candidate float64) error {
	d.mustInit()
	// The negated form also catches NaN, which fails every comparison.
	if !(math.Abs(candidate) <= d.max) {
		return fmt.Errorf("%w: %g exceeds %g", ErrOutOfSafeRange, candidate, d.max)
	}
	return nil
}

// ValidateSize checks candidate the way Validate does and additionally
// requires it to be non-negative, as a size, length, or index must be.
func (d *Domain) ValidateSize(candidate float64) error {
	if err := d.Validate(candidate); err != nil {
		return err
	}
	if candidate < 0 {
		return fmt.Errorf("%w: %g", ErrNegative, candidate)
	}
	return nil
}

// ToIndex converts candidate to an int usable for storage addressing.
// It fails with ErrOutOfSafeRange, ErrNegative, or ErrNotInteger; on success
// the conversion is exact.
func (d *Domain) ToIndex(candidate float64) (int, error) {
	if err := d.ValidateSize(candidate); err != nil {
		return 0, err
	}
	if math.Trunc(candidate) != candidate {
		return 0, fmt.Errorf("%w: %g", ErrNotInteger, candidate)
	}
	// 2^53 fits in int64 but not in a 32-bit int.
	if candidate > float64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %g exceeds platform int", ErrOutOfSafeRange, candidate)
	}
	return int(candidate), nil
}

// ToLength converts candidate to an int usable as an element count.
// Identical contract to ToIndex; named separately so call sites read as what
// they consume.
func (d *Domain) ToLength(candidate float64) (int, error) {
	return d.ToIndex(candidate)
}

// ToOffset converts candidate to a signed int64 offset. Negative values are
// allowed; magnitude and integrality are still enforced.
func (d *Domain) ToOffset(candidate float64) (int64, error) {
	if err := d.Validate(candidate); err != nil {
		return 0, err
	}
	if math.Trunc(candidate) != candidate {
		return 0, fmt.Errorf("%w: %g", ErrNotInteger, candidate)
	}
	return int64(candidate), nil
}

// mustInit panics when the Domain is used before Initialize. Reaching an
// uninitialized Domain is a defect in the host's startup sequence, not a
// user-input error, so it is fatal rather than classified.
func (d *Domain) mustInit() {
	if !d.initialized {
		panic("safedouble: domain accessed before Initialize")
	}
}
