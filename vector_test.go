package scriptvec

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptvec/scriptvec/safedouble"
	"github.com/scriptvec/scriptvec/selection"
)

func newTestVector(t *testing.T, opts ...Option) *Vector {
	t.Helper()
	dom := safedouble.New()
	vec, err := New(dom, opts...)
	require.NoError(t, err)
	return vec
}

func TestNewRequiresDomain(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNilDomain)
}

func TestNewInitializesDomain(t *testing.T) {
	dom := safedouble.New()
	require.False(t, dom.Initialized())

	vec, err := New(dom)
	require.NoError(t, err)
	assert.True(t, dom.Initialized())
	assert.Same(t, dom, vec.Domain())
}

func TestGetSet(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Resize(4))

	require.NoError(t, vec.Set(2, 1.5))
	x, err := vec.Get(2)
	require.NoError(t, err)
	assert.Equal(t, 1.5, x)

	x, err = vec.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, x)
}

func TestIndexValidationAtBoundary(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Resize(4))

	_, err := vec.Get(1.5)
	assert.ErrorIs(t, err, safedouble.ErrNotInteger)

	_, err = vec.Get(-1)
	assert.ErrorIs(t, err, safedouble.ErrNegative)

	_, err = vec.Get(float64(safedouble.MaxSafeInteger) + 2)
	assert.ErrorIs(t, err, safedouble.ErrOutOfSafeRange)

	_, err = vec.Get(math.NaN())
	assert.ErrorIs(t, err, safedouble.ErrOutOfSafeRange)

	// Valid in the safe-integer domain, but past the end of this vector.
	_, err = vec.Get(4)
	var oor *ErrIndexOutOfRange
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 4, oor.Index)
	assert.Equal(t, 4, oor.Length)
}

func TestSetRejectionLeavesVectorUntouched(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Append(1, 2, 3))

	assert.Error(t, vec.Set(7, 9))
	assert.Error(t, vec.Set(1.5, 9))
	assert.Equal(t, []float64{1, 2, 3}, vec.Values())
}

func TestResize(t *testing.T) {
	vec := newTestVector(t)

	require.NoError(t, vec.Resize(3))
	assert.Equal(t, 3.0, vec.Length())
	assert.Equal(t, []float64{0, 0, 0}, vec.Values())

	require.NoError(t, vec.Set(2, 5))
	require.NoError(t, vec.Resize(1))
	assert.Equal(t, []float64{0}, vec.Values())

	// Growing back within capacity zero-fills the reclaimed tail.
	require.NoError(t, vec.Resize(3))
	assert.Equal(t, []float64{0, 0, 0}, vec.Values())

	assert.ErrorIs(t, vec.Resize(-1), safedouble.ErrNegative)
	assert.ErrorIs(t, vec.Resize(2.5), safedouble.ErrNotInteger)
}

func TestResizeRespectsLimits(t *testing.T) {
	vec := newTestVector(t, WithLimits(Limits{MaxElements: 10, MaxBatch: 4}))

	require.NoError(t, vec.Resize(10))
	assert.Error(t, vec.Resize(11))
	assert.Equal(t, 10.0, vec.Length())
}

func TestAppendRespectsLimits(t *testing.T) {
	vec := newTestVector(t, WithLimits(Limits{MaxElements: 5, MaxBatch: 3}))

	require.NoError(t, vec.Append(1, 2, 3))
	assert.Error(t, vec.Append(4, 5, 6, 7)) // batch too large
	assert.Error(t, vec.Append(4, 5, 6))    // would exceed MaxElements
	require.NoError(t, vec.Append(4, 5))
	assert.Equal(t, 5.0, vec.Length())
}

func TestRangeAndFill(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Append(0, 1, 2, 3, 4))

	got, err := vec.Range(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)

	_, err = vec.Range(3, 1)
	var inv *ErrInvalidRange
	assert.ErrorAs(t, err, &inv)

	_, err = vec.Range(3, 5)
	var oor *ErrIndexOutOfRange
	assert.ErrorAs(t, err, &oor)

	require.NoError(t, vec.Fill(1, 3, 9))
	assert.Equal(t, []float64{0, 9, 9, 9, 4}, vec.Values())
}

func TestGather(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Append(10, 11, 12, 13))

	sel := selection.New(vec.Domain())
	require.NoError(t, sel.Add(0, 2, 3))

	got, err := vec.Gather(sel)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 12, 13}, got)

	require.NoError(t, sel.Add(9))
	_, err = vec.Gather(sel)
	var oor *ErrIndexOutOfRange
	assert.ErrorAs(t, err, &oor)
}

func TestReductions(t *testing.T) {
	vec := newTestVector(t)

	assert.Equal(t, 0.0, vec.Sum())
	_, err := vec.Min()
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = vec.Max()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, vec.Append(3, -1, 4, 1.5))
	assert.Equal(t, 7.5, vec.Sum())

	lo, err := vec.Min()
	require.NoError(t, err)
	assert.Equal(t, -1.0, lo)

	hi, err := vec.Max()
	require.NoError(t, err)
	assert.Equal(t, 4.0, hi)
}

func TestReplaceAndClear(t *testing.T) {
	vec := newTestVector(t, WithLimits(Limits{MaxElements: 4, MaxBatch: 4}))

	require.NoError(t, vec.Replace([]float64{7, 8}))
	assert.Equal(t, []float64{7, 8}, vec.Values())

	assert.Error(t, vec.Replace(make([]float64, 5)))
	assert.Equal(t, []float64{7, 8}, vec.Values())

	// Replace copies its input.
	src := []float64{1, 2}
	require.NoError(t, vec.Replace(src))
	src[0] = 99
	assert.Equal(t, []float64{1, 2}, vec.Values())

	vec.Clear()
	assert.Equal(t, 0.0, vec.Length())
}

func TestValuesIsACopy(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Append(1, 2))

	vals := vec.Values()
	vals[0] = 99
	got, err := vec.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestConcurrentAccess(t *testing.T) {
	vec := newTestVector(t)
	require.NoError(t, vec.Resize(64))

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 64 {
				_ = vec.Set(float64(i), float64(g))
				_, _ = vec.Get(float64(i))
				_ = vec.Length()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 64.0, vec.Length())
}
