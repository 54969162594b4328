package scriptvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateLookupDelete(t *testing.T) {
	reg := NewRegistry()

	vec, err := reg.Create("samples")
	require.NoError(t, err)
	require.NotNil(t, vec)

	got, err := reg.Lookup("samples")
	require.NoError(t, err)
	assert.Same(t, vec, got)

	_, err = reg.Create("samples")
	assert.ErrorIs(t, err, ErrExists)

	require.NoError(t, reg.Delete("samples"))
	_, err = reg.Lookup("samples")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, reg.Delete("samples"), ErrNotFound)
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Create("")
	assert.Error(t, err)
}

func TestRegistrySharesOneDomain(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, reg.Domain().Initialized())

	a, err := reg.Create("a")
	require.NoError(t, err)
	b, err := reg.Create("b")
	require.NoError(t, err)

	assert.Same(t, reg.Domain(), a.Domain())
	assert.Same(t, reg.Domain(), b.Domain())
}

func TestRegistryNames(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"c", "a", "b"} {
		_, err := reg.Create(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
	assert.Equal(t, 3, reg.Len())
}

func TestRegistryOptionsPropagate(t *testing.T) {
	reg := NewRegistry(WithLimits(Limits{MaxElements: 2, MaxBatch: 2}))

	vec, err := reg.Create("small")
	require.NoError(t, err)
	require.NoError(t, vec.Append(1, 2))
	assert.Error(t, vec.Append(3))
}
