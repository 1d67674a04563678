package flow

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(z *Zone) []int {
	var out []int
	for _, n := range z.Nodes() {
		out = append(out, n.Fp())
	}
	return out
}

func TestZoneInsertAndRemoveRenumber(t *testing.T) {
	z := NewZone()
	a := z.Append(Run, 0, "a")
	b := z.Append(Run, 0, "b")
	c := z.Append(Run, 0, "c")

	x, err := z.Insert(1, Run, 0, "x")
	require.NoError(t, err)
	assert.Equal(t, []*Node{a, x, b, c}, z.Nodes())
	assert.Equal(t, []int{0, 1, 2, 3}, positions(z))

	y, err := z.InsertBefore(a, Run, 0, "y")
	require.NoError(t, err)
	assert.Equal(t, 0, y.Fp())
	assert.Equal(t, 4, c.Fp())

	require.NoError(t, z.Remove(x))
	assert.Equal(t, []*Node{y, a, b, c}, z.Nodes())
	assert.Equal(t, []int{0, 1, 2, 3}, positions(z))
	assert.Equal(t, -1, x.Fp())

	assert.ErrorIs(t, z.Remove(x), ErrUnknownNode)
	_, err = z.InsertBefore(x, Run, 0, nil)
	assert.ErrorIs(t, err, ErrUnknownNode)
	_, err = z.Insert(10, Run, 0, nil)
	assert.Error(t, err)

	require.NoError(t, z.Validate())

	got, ok := z.At(2)
	require.True(t, ok)
	assert.Same(t, b, got)
	_, ok = z.At(4)
	assert.False(t, ok)
}

func TestNodeCompare(t *testing.T) {
	z := NewZone()
	a := z.Append(Run, 0, nil)
	b := z.Append(Run, 0, nil)

	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestZoneValidate(t *testing.T) {
	t.Run("duplicate position", func(t *testing.T) {
		z := NewZone()
		z.Append(Run, 0, nil)
		second := z.Append(Run, 0, nil)
		second.setFp(0)

		err := z.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicatePosition))
	})

	t.Run("position out of order", func(t *testing.T) {
		z := NewZone()
		z.Append(Run, 0, nil)
		z.Append(Run, 0, nil).increaseFp()
		assert.Error(t, z.Validate())
	})

	t.Run("unclosed scope", func(t *testing.T) {
		z := NewZone()
		z.Append(Start, z.NewScope(), &Scope{})
		assert.ErrorIs(t, z.Validate(), ErrUnbalancedScope)
	})

	t.Run("crossed scopes", func(t *testing.T) {
		z := NewZone()
		outer, inner := z.NewScope(), z.NewScope()
		z.Append(Start, outer, &Scope{})
		z.Append(Start, inner, &Scope{})
		z.Append(End, outer, &Scope{})
		z.Append(End, inner, &Scope{})
		assert.ErrorIs(t, z.Validate(), ErrUnbalancedScope)
	})
}
