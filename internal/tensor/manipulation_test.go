package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTranspose tests the shape-reversing transpose of owned arrays.
func TestTranspose(t *testing.T) {
	t.Run("matrix", func(t *testing.T) {
		a := seq(Shape{2, 3})
		a.Transpose()

		expected := Shape{3, 2}
		if !a.Shape().Equal(expected) {
			t.Errorf("expected shape %v, got %v", expected, a.Shape())
		}
		assert.Equal(t, []int32{0, 3, 1, 4, 2, 5}, a.Data())
	})

	t.Run("twice is identity", func(t *testing.T) {
		a := FromFunc(Shape{3, 4, 5}, func(idx Index) int32 {
			return int32(idx[0]*3 + idx[1]*5 + idx[2]*7)
		})
		orig := a.Clone()

		a.Transpose()
		assert.Equal(t, Shape{5, 4, 3}, a.Shape())
		assert.Equal(t, orig.At(1, 2, 3), a.At(3, 2, 1))

		a.Transpose()
		assert.True(t, a.Equal(orig))
	})

	t.Run("rank 0 and 1", func(t *testing.T) {
		s := New(Shape{}, int32(3))
		s.Transpose()
		assert.Equal(t, int32(3), s.At())

		v := seq(Shape{4})
		v.Transpose()
		assert.Equal(t, []int32{0, 1, 2, 3}, v.Data())
	})
}

// TestInsert tests growing a dimension with another array's elements.
func TestInsert(t *testing.T) {
	t.Run("middle", func(t *testing.T) {
		a := seq(Shape{2, 3})
		a.Insert(1, 1, New(Shape{2, 2}, int32(-1)))

		assert.Equal(t, Shape{2, 5}, a.Shape())
		assert.Equal(t, []int32{0, -1, -1, 1, 2, 3, -1, -1, 4, 5}, a.Data())
	})

	t.Run("front", func(t *testing.T) {
		a := seq(Shape{2, 2})
		a.Insert(0, 0, New(Shape{1, 2}, int32(9)))
		assert.Equal(t, []int32{9, 9, 0, 1, 2, 3}, a.Data())
	})

	t.Run("append", func(t *testing.T) {
		a := seq(Shape{2, 2})
		a.Insert(0, 2, New(Shape{1, 2}, int32(9)))
		assert.Equal(t, []int32{0, 1, 2, 3, 9, 9}, a.Data())
	})

	t.Run("from view", func(t *testing.T) {
		src := seq(Shape{2, 2, 3})
		row := src.Slice(1)
		defer row.Release()

		a := Zeros[int32](Shape{1, 3})
		a.Insert(0, 1, row)
		assert.Equal(t, []int32{0, 0, 0, 6, 7, 8, 9, 10, 11}, a.Data())
	})

	t.Run("invalid arguments panic", func(t *testing.T) {
		a := seq(Shape{2, 3})
		assert.Panics(t, func() { a.Insert(2, 0, seq(Shape{2, 3})) }, "dim out of range")
		assert.Panics(t, func() { a.Insert(1, 4, seq(Shape{2, 1})) }, "pos beyond end")
		assert.Panics(t, func() { a.Insert(1, 0, seq(Shape{3, 1})) }, "other dimension differs")
		assert.Panics(t, func() { a.Insert(1, 0, seq(Shape{2})) }, "rank differs")
		assert.Equal(t, Shape{2, 3}, a.Shape())
	})
}

// TestRemove tests deleting a range of a dimension.
func TestRemove(t *testing.T) {
	a := seq(Shape{3, 4})
	a.Remove(1, 1, 3)
	assert.Equal(t, Shape{3, 2}, a.Shape())
	assert.Equal(t, []int32{0, 3, 4, 7, 8, 11}, a.Data())

	a.Remove(0, 0, 1)
	assert.Equal(t, []int32{4, 7, 8, 11}, a.Data())

	assert.Panics(t, func() { a.Remove(0, 1, 1) }, "empty range")
	assert.Panics(t, func() { a.Remove(0, 1, 3) }, "end beyond shape")
	assert.Panics(t, func() { a.Remove(2, 0, 1) }, "dim out of range")
}

func TestInsertRemoveRoundTrip(t *testing.T) {
	orig := seq(Shape{3, 4, 5})
	a := orig.Clone()

	a.Insert(1, 2, New(Shape{3, 3, 5}, int32(-1)))
	assert.Equal(t, Shape{3, 7, 5}, a.Shape())
	a.Remove(1, 2, 5)
	assert.True(t, a.Equal(orig))
}

// TestExtract tests copying out a hyper-rectangle.
func TestExtract(t *testing.T) {
	a := seq(Shape{3, 4})
	e := a.Extract(Index{1, 1}, Index{3, 3})
	assert.Equal(t, Shape{2, 2}, e.Shape())
	assert.Equal(t, []int32{5, 6, 9, 10}, e.Data())

	// The extract owns its storage
	e.Set(0, 0, 0)
	assert.Equal(t, int32(5), a.At(1, 1))

	assert.Panics(t, func() { a.Extract(Index{0}, Index{1}) })
	assert.Panics(t, func() { a.Extract(Index{1, 1}, Index{1, 2}) })
	assert.Panics(t, func() { a.Extract(Index{0, 0}, Index{4, 1}) })
}

// TestSplit tests cutting a dimension in two and reassembling it.
func TestSplit(t *testing.T) {
	orig := seq(Shape{4, 3, 2})
	a := orig.Clone()

	upper := a.Split(1, 1)
	assert.Equal(t, Shape{4, 1, 2}, a.Shape())
	assert.Equal(t, Shape{4, 2, 2}, upper.Shape())
	assert.Equal(t, orig.At(3, 2, 1), upper.At(3, 1, 1))
	assert.Equal(t, orig.At(2, 0, 1), a.At(2, 0, 1))

	a.Insert(1, 1, upper)
	require.True(t, a.Equal(orig))

	assert.Panics(t, func() { a.Split(1, 3) }, "empty upper half")
	assert.Panics(t, func() { a.Split(1, -1) }, "negative pos")
}

func TestSplitAtZero(t *testing.T) {
	orig := seq(Shape{2, 3})
	a := orig.Clone()

	upper := a.Split(1, 0)
	assert.Equal(t, Shape{2, 0}, a.Shape())
	assert.Empty(t, a.Data())
	assert.True(t, upper.Equal(orig))

	a.Insert(1, 0, upper)
	assert.True(t, a.Equal(orig))
}

func TestShapeChangesNeedNoLiveViews(t *testing.T) {
	a := seq(Shape{2, 2})
	v := a.Slice(0)

	assert.Panics(t, func() { a.Transpose() })
	assert.Panics(t, func() { a.Insert(0, 0, seq(Shape{1, 2})) })
	assert.Panics(t, func() { a.Remove(0, 0, 1) })
	assert.Panics(t, func() { a.Reshape(Shape{4}) })

	v.Release()
	a.Transpose()
	assert.Equal(t, []int32{0, 2, 1, 3}, a.Data())
}
