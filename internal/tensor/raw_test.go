package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	r, err := NewRaw(Shape{2, 3}, Float64, CPU)
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3}, r.Shape())
	assert.Equal(t, []int{3, 1}, r.Strides())
	assert.Equal(t, Float64, r.DType())
	assert.Equal(t, CPU, r.Device())
	assert.Equal(t, make([]float64, 6), r.AsFloat64())

	_, err = NewRaw(Shape{2, Dynamic}, Float32, CPU)
	assert.Error(t, err)
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4}
	r, err := FromSlice(data, Shape{2, 2})
	require.NoError(t, err)
	assert.Equal(t, Float32, r.DType())
	data[0] = 9
	assert.Equal(t, []float32{1, 2, 3, 4}, r.AsFloat32(), "slice is copied")

	_, err = FromSlice([]float64{1, 2, 3}, Shape{2, 2})
	assert.Error(t, err)
}

func TestRaw_View(t *testing.T) {
	r, err := FromSlice([]float64{1, 2}, Shape{2})
	require.NoError(t, err)
	View[float64](r)[1] = 5
	assert.Equal(t, []float64{1, 5}, r.AsFloat64())
	assert.Panics(t, func() { r.AsFloat32() })
}

func TestRaw_CloneAndWithShape(t *testing.T) {
	r, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)

	c := r.Clone()
	c.AsFloat32()[0] = 7
	assert.Equal(t, float32(1), r.AsFloat32()[0])

	v, err := r.WithShape(Shape{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, Shape{3, 1, 2}, v.Shape())
	assert.Equal(t, []int{2, 2, 1}, v.Strides())
	assert.Equal(t, r.AsFloat32(), v.AsFloat32())
	v.AsFloat32()[0] = 8
	assert.Equal(t, float32(1), r.AsFloat32()[0])

	_, err = r.WithShape(Shape{4})
	assert.Error(t, err)
}

func TestRaw_Float64s(t *testing.T) {
	r, err := FromSlice([]float32{1.5, -2}, Shape{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2}, r.Float64s())
	assert.Equal(t, "Tensor[float32](2) on CPU", r.String())
}

func TestParseDataType(t *testing.T) {
	dt, err := ParseDataType("Float64")
	require.NoError(t, err)
	assert.Equal(t, Float64, dt)
	assert.Equal(t, 4, Float32.Size())

	_, err = ParseDataType("int8")
	assert.Error(t, err)
}
