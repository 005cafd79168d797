// Package tensor provides a minimal dense tensor that satisfies
// shape.Shaped, so shape contracts can be checked against real values.
package tensor

import (
	"fmt"
)

// Numeric enumerates the element types a Tensor can hold.
type Numeric interface {
	~float32 | ~float64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Tensor is a dense row-major tensor.
type Tensor[T Numeric] struct {
	Data    []T
	shape   []int
	strides []int // row-major
}

// NewTensor allocates a zeroed tensor with the given dimensions.
func NewTensor[T Numeric](dims ...int) *Tensor[T] {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return &Tensor[T]{
		Data:    make([]T, n),
		shape:   append([]int(nil), dims...),
		strides: contiguousStrides(dims),
	}
}

// NewTensorFromSlice wraps an existing slice without copying. Returns nil
// if the dimensions do not multiply out to len(data).
func NewTensorFromSlice[T Numeric](data []T, dims ...int) *Tensor[T] {
	n := 1
	for _, d := range dims {
		n *= d
	}
	if n != len(data) {
		return nil
	}
	return &Tensor[T]{
		Data:    data,
		shape:   append([]int(nil), dims...),
		strides: contiguousStrides(dims),
	}
}

// Shape returns the tensor's dimensions. The returned slice is shared;
// callers must not mutate it.
func (t *Tensor[T]) Shape() []int { return t.shape }

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int { return len(t.shape) }

// Size returns the total number of elements.
func (t *Tensor[T]) Size() int { return len(t.Data) }

// Strides returns the row-major strides, in elements.
func (t *Tensor[T]) Strides() []int { return t.strides }

// Clone returns a deep copy.
func (t *Tensor[T]) Clone() *Tensor[T] {
	data := make([]T, len(t.Data))
	copy(data, t.Data)
	return &Tensor[T]{
		Data:    data,
		shape:   append([]int(nil), t.shape...),
		strides: append([]int(nil), t.strides...),
	}
}

// Reshape returns a view over the same data with new dimensions. Returns
// nil if the new dimensions do not multiply out to the same element count.
func (t *Tensor[T]) Reshape(dims ...int) *Tensor[T] {
	n := 1
	for _, d := range dims {
		n *= d
	}
	if n != len(t.Data) {
		return nil
	}
	return &Tensor[T]{
		Data:    t.Data,
		shape:   append([]int(nil), dims...),
		strides: contiguousStrides(dims),
	}
}

// At returns the element at the given multi-dimensional index.
func (t *Tensor[T]) At(idx ...int) T {
	return t.Data[t.offset(idx)]
}

// Set stores v at the given multi-dimensional index.
func (t *Tensor[T]) Set(v T, idx ...int) {
	t.Data[t.offset(idx)] = v
}

func (t *Tensor[T]) offset(idx []int) int {
	if len(idx) != len(t.shape) {
		panic(fmt.Sprintf("tensor: %d indices for rank %d", len(idx), len(t.shape)))
	}
	off := 0
	for i, x := range idx {
		off += x * t.strides[i]
	}
	return off
}

func contiguousStrides(dims []int) []int {
	strides := make([]int, len(dims))
	s := 1
	for i := len(dims) - 1; i >= 0; i-- {
		strides[i] = s
		s *= dims[i]
	}
	return strides
}
