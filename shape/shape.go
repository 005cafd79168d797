// Package shape validates the shapes of tensors and other array-like values
// against patterns of literal sizes, named symbols, and wildcards.
//
// A pattern describes one value's expected shape dimension by dimension:
//   - a literal (e.g. 2) must match the actual size exactly
//   - a symbol (e.g. "B") binds to whatever size it sees first, and every
//     later occurrence of the same name in the same call must agree
//   - the wildcard (* or -1) matches any size and binds nothing
//
// Because symbols bind on first sight, a single call both checks a
// constraint and documents it: the same name appearing in two patterns
// asserts those dimensions are equal without any declaration step.
//
// Example usage:
//
//	batch := tensor.NewTensor[float32](4, 3, 2)
//	logits := tensor.NewTensor[float32](4, 5, 3)
//
//	err := shape.Check(
//		[]*tensor.Tensor[float32]{batch, logits},
//		[]shape.Pattern{
//			shape.MustPattern("B", "D", 2),
//			shape.MustPattern("B", 5, "D"),
//		},
//	)
//	// err == nil, with B=4 and D=3 bound for the duration of the call
//
// Every call owns its own binding table; no state survives the call, so the
// package is safe to use from any number of goroutines without locking.
package shape

import (
	"strconv"
	"strings"
)

// Shape is the ordered sequence of sizes along each dimension of an
// array-like value.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s) }

// NumElements returns the total number of elements (product of dimensions).
// A scalar (rank 0) has 1 element.
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
