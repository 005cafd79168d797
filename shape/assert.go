package shape

import (
	"github.com/pkg/errors"
)

// This file implements panic-style variants of the checks, for use inside
// numeric code where a bad shape is a programming error and there is no
// sensible error path to thread it through. They double as inline
// documentation: a reader of the call site sees the expected shape.

// Assert validates values against patterns and panics on any failure.
func Assert[S Shaped](values []S, patterns ...Pattern) {
	if err := Check(values, patterns); err != nil {
		panic(errors.WithMessagef(err, "Assert(%d values)", len(values)))
	}
}

// AssertDims checks that v has the given dimensions and rank. A value of
// -1 in dimensions means that dimension can take any value and is not
// checked.
//
// Example:
//
//	layer := Concat(allEmbeddings)
//	shape.AssertDims(layer, batchSize, -1)
func AssertDims(v Shaped, dimensions ...int) {
	p := make(Pattern, len(dimensions))
	for i, d := range dimensions {
		if d == -1 {
			p[i] = Any
		} else {
			p[i] = Lit(d)
		}
	}
	if err := CheckOne[Shaped](v, p); err != nil {
		panic(errors.WithMessagef(err, "AssertDims(%v)", dimensions))
	}
}

// AssertRank checks that v has the given rank and panics otherwise.
func AssertRank(v Shaped, rank int) {
	if s := Shape(v.Shape()); len(s) != rank {
		panic(errors.Errorf("AssertRank(%d): shape %s has rank %d", rank, s, len(s)))
	}
}

// AssertScalar checks that v is a scalar (rank 0) and panics otherwise.
func AssertScalar(v Shaped) {
	if s := Shape(v.Shape()); len(s) != 0 {
		panic(errors.Errorf("AssertScalar(): shape %s has rank %d", s, len(s)))
	}
}
