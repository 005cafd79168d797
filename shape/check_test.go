package shape_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfluke/shapecheck/shape"
	"github.com/openfluke/shapecheck/tensor"
)

func tensors(shapes ...[]int) []*tensor.Tensor[float32] {
	out := make([]*tensor.Tensor[float32], len(shapes))
	for i, s := range shapes {
		out[i] = tensor.NewTensor[float32](s...)
	}
	return out
}

func TestCheck_SharedSymbolsAgree(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 2}, []int{4, 5, 3})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2),
		shape.MustPattern("B", 5, "D"),
	}

	b, err := shape.Resolve(vals, patterns)
	require.NoError(t, err)
	require.Equal(t, shape.Bindings{"B": 4, "D": 3}, b)
}

func TestCheck_SymbolConflict(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 2}, []int{5, 5, 3})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2),
		shape.MustPattern("B", 5, "D"),
	}

	err := shape.Check(vals, patterns)
	require.Error(t, err)

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, shape.MismatchSymbol, serr.Kind())

	m := serr.Mismatches[0]
	require.Equal(t, "B", m.Symbol)
	require.Equal(t, 1, m.Arg)
	require.Equal(t, 0, m.Dim)
	require.Equal(t, 4, m.Want)
	require.Equal(t, 5, m.Got)
}

func TestCheck_RankMismatch(t *testing.T) {
	t.Parallel()

	err := shape.CheckOne(
		tensor.NewTensor[float32](4, 3),
		shape.MustPattern("B", "D", 2),
	)
	require.Error(t, err)

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, shape.MismatchRank, serr.Kind())

	m := serr.Mismatches[0]
	require.Equal(t, 0, m.Arg)
	require.Equal(t, -1, m.Dim)
	require.Equal(t, 3, m.Want)
	require.Equal(t, 2, m.Got)
}

func TestCheck_LiteralMismatch(t *testing.T) {
	t.Parallel()

	err := shape.CheckOne(
		tensor.NewTensor[float32](4, 3, 9),
		shape.MustPattern("B", "D", 2),
	)
	require.Error(t, err)

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, shape.MismatchLiteral, serr.Kind())

	m := serr.Mismatches[0]
	require.Equal(t, 2, m.Dim)
	require.Equal(t, 2, m.Want)
	require.Equal(t, 9, m.Got)
}

func TestCheck_InputLengthMismatch(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3}, []int{4, 3})
	patterns := []shape.Pattern{shape.MustPattern("B", "D")}

	// The length check runs before anything else, so no bindings are made.
	b, err := shape.Resolve(vals, patterns)
	require.Nil(t, b)

	var lerr *shape.InputLengthError
	require.ErrorAs(t, err, &lerr)
	require.Equal(t, 2, lerr.Values)
	require.Equal(t, 1, lerr.Patterns)
}

func TestCheck_WildcardNeverBindsOrFails(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 2}, []int{9, 9, 9})
	patterns := []shape.Pattern{
		shape.MustPattern("*", -1, "*"),
		shape.MustPattern(-1, "*", -1),
	}

	b, err := shape.Resolve(vals, patterns)
	require.NoError(t, err)
	require.Empty(t, b)
}

func TestCheck_CollectAllOrdering(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 9}, []int{7}, []int{5, 5, 3})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2), // literal mismatch at dim 2
		shape.MustPattern("B", "D"),    // rank mismatch, dims skipped
		shape.MustPattern("B", 6, "X"), // symbol conflict at dim 0, literal at dim 1
	}

	err := shape.Check(vals, patterns, shape.CollectAll())
	require.Error(t, err)

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.Len(t, serr.Mismatches, 4)

	require.Equal(t, shape.MismatchLiteral, serr.Mismatches[0].Kind)
	require.Equal(t, 0, serr.Mismatches[0].Arg)
	require.Equal(t, 2, serr.Mismatches[0].Dim)

	require.Equal(t, shape.MismatchRank, serr.Mismatches[1].Kind)
	require.Equal(t, 1, serr.Mismatches[1].Arg)

	require.Equal(t, shape.MismatchSymbol, serr.Mismatches[2].Kind)
	require.Equal(t, 2, serr.Mismatches[2].Arg)
	require.Equal(t, 0, serr.Mismatches[2].Dim)
	require.Equal(t, "B", serr.Mismatches[2].Symbol)

	require.Equal(t, shape.MismatchLiteral, serr.Mismatches[3].Kind)
	require.Equal(t, 2, serr.Mismatches[3].Arg)
	require.Equal(t, 1, serr.Mismatches[3].Dim)
}

func TestCheck_FailFastStopsAtFirst(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 9}, []int{7})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2),
		shape.MustPattern("B", "D"),
	}

	err := shape.Check(vals, patterns, shape.FailFast())
	require.Error(t, err)

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.Len(t, serr.Mismatches, 1)
	require.Equal(t, 0, serr.Mismatches[0].Arg)
}

func TestCheck_SeededBindings(t *testing.T) {
	t.Parallel()

	seed := shape.Bindings{"B": 8}

	err := shape.CheckOne(
		tensor.NewTensor[float32](4, 3),
		shape.MustPattern("B", "D"),
		shape.WithBindings(seed),
	)
	require.Error(t, err, "seeded B=8 should conflict with actual 4")

	// The caller's seed stays untouched.
	require.Equal(t, shape.Bindings{"B": 8}, seed)

	b, err := shape.Resolve(
		tensors([]int{8, 3}),
		[]shape.Pattern{shape.MustPattern("B", "D")},
		shape.WithBindings(seed),
	)
	require.NoError(t, err)
	require.Equal(t, shape.Bindings{"B": 8, "D": 3}, b)
	require.Equal(t, shape.Bindings{"B": 8}, seed)
}

func TestCheck_BadPatternRejectedBeforeMatching(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3})
	patterns := []shape.Pattern{{shape.Sym("B"), shape.Lit(-5)}}

	b, err := shape.Resolve(vals, patterns)
	require.Nil(t, b)

	var perr *shape.PatternError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 0, perr.Pattern)
	require.Equal(t, 1, perr.Pos)
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 2}, []int{5, 5, 3})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2),
		shape.MustPattern("B", 5, "D"),
	}

	err1 := shape.Check(vals, patterns)
	err2 := shape.Check(vals, patterns)
	require.Error(t, err1)
	require.Error(t, err2)
	require.Equal(t, err1.Error(), err2.Error())
}

func TestCheck_ConcurrentCallsShareNothing(t *testing.T) {
	t.Parallel()

	// Same symbol name, different sizes per goroutine. If any state leaked
	// across calls these would conflict with each other.
	var wg sync.WaitGroup
	for size := 1; size <= 32; size++ {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				err := shape.CheckShapes(
					[]shape.Shape{{size, 3}, {size, 7}},
					[]shape.Pattern{
						shape.MustPattern("B", 3),
						shape.MustPattern("B", 7),
					},
				)
				if err != nil {
					t.Errorf("size %d: unexpected error: %v", size, err)
					return
				}
			}
		}(size)
	}
	wg.Wait()
}

func TestCheck_ErrorMessageNamesEverything(t *testing.T) {
	t.Parallel()

	err := shape.CheckOne(
		tensor.NewTensor[float32](4, 3, 9),
		shape.MustPattern("B", "D", 2),
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "arg 0")
	require.Contains(t, err.Error(), "dim 2")
	require.Contains(t, err.Error(), "(B, D, 2)")
	require.Contains(t, err.Error(), "(4, 3, 9)")
}

func TestCheck_ScalarPattern(t *testing.T) {
	t.Parallel()

	scalar := tensor.NewTensor[float32]()
	require.NoError(t, shape.CheckOne(scalar, shape.Pattern{}))

	var serr *shape.ShapeError
	err := shape.CheckOne(tensor.NewTensor[float32](3), shape.Pattern{})
	require.ErrorAs(t, err, &serr)
	require.Equal(t, shape.MismatchRank, serr.Kind())
}

func TestCheck_KindDiscrimination(t *testing.T) {
	t.Parallel()

	vals := tensors([]int{4, 3, 9}, []int{7})
	patterns := []shape.Pattern{
		shape.MustPattern("B", "D", 2),
		shape.MustPattern("B", "D"),
	}

	err := shape.Check(vals, patterns, shape.CollectAll())

	var serr *shape.ShapeError
	require.ErrorAs(t, err, &serr)
	require.True(t, serr.HasKind(shape.MismatchLiteral))
	require.True(t, serr.HasKind(shape.MismatchRank))
	require.False(t, serr.HasKind(shape.MismatchSymbol))

	// The aggregate is not any of the pre-match error types.
	var lerr *shape.InputLengthError
	require.False(t, errors.As(err, &lerr))
	var perr *shape.PatternError
	require.False(t, errors.As(err, &perr))
}
