package shape

import (
	"github.com/xyproto/env/v2"
)

// Shaped is the adapter boundary: anything that can report its own shape.
// The core never inspects values beyond this one capability.
type Shaped interface {
	Shape() []int
}

// collectDefault flips the process-wide default policy to collect-all.
// Read once at startup.
var collectDefault = env.Bool("SHAPECHECK_COLLECT")

type config struct {
	collect  bool
	bindings Bindings
}

// Option adjusts how a single validation call behaves.
type Option func(*config)

// FailFast stops at the first mismatch, in argument then dimension order.
// This is the default unless SHAPECHECK_COLLECT is set in the environment.
func FailFast() Option {
	return func(c *config) { c.collect = false }
}

// CollectAll keeps matching past failures and aggregates every Mismatch
// into one ShapeError. Dimensions of an argument that failed its rank
// check are still skipped, since they have no counterpart to compare.
func CollectAll() Option {
	return func(c *config) { c.collect = true }
}

// WithBindings seeds the call's binding table, so sizes fixed by an
// earlier call can be enforced in this one. The seed is cloned; the
// caller's map is never mutated.
func WithBindings(b Bindings) Option {
	return func(c *config) { c.bindings = b.Clone() }
}

func newConfig(opts []Option) config {
	c := config{collect: collectDefault, bindings: Bindings{}}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Check validates each value's shape against the corresponding pattern.
// Patterns are matched in order, argument by argument and dimension by
// dimension, with symbols binding on first sight and enforced everywhere
// they recur. Returns nil on success, or one of *InputLengthError,
// *PatternError, or *ShapeError.
func Check[S Shaped](values []S, patterns []Pattern, opts ...Option) error {
	return CheckShapes(shapesOf(values), patterns, opts...)
}

// CheckOne validates a single value against a single pattern.
func CheckOne[S Shaped](v S, pattern Pattern, opts ...Option) error {
	return CheckShapes([]Shape{v.Shape()}, []Pattern{pattern}, opts...)
}

// Resolve is Check but also returns the binding table the call ended up
// with, so resolved sizes can be reused or inspected.
func Resolve[S Shaped](values []S, patterns []Pattern, opts ...Option) (Bindings, error) {
	return resolveShapes(shapesOf(values), patterns, opts)
}

// CheckShapes is the adapter-free core: it validates already-extracted
// shapes against patterns. Check and CheckOne are thin wrappers over it.
func CheckShapes(shapes []Shape, patterns []Pattern, opts ...Option) error {
	_, err := resolveShapes(shapes, patterns, opts)
	return err
}

// ResolveShapes is CheckShapes but also returns the final binding table.
func ResolveShapes(shapes []Shape, patterns []Pattern, opts ...Option) (Bindings, error) {
	return resolveShapes(shapes, patterns, opts)
}

func resolveShapes(shapes []Shape, patterns []Pattern, opts []Option) (Bindings, error) {
	if len(shapes) != len(patterns) {
		return nil, &InputLengthError{Values: len(shapes), Patterns: len(patterns)}
	}
	if err := validatePatterns(patterns); err != nil {
		return nil, err
	}

	c := newConfig(opts)
	var ms []Mismatch
	for i := range shapes {
		ms = matchDims(i, shapes[i], patterns[i], c.bindings, !c.collect, ms)
		if !c.collect && len(ms) > 0 {
			break
		}
	}
	if len(ms) > 0 {
		return nil, &ShapeError{Mismatches: ms}
	}
	return c.bindings, nil
}

// validatePatterns rejects malformed patterns before any matching or
// binding happens. Patterns built through ParsePattern are already clean;
// this catches hand-assembled Dim values.
func validatePatterns(patterns []Pattern) error {
	for pi, p := range patterns {
		for di, d := range p {
			switch d.Kind {
			case DimLiteral:
				if d.Size < 0 {
					return &PatternError{Pattern: pi, Pos: di, Spec: d.Size, Reason: "negative literal"}
				}
			case DimSymbol, DimWildcard:
			default:
				return &PatternError{Pattern: pi, Pos: di, Spec: d, Reason: "unsupported dimension kind"}
			}
		}
	}
	return nil
}

func shapesOf[S Shaped](values []S) []Shape {
	shapes := make([]Shape, len(values))
	for i, v := range values {
		shapes[i] = v.Shape()
	}
	return shapes
}
