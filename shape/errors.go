package shape

import (
	"fmt"
	"strings"
)

// MismatchKind identifies what a Mismatch record is reporting.
type MismatchKind int

const (
	MismatchRank    MismatchKind = 0 // value rank != pattern rank
	MismatchLiteral MismatchKind = 1 // actual size != literal size
	MismatchSymbol  MismatchKind = 2 // actual size != earlier binding of the symbol
)

func (k MismatchKind) String() string {
	switch k {
	case MismatchRank:
		return "rank mismatch"
	case MismatchLiteral:
		return "literal mismatch"
	case MismatchSymbol:
		return "symbol conflict"
	default:
		return fmt.Sprintf("MismatchKind(%d)", int(k))
	}
}

// Mismatch records one failed comparison: which argument, which dimension,
// what the pattern expected and what the value actually had.
type Mismatch struct {
	Arg  int // argument position within the call
	Dim  int // dimension position; -1 for rank mismatches
	Kind MismatchKind

	Symbol string // conflicting symbol name, symbol conflicts only
	Want   int    // expected size (pattern rank for rank mismatches)
	Got    int    // observed size (actual rank for rank mismatches)

	Pattern Pattern
	Shape   Shape
}

func (m Mismatch) String() string {
	switch m.Kind {
	case MismatchRank:
		return fmt.Sprintf("arg %d: shape %s has rank %d, pattern %s expects rank %d",
			m.Arg, m.Shape, m.Got, m.Pattern, m.Want)
	case MismatchSymbol:
		return fmt.Sprintf("arg %d dim %d: shape %s has %s of size %d, %s already bound to %d by pattern %s",
			m.Arg, m.Dim, m.Shape, m.Symbol, m.Got, m.Symbol, m.Want, m.Pattern)
	default:
		return fmt.Sprintf("arg %d dim %d: shape %s has size %d, pattern %s expects %d",
			m.Arg, m.Dim, m.Shape, m.Got, m.Pattern, m.Want)
	}
}

// ShapeError reports one or more shape mismatches from a single call,
// ordered by argument position then dimension position.
type ShapeError struct {
	Mismatches []Mismatch
}

func (e *ShapeError) Error() string {
	if len(e.Mismatches) == 1 {
		return "shape mismatch: " + e.Mismatches[0].String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d shape mismatches:", len(e.Mismatches))
	for _, m := range e.Mismatches {
		b.WriteString("\n\t")
		b.WriteString(m.String())
	}
	return b.String()
}

// Kind returns the kind of the first mismatch. Useful under fail-fast,
// where there is exactly one.
func (e *ShapeError) Kind() MismatchKind {
	return e.Mismatches[0].Kind
}

// HasKind reports whether any recorded mismatch is of kind k.
func (e *ShapeError) HasKind(k MismatchKind) bool {
	for _, m := range e.Mismatches {
		if m.Kind == k {
			return true
		}
	}
	return false
}

// PatternError reports an invalid dimension specifier: an unsupported
// specifier type or a negative literal. Detected before any matching runs.
type PatternError struct {
	Pattern int // pattern position within the call; -1 when parsed standalone
	Pos     int // dimension position within the pattern
	Spec    any // the offending specifier
	Reason  string
}

func (e *PatternError) Error() string {
	if e.Pattern >= 0 {
		return fmt.Sprintf("invalid pattern %d dim %d: %s (%v)", e.Pattern, e.Pos, e.Reason, e.Spec)
	}
	return fmt.Sprintf("invalid pattern dim %d: %s (%v)", e.Pos, e.Reason, e.Spec)
}

// InputLengthError reports a call with a different number of values and
// patterns. Detected before any parsing or matching, so no binding occurs.
type InputLengthError struct {
	Values   int
	Patterns int
}

func (e *InputLengthError) Error() string {
	return fmt.Sprintf("got %d values and %d shape patterns", e.Values, e.Patterns)
}
