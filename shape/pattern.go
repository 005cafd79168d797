package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// DimKind discriminates the three kinds of pattern dimension.
type DimKind int

const (
	DimLiteral  DimKind = 0 // fixed size, compared exactly
	DimSymbol   DimKind = 1 // named size, bound on first sight
	DimWildcard DimKind = 2 // matches any size, binds nothing
)

func (k DimKind) String() string {
	switch k {
	case DimLiteral:
		return "literal"
	case DimSymbol:
		return "symbol"
	case DimWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("DimKind(%d)", int(k))
	}
}

// Dim is one dimension of a pattern: a literal size, a named symbol, or the
// wildcard.
type Dim struct {
	Kind DimKind
	Size int    // literal size, only when Kind == DimLiteral
	Name string // symbol name, only when Kind == DimSymbol
}

// Any is the wildcard dimension: it matches any size and creates no binding.
var Any = Dim{Kind: DimWildcard}

// Lit returns a literal dimension of size n.
func Lit(n int) Dim { return Dim{Kind: DimLiteral, Size: n} }

// Sym returns a symbolic dimension named name. Symbol identity is exact
// string equality: every occurrence of the same name within one call
// denotes the same variable.
func Sym(name string) Dim { return Dim{Kind: DimSymbol, Name: name} }

func (d Dim) String() string {
	switch d.Kind {
	case DimLiteral:
		return strconv.Itoa(d.Size)
	case DimSymbol:
		return d.Name
	default:
		return "*"
	}
}

// Pattern is the expected shape of one value: an ordered sequence of
// dimensions. Patterns are immutable once parsed.
type Pattern []Dim

// Rank returns the number of dimensions the pattern expects.
func (p Pattern) Rank() int { return len(p) }

func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = d.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ParsePattern builds a Pattern from mixed dimension specifiers. Each
// specifier is one of:
//   - an integer: a literal size; -1 is the wildcard
//   - a string: a symbol name; "*" and "-1" are the wildcard, and a string
//     of digits is treated as the literal it spells
//   - a Dim value, passed through as-is
//
// Any other specifier type, a negative literal other than -1, or an empty
// string fails with a *PatternError.
func ParsePattern(spec ...any) (Pattern, error) {
	p := make(Pattern, 0, len(spec))
	for i, s := range spec {
		d, perr := parseDim(s)
		if perr != nil {
			perr.Pattern = -1
			perr.Pos = i
			return nil, perr
		}
		p = append(p, d)
	}
	return p, nil
}

// MustPattern is ParsePattern but panics on error, for package-level
// pattern declarations.
func MustPattern(spec ...any) Pattern {
	p, err := ParsePattern(spec...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePatternString parses a comma-separated pattern (for example:
// "B, D, 2, *"). An empty string yields the scalar (rank 0) pattern.
func ParsePatternString(raw string) (Pattern, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Pattern{}, nil
	}
	parts := strings.Split(raw, ",")
	spec := make([]any, len(parts))
	for i, part := range parts {
		spec[i] = strings.TrimSpace(part)
	}
	return ParsePattern(spec...)
}

func parseDim(spec any) (Dim, *PatternError) {
	switch v := spec.(type) {
	case Dim:
		if v.Kind == DimLiteral && v.Size < 0 {
			return Dim{}, &PatternError{Spec: v.Size, Reason: "negative literal"}
		}
		if v.Kind != DimLiteral && v.Kind != DimSymbol && v.Kind != DimWildcard {
			return Dim{}, &PatternError{Spec: spec, Reason: "unsupported dimension kind"}
		}
		return v, nil
	case int:
		return literalDim(v)
	case int8:
		return literalDim(int(v))
	case int16:
		return literalDim(int(v))
	case int32:
		return literalDim(int(v))
	case int64:
		return literalDim(int(v))
	case uint:
		return Lit(int(v)), nil
	case uint8:
		return Lit(int(v)), nil
	case uint16:
		return Lit(int(v)), nil
	case uint32:
		return Lit(int(v)), nil
	case uint64:
		return Lit(int(v)), nil
	case string:
		if v == "" {
			return Dim{}, &PatternError{Spec: v, Reason: "empty dimension"}
		}
		if v == "*" {
			return Any, nil
		}
		if n, err := strconv.Atoi(v); err == nil {
			return literalDim(n)
		}
		return Sym(v), nil
	default:
		return Dim{}, &PatternError{
			Spec:   spec,
			Reason: fmt.Sprintf("unsupported specifier type %T", spec),
		}
	}
}

func literalDim(n int) (Dim, *PatternError) {
	if n == -1 {
		return Any, nil
	}
	if n < 0 {
		return Dim{}, &PatternError{Spec: n, Reason: "negative literal"}
	}
	return Lit(n), nil
}
