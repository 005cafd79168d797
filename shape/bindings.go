package shape

// Bindings maps symbol names to the concrete sizes they were bound to.
// A table is scoped to a single validation call: it is created (or cloned
// from a seed) when the call starts and discarded when it returns. Once a
// symbol is bound it is never rebound within the call; a later occurrence
// with a different size is the conflict this package exists to detect.
type Bindings map[string]int

// Clone returns a copy of the bindings.
func (b Bindings) Clone() Bindings {
	clone := make(Bindings, len(b))
	for k, v := range b {
		clone[k] = v
	}
	return clone
}

// Lookup returns the size bound to name, if any.
func (b Bindings) Lookup(name string) (int, bool) {
	v, ok := b[name]
	return v, ok
}

// matchDims validates one value's shape against its pattern, binding
// symbols into b as it goes, and appends a Mismatch for every failure.
// The rank is checked first; on a rank mismatch the value's dimensions are
// not inspected at all. With failFast set, matching stops at the first
// mismatch; otherwise every dimension is still visited so that collect-all
// reports are complete.
func matchDims(arg int, s Shape, p Pattern, b Bindings, failFast bool, out []Mismatch) []Mismatch {
	if len(s) != len(p) {
		return append(out, Mismatch{
			Arg:     arg,
			Dim:     -1,
			Kind:    MismatchRank,
			Want:    len(p),
			Got:     len(s),
			Pattern: p,
			Shape:   s.Clone(),
		})
	}
	for i, d := range p {
		got := s[i]
		switch d.Kind {
		case DimWildcard:
			// always passes, never binds

		case DimLiteral:
			if got != d.Size {
				out = append(out, Mismatch{
					Arg:     arg,
					Dim:     i,
					Kind:    MismatchLiteral,
					Want:    d.Size,
					Got:     got,
					Pattern: p,
					Shape:   s.Clone(),
				})
				if failFast {
					return out
				}
			}

		case DimSymbol:
			bound, ok := b[d.Name]
			if !ok {
				// first sight wins
				b[d.Name] = got
			} else if bound != got {
				out = append(out, Mismatch{
					Arg:     arg,
					Dim:     i,
					Kind:    MismatchSymbol,
					Symbol:  d.Name,
					Want:    bound,
					Got:     got,
					Pattern: p,
					Shape:   s.Clone(),
				})
				if failFast {
					return out
				}
			}
		}
	}
	return out
}
