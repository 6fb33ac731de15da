package value

import "fmt"

// Truthy reports whether v counts as true in an if/while condition or
// as the left operand of && / ||. Bool follows its own value; Int and
// Float are truthy when nonzero; String and Char are truthy when
// nonempty/nonzero; Array and Struct are always truthy (their
// emptiness is not meaningful the way a zero number is); Null is
// always falsy.
func Truthy(v Value) bool {
	switch n := v.(type) {
	case Bool:
		return bool(n)
	case Int:
		return n != 0
	case Float:
		return n != 0
	case Char:
		return n != 0
	case String:
		return n != ""
	case Null:
		return false
	default:
		return true
	}
}

// Equal implements == / != across every pair of value kinds. Same-kind
// comparisons use value equality (Array/Struct compare by identity of
// their shared backing store, matching reference semantics); Enum
// compares by (EnumName, Variant); every cross-kind pairing is simply
// unequal rather than an error, per the language's relaxed equality
// rule (only ordering comparisons are type-strict).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return float64(av) == float64(bv)
		case Bool:
			return (av != 0) == bool(bv)
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Int:
			return float64(av) == float64(bv)
		case Float:
			return av == bv
		case Bool:
			return (av != 0) == bool(bv)
		}
		return false
	case Bool:
		switch bv := b.(type) {
		case Bool:
			return av == bv
		case Int:
			return bool(av) == (bv != 0)
		case Float:
			return bool(av) == (bv != 0)
		}
		return false
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case Array:
		bv, ok := b.(Array)
		return ok && av.Same(bv)
	case Struct:
		bv, ok := b.(Struct)
		return ok && av.Same(bv)
	case Enum:
		bv, ok := b.(Enum)
		return ok && av.EnumName == bv.EnumName && av.Variant == bv.Variant
	default:
		return false
	}
}

// Compare orders a and b for <, <=, >, >=. Numeric kinds (Int, Float,
// Bool) compare pairwise after widening to float64; String compares
// lexicographically; Char compares by scalar value. Any other pairing
// — including two values of the same non-orderable kind, or any
// cross-kind pairing outside the numeric family — is a TypeError:
// ordering is deliberately stricter than equality.
func Compare(a, b Value) (int, error) {
	if af, _, aok := asNumber(a); aok {
		if bf, _, bok := asNumber(b); bok {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if as, ok := a.(String); ok {
		if bs, ok := b.(String); ok {
			switch {
			case as < bs:
				return -1, nil
			case as > bs:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if ac, ok := a.(Char); ok {
		if bc, ok := b.(Char); ok {
			switch {
			case ac < bc:
				return -1, nil
			case ac > bc:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	return 0, &OpError{
		Kind:    "TypeError",
		Message: fmt.Sprintf("values of type %s and %s are not orderable", a.TypeName(), b.TypeName()),
	}
}
