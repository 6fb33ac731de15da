package value

import (
	"fmt"

	"github.com/flscript/fl/internal/token"
)

// OpError reports that an operator was applied to operand types or
// values it does not support: a type mismatch, or a runtime domain
// violation such as division by zero.
type OpError struct {
	Op      token.Token
	Kind    string // "TypeError" or "DomainError"
	Message string
}

func (e *OpError) Error() string { return e.Message }

func typeErr(op token.Token, a, b Value) *OpError {
	return &OpError{
		Op:   op,
		Kind: "TypeError",
		Message: fmt.Sprintf("unsupported operand types for %s: %s and %s",
			op, a.TypeName(), b.TypeName()),
	}
}

func domainErr(op token.Token, msg string) *OpError {
	return &OpError{Op: op, Kind: "DomainError", Message: msg}
}

// asNumber widens an Int, Float, or Bool to a float64 for mixed-mode
// arithmetic, reporting whether the original operand was Float (so
// the caller can decide whether the result stays an Int).
func asNumber(v Value) (f float64, isFloat bool, ok bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), false, true
	case Float:
		return float64(n), true, true
	case Bool:
		if n {
			return 1, false, true
		}
		return 0, false, true
	default:
		return 0, false, false
	}
}

func asInt(v Value) (int64, bool) {
	switch n := v.(type) {
	case Int:
		return int64(n), true
	case Bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// Apply evaluates a binary operator over two already-evaluated
// operands per the coercion rules: Int/Float/Bool participate in
// arithmetic together (Bool as 0/1), String only concatenates via +
// with either operand being a String, bitwise and shift operators
// require both operands to be Int-typed (Float or String is a
// TypeError), and integer division/modulo by zero is a DomainError
// rather than a panic.
func Apply(op token.Token, left, right Value) (Value, error) {
	switch op {
	case token.PLUS:
		if ls, ok := left.(String); ok {
			return String(string(ls) + right.Display()), nil
		}
		if rs, ok := right.(String); ok {
			return String(left.Display() + string(rs)), nil
		}
		return arith(op, left, right)
	case token.MINUS, token.STAR, token.SLASH, token.PCT:
		return arith(op, left, right)
	case token.AMP, token.PIPE, token.CARET, token.LSHIFT, token.RSHIFT:
		li, lok := asInt(left)
		ri, rok := asInt(right)
		if !lok || !rok {
			return nil, typeErr(op, left, right)
		}
		return bitwise(op, li, ri)
	case token.LT, token.LTE, token.GT, token.GTE:
		c, err := Compare(left, right)
		if err != nil {
			return nil, err
		}
		return Bool(orderHolds(op, c)), nil
	case token.EQ:
		return Bool(Equal(left, right)), nil
	case token.NEQ:
		return Bool(!Equal(left, right)), nil
	default:
		return nil, &OpError{Op: op, Kind: "TypeError", Message: "unsupported operator " + op.String()}
	}
}

func orderHolds(op token.Token, c int) bool {
	switch op {
	case token.LT:
		return c < 0
	case token.LTE:
		return c <= 0
	case token.GT:
		return c > 0
	case token.GTE:
		return c >= 0
	}
	return false
}

func arith(op token.Token, left, right Value) (Value, error) {
	_, lFloat := left.(Float)
	_, rFloat := right.(Float)
	lf, _, lok := asNumber(left)
	rf, _, rok := asNumber(right)
	if !lok || !rok {
		return nil, typeErr(op, left, right)
	}
	if op == token.PCT {
		if lFloat || rFloat {
			return nil, typeErr(op, left, right)
		}
	} else if lFloat || rFloat {
		switch op {
		case token.PLUS:
			return Float(lf + rf), nil
		case token.MINUS:
			return Float(lf - rf), nil
		case token.STAR:
			return Float(lf * rf), nil
		case token.SLASH:
			if rf == 0 {
				return nil, domainErr(op, "division by zero")
			}
			return Float(lf / rf), nil
		}
	}
	li, _ := asInt(left)
	ri, _ := asInt(right)
	switch op {
	case token.PLUS:
		return Int(li + ri), nil
	case token.MINUS:
		return Int(li - ri), nil
	case token.STAR:
		return Int(li * ri), nil
	case token.SLASH:
		if ri == 0 {
			return nil, domainErr(op, "division by zero")
		}
		return Int(li / ri), nil
	case token.PCT:
		if ri == 0 {
			return nil, domainErr(op, "modulo by zero")
		}
		return Int(li % ri), nil
	}
	return nil, typeErr(op, left, right)
}

func bitwise(op token.Token, l, r int64) (Value, error) {
	switch op {
	case token.AMP:
		return Int(l & r), nil
	case token.PIPE:
		return Int(l | r), nil
	case token.CARET:
		return Int(l ^ r), nil
	case token.LSHIFT:
		return Int(l << uint64(r)), nil
	case token.RSHIFT:
		return Int(l >> uint64(r)), nil
	}
	return nil, &OpError{Op: op, Kind: "TypeError", Message: "unsupported bitwise operator " + op.String()}
}

// Negate evaluates unary minus.
func Negate(v Value) (Value, error) {
	switch n := v.(type) {
	case Int:
		return Int(-n), nil
	case Float:
		return Float(-n), nil
	default:
		return nil, &OpError{Kind: "TypeError", Message: "unsupported operand type for unary -: " + v.TypeName()}
	}
}

// BitNot evaluates unary ~, Int-only.
func BitNot(v Value) (Value, error) {
	i, ok := asInt(v)
	if !ok {
		return nil, &OpError{Kind: "TypeError", Message: "unsupported operand type for unary ~: " + v.TypeName()}
	}
	return Int(^i), nil
}

// Not evaluates unary !, defined over every value via Truthy.
func Not(v Value) Value { return Bool(!Truthy(v)) }
