// Package value defines FL's runtime value model: the tagged set of
// types an FL expression can evaluate to, and the coercion, display,
// and comparison rules spec'd for them.
//
// Each variant is a concrete type implementing the Value interface,
// the idiomatic Go analogue of a tagged union — the same shape the
// parser's AST uses for Expr/Stmt nodes. Array and Struct hold a
// pointer to a shared backing store so assignment and argument passing
// exhibit reference semantics: mutating one alias is visible through
// every other alias of the same value.
package value

import "fmt"

// Value is implemented by every runtime value variant.
type Value interface {
	// TypeName is the name used in error messages and by to_string for
	// values that have no literal display form.
	TypeName() string
	// Display renders the value the way hurle/to_string show it.
	Display() string
}

// Int is a 64-bit signed integer.
type Int int64

func (Int) TypeName() string    { return "int" }
func (v Int) Display() string   { return fmt.Sprintf("%d", int64(v)) }

// Float is a 64-bit IEEE-754 float.
type Float float64

func (Float) TypeName() string  { return "float" }
func (v Float) Display() string { return formatFloat(float64(v)) }

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	return s
}

// Bool is a boolean, distinct from Int but coercible to 0/1 in
// arithmetic and bit operations.
type Bool bool

func (Bool) TypeName() string { return "bool" }
func (v Bool) Display() string {
	if v {
		return "true"
	}
	return "false"
}

// Char is a single Unicode scalar value.
type Char rune

func (Char) TypeName() string  { return "char" }
func (v Char) Display() string { return string(rune(v)) }

// String is immutable UTF-8 text.
type String string

func (String) TypeName() string  { return "string" }
func (v String) Display() string { return string(v) }

// Null is the absence of a value.
type Null struct{}

func (Null) TypeName() string { return "null" }
func (Null) Display() string  { return "null" }

// arrayData is the shared, mutable backing store for Array values.
type arrayData struct {
	elems []Value
}

// Array is a shared, mutable, ordered sequence of values. Copying an
// Array value (assignment, parameter passing) copies the handle, not
// the backing store, so mutation through one alias is visible through
// every other.
type Array struct {
	data *arrayData
}

// NewArray builds an Array owning its own copy of elems.
func NewArray(elems []Value) Array {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Array{data: &arrayData{elems: cp}}
}

func (Array) TypeName() string { return "array" }
func (a Array) Display() string {
	s := "["
	for i, e := range a.data.elems {
		if i > 0 {
			s += ", "
		}
		s += e.Display()
	}
	return s + "]"
}

// Len returns the number of elements.
func (a Array) Len() int { return len(a.data.elems) }

// Get returns the element at i. The caller must bounds-check first.
func (a Array) Get(i int) Value { return a.data.elems[i] }

// Set overwrites the element at i. The caller must bounds-check first.
func (a Array) Set(i int, v Value) { a.data.elems[i] = v }

// Push appends v to the end of the array, mutating the shared store.
func (a Array) Push(v Value) { a.data.elems = append(a.data.elems, v) }

// Pop removes and returns the last element. ok is false if the array
// is empty.
func (a Array) Pop() (Value, bool) {
	n := len(a.data.elems)
	if n == 0 {
		return nil, false
	}
	v := a.data.elems[n-1]
	a.data.elems = a.data.elems[:n-1]
	return v, true
}

// Elems returns the live backing slice; callers must not retain it
// past a subsequent mutation.
func (a Array) Elems() []Value { return a.data.elems }

// Same reports whether a and b share the same backing store.
func (a Array) Same(b Array) bool { return a.data == b.data }

// structData is the shared, mutable backing store for Struct values.
type structData struct {
	typeName string
	order    []string
	fields   map[string]Value
}

// Struct is a shared, mutable instance of a declared struct type.
// Like Array, it carries reference semantics: passing a Struct to a
// function lets the callee mutate fields the caller observes.
type Struct struct {
	data *structData
}

// NewStruct builds a Struct instance. order gives the declared field
// order (used by Display); fields must already contain every declared
// field.
func NewStruct(typeName string, order []string, fields map[string]Value) Struct {
	return Struct{data: &structData{typeName: typeName, order: order, fields: fields}}
}

func (s Struct) TypeName() string { return s.data.typeName }

func (s Struct) Display() string {
	out := s.data.typeName + " { "
	for i, name := range s.data.order {
		if i > 0 {
			out += ", "
		}
		out += name + ": " + s.data.fields[name].Display()
	}
	return out + " }"
}

// Field returns the named field's value and whether it exists.
func (s Struct) Field(name string) (Value, bool) {
	v, ok := s.data.fields[name]
	return v, ok
}

// SetField overwrites the named field, mutating the shared instance.
func (s Struct) SetField(name string, v Value) { s.data.fields[name] = v }

// Same reports whether s and other share the same backing store.
func (s Struct) Same(other Struct) bool { return s.data == other.data }

// Enum is a resolved enum variant: its enum type name, variant name,
// and the integer assigned to that variant at declaration time.
// Equality compares (EnumName, Variant), not IntVal — two variants of
// the same enum may share an explicit integer value.
type Enum struct {
	EnumName string
	Variant  string
	IntVal   int64
}

func (Enum) TypeName() string { return "enum" }
func (e Enum) Display() string { return e.EnumName + "::" + e.Variant }
