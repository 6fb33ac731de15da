// Package env implements FL's runtime environment: the lexical
// variable scope stack, and the four global tables (functions,
// constants, structs, enums) that share the identifier namespace with
// it. This is the runtime counterpart of the teacher's static
// SymbolTable — scope chaining here resolves names at evaluation
// time, not during a separate analysis pass, since FL has no static
// type checking.
package env

import (
	"fmt"

	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

// scope is one frame of the lexical variable stack: a flat mapping
// from name to mutable value slot.
type scope struct {
	vars map[string]value.Value
}

func newScope() *scope { return &scope{vars: make(map[string]value.Value)} }

// FuncInfo describes a declared user function.
type FuncInfo struct {
	Decl *ast.FuncDecl
}

// StructInfo describes a declared struct type: its name and the
// ordered list of field names every instance must initialize.
type StructInfo struct {
	Fields []string
	Pos    token.Position
}

// EnumInfo describes a declared enum type: its name and the resolved
// integer value of each variant.
type EnumInfo struct {
	Variants map[string]int64
	Order    []string
	Pos      token.Position
}

// Env is FL's runtime environment for a single program run: the
// lexical variable scope stack plus the four global declaration
// tables shared across every file loaded by grab.
type Env struct {
	scopes    []*scope
	consts    map[string]value.Value
	funcs     map[string]FuncInfo
	structs   map[string]StructInfo
	enums     map[string]EnumInfo
	enumOfVar map[string]string // "Enum::Variant" path -> owning enum; filled by DeclareEnum, not read by any lookup
}

// New creates an environment with a single (global) scope frame.
func New() *Env {
	return &Env{
		scopes:    []*scope{newScope()},
		consts:    make(map[string]value.Value),
		funcs:     make(map[string]FuncInfo),
		structs:   make(map[string]StructInfo),
		enums:     make(map[string]EnumInfo),
		enumOfVar: make(map[string]string),
	}
}

// PushScope opens a new innermost lexical scope.
func (e *Env) PushScope() { e.scopes = append(e.scopes, newScope()) }

// PopScope closes the innermost lexical scope. Callers must guarantee
// a matching PushScope on every path, including early return via
// Signal — see internal/interp, which pairs every PushScope with a
// deferred PopScope.
func (e *Env) PopScope() {
	if len(e.scopes) == 1 {
		panic("env: pop of global scope")
	}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth reports the current scope stack depth, used by tests to
// assert scope-balance across statement evaluation.
func (e *Env) Depth() int { return len(e.scopes) }

// PushFunctionFrame opens a fresh scope stack rooted only at the
// global scope, for a user function call: functions do not close over
// the caller's locals, only globals and their own parameters.
func (e *Env) PushFunctionFrame() (restore func()) {
	saved := e.scopes
	e.scopes = []*scope{e.scopes[0], newScope()}
	return func() { e.scopes = saved }
}

// IsDefined reports whether name is bound anywhere this environment
// tracks identifiers: a reserved name, a variable in any open scope, a
// constant, a function, a struct type, or an enum type. Every
// declaration site must consult this single predicate before binding.
func (e *Env) IsDefined(name string) bool {
	if token.IsReservedName(name) {
		return true
	}
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i].vars[name]; ok {
			return true
		}
	}
	if _, ok := e.consts[name]; ok {
		return true
	}
	if _, ok := e.funcs[name]; ok {
		return true
	}
	if _, ok := e.structs[name]; ok {
		return true
	}
	if _, ok := e.enums[name]; ok {
		return true
	}
	return false
}

// DeclareVar inserts name into the innermost scope, shadowing any
// outer binding of the same name. It fails if name is reserved or
// already bound as a constant, function, struct, or enum — shadowing
// is permitted only against outer variable scopes, never against the
// other three global tables.
func (e *Env) DeclareVar(name string, v value.Value) error {
	if token.IsReservedName(name) {
		return fmt.Errorf("cannot declare variable %q: reserved name", name)
	}
	if e.boundOutsideVars(name) {
		return fmt.Errorf("cannot declare variable %q: already declared as a constant, function, struct, or enum", name)
	}
	innermost := e.scopes[len(e.scopes)-1]
	innermost.vars[name] = v
	return nil
}

func (e *Env) boundOutsideVars(name string) bool {
	if _, ok := e.consts[name]; ok {
		return true
	}
	if _, ok := e.funcs[name]; ok {
		return true
	}
	if _, ok := e.structs[name]; ok {
		return true
	}
	if _, ok := e.enums[name]; ok {
		return true
	}
	return false
}

// DeclareConst binds name as a global constant. It fails if name is
// already bound anywhere (reserved, a variable in any open scope, or
// any of the other three global tables).
func (e *Env) DeclareConst(name string, v value.Value) error {
	if e.IsDefined(name) {
		return fmt.Errorf("cannot declare constant %q: name already in use", name)
	}
	e.consts[name] = v
	return nil
}

// DeclareFunc registers a user function. It fails if name collides
// with any existing binding, including a native function name (the
// caller is expected to pass a name-collision check against the
// native registry before calling DeclareFunc; see internal/interp).
func (e *Env) DeclareFunc(name string, fi FuncInfo) error {
	if e.IsDefined(name) {
		return fmt.Errorf("cannot declare function %q: name already in use", name)
	}
	e.funcs[name] = fi
	return nil
}

// DeclareStruct registers a struct type.
func (e *Env) DeclareStruct(name string, si StructInfo) error {
	if e.IsDefined(name) {
		return fmt.Errorf("cannot declare struct %q: name already in use", name)
	}
	e.structs[name] = si
	return nil
}

// DeclareEnum registers an enum type.
func (e *Env) DeclareEnum(name string, ei EnumInfo) error {
	if e.IsDefined(name) {
		return fmt.Errorf("cannot declare enum %q: name already in use", name)
	}
	e.enums[name] = ei
	for _, variant := range ei.Order {
		e.enumOfVar[name+"::"+variant] = name
	}
	return nil
}

// Lookup resolves an identifier to its value: the innermost matching
// variable scope, then the constant table. Functions, structs, and
// enums are resolved through their own tables (LookupFunc, LookupStruct,
// LookupEnum), not through Lookup, since they are not first-class
// values in FL.
func (e *Env) Lookup(name string) (value.Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i].vars[name]; ok {
			return v, true
		}
	}
	if v, ok := e.consts[name]; ok {
		return v, true
	}
	return nil, false
}

// Assign overwrites an already-declared variable in place, searching
// from the innermost scope outward. It fails if name is not declared
// as a variable, or is declared as a constant.
func (e *Env) Assign(name string, v value.Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i].vars[name]; ok {
			e.scopes[i].vars[name] = v
			return nil
		}
	}
	if _, ok := e.consts[name]; ok {
		return fmt.Errorf("cannot assign to %q: it is a constant", name)
	}
	return fmt.Errorf("cannot assign to %q: not declared", name)
}

// LookupFunc returns a declared user function by name.
func (e *Env) LookupFunc(name string) (FuncInfo, bool) {
	fi, ok := e.funcs[name]
	return fi, ok
}

// LookupStruct returns a declared struct type by name.
func (e *Env) LookupStruct(name string) (StructInfo, bool) {
	si, ok := e.structs[name]
	return si, ok
}

// LookupEnum returns a declared enum type by name.
func (e *Env) LookupEnum(name string) (EnumInfo, bool) {
	ei, ok := e.enums[name]
	return ei, ok
}

// LookupEnumVariant resolves Enum::Variant to its integer value.
func (e *Env) LookupEnumVariant(enumName, variant string) (int64, bool) {
	ei, ok := e.enums[enumName]
	if !ok {
		return 0, false
	}
	v, ok := ei.Variants[variant]
	return v, ok
}
