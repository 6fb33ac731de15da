package env

import (
	"testing"

	"github.com/flscript/fl/internal/value"
)

func TestDeclareAndLookupVar(t *testing.T) {
	e := New()
	if err := e.DeclareVar("x", value.Int(1)); err != nil {
		t.Fatalf("DeclareVar: %v", err)
	}
	v, ok := e.Lookup("x")
	if !ok || v != value.Value(value.Int(1)) {
		t.Errorf("Lookup(x) = %v, %v, want Int(1), true", v, ok)
	}
}

func TestShadowingInInnerScope(t *testing.T) {
	e := New()
	e.DeclareVar("x", value.Int(1))
	e.PushScope()
	e.DeclareVar("x", value.Int(2))
	v, _ := e.Lookup("x")
	if v != value.Value(value.Int(2)) {
		t.Errorf("inner x = %v, want Int(2)", v)
	}
	e.PopScope()
	v, _ = e.Lookup("x")
	if v != value.Value(value.Int(1)) {
		t.Errorf("outer x after pop = %v, want Int(1)", v)
	}
}

func TestScopeBalance(t *testing.T) {
	e := New()
	start := e.Depth()
	e.PushScope()
	e.PushScope()
	e.PopScope()
	e.PopScope()
	if e.Depth() != start {
		t.Errorf("Depth() = %d, want %d", e.Depth(), start)
	}
}

func TestDeclareVarReservedName(t *testing.T) {
	e := New()
	for _, name := range []string{"true", "false", "NULL"} {
		if err := e.DeclareVar(name, value.Int(0)); err == nil {
			t.Errorf("DeclareVar(%q) expected error, got nil", name)
		}
	}
}

func TestDeclareConstThenAssignFails(t *testing.T) {
	e := New()
	if err := e.DeclareConst("MAX", value.Int(100)); err != nil {
		t.Fatalf("DeclareConst: %v", err)
	}
	if err := e.Assign("MAX", value.Int(1)); err == nil {
		t.Error("Assign to constant expected error, got nil")
	}
}

func TestDeclareVarCollidesWithConst(t *testing.T) {
	e := New()
	e.DeclareConst("MAX", value.Int(100))
	if err := e.DeclareVar("MAX", value.Int(1)); err == nil {
		t.Error("DeclareVar colliding with constant expected error, got nil")
	}
}

func TestDeclareFuncCollidesWithStruct(t *testing.T) {
	e := New()
	if err := e.DeclareStruct("Point", StructInfo{Fields: []string{"x", "y"}}); err != nil {
		t.Fatalf("DeclareStruct: %v", err)
	}
	if err := e.DeclareFunc("Point", FuncInfo{}); err == nil {
		t.Error("DeclareFunc colliding with struct name expected error, got nil")
	}
}

func TestAssignUndeclaredFails(t *testing.T) {
	e := New()
	if err := e.Assign("nope", value.Int(1)); err == nil {
		t.Error("Assign to undeclared variable expected error, got nil")
	}
}

func TestFunctionFrameHidesLocals(t *testing.T) {
	e := New()
	e.PushScope() // caller's local scope, above the global one
	e.DeclareVar("outer", value.Int(1))
	restore := e.PushFunctionFrame()
	if _, ok := e.Lookup("outer"); ok {
		t.Error("function frame should not see caller locals")
	}
	e.DeclareVar("param", value.Int(2))
	restore()
	if _, ok := e.Lookup("param"); ok {
		t.Error("restore should discard the function frame entirely")
	}
	if v, ok := e.Lookup("outer"); !ok || v != value.Value(value.Int(1)) {
		t.Error("restore should bring back the caller's scope stack intact")
	}
}

func TestEnumVariantLookup(t *testing.T) {
	e := New()
	ei := EnumInfo{
		Variants: map[string]int64{"Red": 0, "Blue": 1},
		Order:    []string{"Red", "Blue"},
	}
	if err := e.DeclareEnum("Color", ei); err != nil {
		t.Fatalf("DeclareEnum: %v", err)
	}
	v, ok := e.LookupEnumVariant("Color", "Blue")
	if !ok || v != 1 {
		t.Errorf("LookupEnumVariant(Color, Blue) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := e.LookupEnumVariant("Color", "Green"); ok {
		t.Error("LookupEnumVariant(Color, Green) expected ok=false")
	}
}

func TestIsDefinedSpansAllTables(t *testing.T) {
	e := New()
	e.DeclareVar("v", value.Int(0))
	e.DeclareConst("C", value.Int(0))
	e.DeclareStruct("S", StructInfo{})
	e.DeclareEnum("E", EnumInfo{Variants: map[string]int64{}})
	e.DeclareFunc("f", FuncInfo{})
	for _, name := range []string{"v", "C", "S", "E", "f", "true", "false", "NULL"} {
		if !e.IsDefined(name) {
			t.Errorf("IsDefined(%q) = false, want true", name)
		}
	}
	if e.IsDefined("nope") {
		t.Error("IsDefined(nope) = true, want false")
	}
}
