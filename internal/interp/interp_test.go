package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/flscript/fl/internal/natives"
	"github.com/flscript/fl/internal/parser"
)

// run parses and evaluates source, returning hurle's captured stdout.
func run(t *testing.T, source string) string {
	t.Helper()

	prog, err := parser.Parse("test.fg", source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var output bytes.Buffer
	reg := natives.New(&output, strings.NewReader(""))
	it := New(reg)

	if err := it.RunProgram(prog); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return output.String()
}

// runErr is like run but expects parsing or evaluation to fail,
// returning whichever error occurred.
func runErr(t *testing.T, source string) error {
	t.Helper()

	prog, err := parser.Parse("test.fg", source)
	if err != nil {
		return err
	}

	var output bytes.Buffer
	reg := natives.New(&output, strings.NewReader(""))
	it := New(reg)

	return it.RunProgram(prog)
}

func TestArithmeticPromotion(t *testing.T) {
	got := run(t, `ty x = 5 + 2.5; hurle(x);`)
	if got != "7.5\n" {
		t.Errorf("got %q, want %q", got, "7.5\n")
	}
}

func TestStringConcatWithInt(t *testing.T) {
	got := run(t, `ty s = "foo" + 42; hurle(s);`)
	if got != "foo42\n" {
		t.Errorf("got %q, want %q", got, "foo42\n")
	}
}

func TestRecursion(t *testing.T) {
	got := run(t, `function f(n){ if(n<=1){omeo 1;} omeo n*f(n-1);} hurle(f(5));`)
	if got != "120\n" {
		t.Errorf("got %q, want %q", got, "120\n")
	}
}

func TestArrayMutationAcrossCall(t *testing.T) {
	src := `
function bump(a){ push(a, 99); }
ty arr = [1,2,3];
bump(arr);
hurle(len(arr), arr[3]);
`
	got := run(t, src)
	if got != "4 99\n" {
		t.Errorf("got %q, want %q", got, "4 99\n")
	}
}

func TestShadowing(t *testing.T) {
	src := `
ty x = 1;
if (true) { ty x = 2; hurle(x); }
hurle(x);
`
	got := run(t, src)
	if got != "2\n1\n" {
		t.Errorf("got %q, want %q", got, "2\n1\n")
	}
}

func TestForLoopBreakAndContinue(t *testing.T) {
	src := `for (ty i=0;i<5;i++;){ if(i==2){andana;} if(i==4){miala;} hurle(i); }`
	got := run(t, src)
	if got != "0\n1\n3\n" {
		t.Errorf("got %q, want %q", got, "0\n1\n3\n")
	}
}

func TestEnumEquality(t *testing.T) {
	src := `
enum S { A, B = 5, C }
hurle(S::C == S::C, S::A == S::B);
`
	got := run(t, src)
	if got != "true false\n" {
		t.Errorf("got %q, want %q", got, "true false\n")
	}
}

func TestEnumVariantEqualsItself(t *testing.T) {
	src := `enum S { A, B = 5, C } hurle(S::A == S::A);`
	got := run(t, src)
	if got != "true\n" {
		t.Errorf("got %q, want %q", got, "true\n")
	}
}

func TestStructFieldMutationAcrossCall(t *testing.T) {
	src := `
struct Point { x, y }
function moveRight(p) { p.x = p.x + 1; }
ty pt = new Point { x: 1, y: 2 };
moveRight(pt);
hurle(pt.x);
`
	got := run(t, src)
	if got != "2\n" {
		t.Errorf("got %q, want %q", got, "2\n")
	}
}

func TestDivisionByZeroIsDomainError(t *testing.T) {
	err := runErr(t, `ty x = 1 / 0;`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if rtErr.Kind != "DomainError" {
		t.Errorf("Kind = %s, want DomainError", rtErr.Kind)
	}
}

func TestPopEmptyArrayIsBoundsError(t *testing.T) {
	err := runErr(t, `ty a = []; pop(a);`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if rtErr.Kind != "BoundsError" {
		t.Errorf("Kind = %s, want BoundsError", rtErr.Kind)
	}
}

func TestArrayIndexOutOfRangeIsBoundsError(t *testing.T) {
	err := runErr(t, `ty a = [1,2,3]; hurle(a[len(a)]);`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if rtErr.Kind != "BoundsError" {
		t.Errorf("Kind = %s, want BoundsError", rtErr.Kind)
	}
}

func TestStringIndexOutOfRangeIsBoundsError(t *testing.T) {
	err := runErr(t, `hurle("abc"[3]);`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if rtErr.Kind != "BoundsError" {
		t.Errorf("Kind = %s, want BoundsError", rtErr.Kind)
	}
}

func TestDeclaringConstTrueIsNameError(t *testing.T) {
	err := runErr(t, `const true = 1;`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T (%v), want *interp.Error", err, err)
	}
	if rtErr.Kind != "NameError" {
		t.Errorf("Kind = %s, want NameError", rtErr.Kind)
	}
}

func TestBreakOnlyAffectsInnermostLoop(t *testing.T) {
	src := `
for (ty i=0;i<2;i++;) {
  for (ty j=0;j<3;j++;) {
    if (j==1) { miala; }
    hurle(i, j);
  }
}
`
	got := run(t, src)
	want := "0 0\n1 0\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFunctionDoesNotCloseOverCallerLocals(t *testing.T) {
	src := `
function inner() { omeo x; }
function outer() { ty x = 10; omeo inner(); }
hurle(outer());
`
	err := runErr(t, src)
	if err == nil {
		t.Fatal("expected undeclared-identifier error: inner sees only globals and its own parameters, not outer's local x")
	}
}

func TestBitwiseRejectsFloat(t *testing.T) {
	err := runErr(t, `ty x = 1.5 & 2;`)
	rtErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if rtErr.Kind != "TypeError" {
		t.Errorf("Kind = %s, want TypeError", rtErr.Kind)
	}
}

func TestScopeBalanceAfterBlockError(t *testing.T) {
	reg := natives.New(&bytes.Buffer{}, strings.NewReader(""))
	it := New(reg)
	prog, err := parser.Parse("test.fg", `{ ty x = 1 / 0; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	depthBefore := it.Env.Depth()
	if err := it.RunProgram(prog); err == nil {
		t.Fatal("expected division-by-zero error")
	}
	if it.Env.Depth() != depthBefore {
		t.Errorf("scope depth = %d after error, want %d (pre-block depth)", it.Env.Depth(), depthBefore)
	}
}
