package natives

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

func call(t *testing.T, r *Registry, name string, args ...value.Value) value.Value {
	t.Helper()
	if err := r.CheckArity(name, len(args)); err != nil {
		t.Fatalf("CheckArity(%s): %v", name, err)
	}
	v, err := r.Call(name, args, token.Position{})
	if err != nil {
		t.Fatalf("Call(%s): %v", name, err)
	}
	return v
}

func TestHurlePrintsSpaceSeparatedWithNewline(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, strings.NewReader(""))
	call(t, r, "hurle", value.Int(1), value.String("a"), value.Bool(true))
	if got, want := buf.String(), "1 a true\n"; got != want {
		t.Errorf("hurle output = %q, want %q", got, want)
	}
}

func TestInputReadsOneLineWithoutNewline(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader("hello\nworld\n"))
	if got := call(t, r, "input"); got != value.Value(value.String("hello")) {
		t.Errorf("input() = %v, want String(hello)", got)
	}
	if got := call(t, r, "input"); got != value.Value(value.String("world")) {
		t.Errorf("input() second call = %v, want String(world)", got)
	}
}

func TestLenStringIsUnicodeScalarCount(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if got := call(t, r, "len", value.String("héllo")); got != value.Value(value.Int(5)) {
		t.Errorf("len(héllo) = %v, want Int(5)", got)
	}
}

func TestLenArray(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	arr := value.NewArray([]value.Value{value.Int(1), value.Int(2)})
	if got := call(t, r, "len", arr); got != value.Value(value.Int(2)) {
		t.Errorf("len(array) = %v, want Int(2)", got)
	}
}

func TestLenRejectsOtherTypes(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if err := r.CheckArity("len", 1); err != nil {
		t.Fatalf("CheckArity: %v", err)
	}
	if _, err := r.Call("len", []value.Value{value.Int(1)}, token.Position{}); err == nil {
		t.Error("len(int) expected TypeError, got nil")
	}
}

func TestSubstringBounds(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if got := call(t, r, "substring", value.String("hello"), value.Int(1), value.Int(4)); got != value.Value(value.String("ell")) {
		t.Errorf("substring = %v, want String(ell)", got)
	}
	if _, err := r.Call("substring", []value.Value{value.String("hi"), value.Int(0), value.Int(5)}, token.Position{}); err == nil {
		t.Error("substring out of range expected BoundsError, got nil")
	}
}

func TestPushPopMutatesSharedArray(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	arr := value.NewArray(nil)
	call(t, r, "push", arr, value.Int(1))
	call(t, r, "push", arr, value.Int(2))
	if arr.Len() != 2 {
		t.Fatalf("array len after pushes = %d, want 2", arr.Len())
	}
	got := call(t, r, "pop", arr)
	if got != value.Value(value.Int(2)) {
		t.Errorf("pop() = %v, want Int(2)", got)
	}
	if arr.Len() != 1 {
		t.Errorf("array len after pop = %d, want 1", arr.Len())
	}
}

func TestPopEmptyArrayIsBoundsError(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if _, err := r.Call("pop", []value.Value{value.NewArray(nil)}, token.Position{}); err == nil {
		t.Error("pop([]) expected BoundsError, got nil")
	}
}

func TestContains(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	arr := value.NewArray([]value.Value{value.Int(1), value.String("x")})
	if got := call(t, r, "contains", arr, value.String("x")); got != value.Value(value.Int(1)) {
		t.Errorf("contains(arr, x) = %v, want Int(1)", got)
	}
	if got := call(t, r, "contains", arr, value.String("y")); got != value.Value(value.Int(0)) {
		t.Errorf("contains(arr, y) = %v, want Int(0)", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	path := filepath.Join(t.TempDir(), "out.txt")
	call(t, r, "write_file", value.String(path), value.String("abc"))
	if got := call(t, r, "file_exists", value.String(path)); got != value.Value(value.Int(1)) {
		t.Errorf("file_exists = %v, want Int(1)", got)
	}
	call(t, r, "append_file", value.String(path), value.String("def"))
	if got := call(t, r, "read_file", value.String(path)); got != value.Value(value.String("abcdef")) {
		t.Errorf("read_file = %v, want String(abcdef)", got)
	}
}

func TestFileExistsFalseForMissing(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	missing := filepath.Join(os.TempDir(), "fl-natives-test-does-not-exist")
	if got := call(t, r, "file_exists", value.String(missing)); got != value.Value(value.Int(0)) {
		t.Errorf("file_exists(missing) = %v, want Int(0)", got)
	}
}

func TestRadixNatives(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if got := call(t, r, "to_bin", value.Int(5)); got != value.Value(value.String("0b101")) {
		t.Errorf("to_bin(5) = %v, want String(0b101)", got)
	}
	if got := call(t, r, "to_hex", value.Int(255)); got != value.Value(value.String("0xff")) {
		t.Errorf("to_hex(255) = %v, want String(0xff)", got)
	}
}

func TestMatchesNative(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if got := call(t, r, "matches", value.String(`[0-9]+`), value.String("n42")); got != value.Value(value.Bool(true)) {
		t.Errorf("matches = %v, want Bool(true)", got)
	}
	if got := call(t, r, "matches", value.String(`[0-9]+`), value.String("nope")); got != value.Value(value.Bool(false)) {
		t.Errorf("matches = %v, want Bool(false)", got)
	}
}

func TestCheckArityVariadic(t *testing.T) {
	r := New(&bytes.Buffer{}, strings.NewReader(""))
	if err := r.CheckArity("hurle", 0); err != nil {
		t.Errorf("hurle with 0 args should be valid: %v", err)
	}
	if err := r.CheckArity("hurle", 10); err != nil {
		t.Errorf("hurle with 10 args should be valid: %v", err)
	}
	if err := r.CheckArity("len", 2); err == nil {
		t.Error("len with 2 args expected ArityError, got nil")
	}
}
