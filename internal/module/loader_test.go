package module

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flscript/fl/internal/interp"
	"github.com/flscript/fl/internal/natives"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func newInterp(out *bytes.Buffer) *interp.Interp {
	reg := natives.New(out, strings.NewReader(""))
	return interp.New(reg)
}

func TestGrabLoadsFileOnce(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.fg", `const GREETING = "hi"; hurle(GREETING);`)

	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	src := `grab "util.fg"; grab "util.fg";`
	main := writeFile(t, dir, "main.fg", src)
	if err := loader.RunFile(main); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.String() != "hi\n" {
		t.Errorf("got %q, want %q (grab of the same path twice must run the file once)", out.String(), "hi\n")
	}
}

func TestGrabSharesGlobalVariableScope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "vars.fg", `ty shared = 42;`)

	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	main := writeFile(t, dir, "main.fg", `grab "vars.fg"; hurle(shared);`)
	if err := loader.RunFile(main); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if out.String() != "42\n" {
		t.Errorf("got %q, want %q", out.String(), "42\n")
	}
}

func TestCircularImportLengthTwo(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.fg", `grab "b.fg";`)
	writeFile(t, dir, "b.fg", `grab "a.fg";`)

	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	a := filepath.Join(dir, "a.fg")
	err := loader.RunFile(a)
	if err == nil {
		t.Fatal("expected a circular import error")
	}
	rtErr, ok := err.(*interp.Error)
	if !ok || rtErr.Kind != "ImportError" {
		t.Fatalf("err = %#v, want *interp.Error{Kind: ImportError}", err)
	}
}

func TestCircularImportLengthThree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.fg", `grab "b.fg";`)
	writeFile(t, dir, "b.fg", `grab "c.fg";`)
	writeFile(t, dir, "c.fg", `grab "a.fg";`)

	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	a := filepath.Join(dir, "a.fg")
	err := loader.RunFile(a)
	if err == nil {
		t.Fatal("expected a circular import error")
	}
	rtErr, ok := err.(*interp.Error)
	if !ok || rtErr.Kind != "ImportError" {
		t.Fatalf("err = %#v, want *interp.Error{Kind: ImportError}", err)
	}
}

func TestGrabMissingFileIsImportError(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	main := writeFile(t, dir, "main.fg", `grab "nope.fg";`)
	err := loader.RunFile(main)
	rtErr, ok := err.(*interp.Error)
	if !ok || rtErr.Kind != "ImportError" {
		t.Fatalf("err = %#v, want *interp.Error{Kind: ImportError}", err)
	}
}

func TestGrabErrorInsideFileSurfacesOwnLocation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.fg", "ty x = 1 / 0;")

	var out bytes.Buffer
	it := newInterp(&out)
	loader := NewLoader(it)

	main := writeFile(t, dir, "main.fg", `grab "broken.fg";`)
	err := loader.RunFile(main)
	rtErr, ok := err.(*interp.Error)
	if !ok {
		t.Fatalf("err = %T, want *interp.Error", err)
	}
	if !strings.Contains(rtErr.Pos.File, "broken.fg") {
		t.Errorf("error location file = %q, want it to cite broken.fg, not the importer", rtErr.Pos.File)
	}
}
