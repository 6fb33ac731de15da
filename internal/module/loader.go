// Package module implements FL's grab loader: resolving import paths
// relative to the importing file, loading each canonical path exactly
// once, and detecting circular chains. This is the teacher's Compile
// pipeline idea (parse -> resolve -> evaluate, one artifact threaded
// through a sequence of stages) turned recursive: each grab reinvokes
// the same lex -> parse -> evaluate pipeline against the shared
// environment of one running Interp.
package module

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/interp"
	"github.com/flscript/fl/internal/parser"
	"github.com/flscript/fl/internal/token"
)

type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
)

// Loader tracks which files have been loaded so far for one program
// run (the entry file plus every file pulled in by a grab) and
// evaluates newly loaded files against the Interp it was built with.
// It implements interp.Grabber.
type Loader struct {
	it     *interp.Interp
	states map[string]loadState
}

// NewLoader builds a Loader and wires it into it as the Interp's
// Grabber, so evaluating a GrabStmt delegates back here.
func NewLoader(it *interp.Interp) *Loader {
	l := &Loader{it: it, states: make(map[string]loadState)}
	it.Loader = l
	return l
}

// RunFile loads and evaluates the program's entry file. Unlike Grab it
// resolves path as given (no importer to be relative to) but otherwise
// occupies the same state map, so a grab chain that cycles back to the
// entry file is caught exactly like any other circular import.
func (l *Loader) RunFile(path string) error {
	canon, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("fl: %s: %w", path, err)
	}
	return l.load(canon, path, token.Position{})
}

// Grab resolves path relative to pos.File's directory (or as an
// absolute path), then loads it per spec.md §4.H: a no-op if already
// loaded, a circular-import error if already loading, otherwise a
// fresh lex+parse+evaluate of the file against the shared environment.
func (l *Loader) Grab(path string, pos token.Position) error {
	resolved := path
	if !filepath.IsAbs(path) {
		resolved = filepath.Join(filepath.Dir(pos.File), path)
	}
	canon, err := filepath.Abs(resolved)
	if err != nil {
		return &interp.Error{Pos: pos, Kind: "ImportError", Message: fmt.Sprintf("grab %q: %s", path, err)}
	}
	return l.load(canon, path, pos)
}

// load runs the shared once-only/cycle-detection/read/parse/evaluate
// sequence for canon, a path already resolved to canonical absolute
// form. displayPath is what's named in error messages; pos is the
// importing grab site (the zero Position for the program's entry
// file).
func (l *Loader) load(canon, displayPath string, pos token.Position) error {
	if done, err := l.enter(canon, displayPath, pos); done {
		return err
	}

	data, err := os.ReadFile(canon)
	if err != nil {
		return &interp.Error{Pos: pos, Kind: "ImportError", Message: fmt.Sprintf("grab %q: %s", displayPath, err)}
	}

	prog, err := parser.Parse(canon, string(data))
	if err != nil {
		return err
	}
	return l.finish(canon, prog)
}

// RunParsed registers an already-parsed program under canon and
// evaluates it, applying the same once-only/cycle-detection rule as
// load. It lets a caller holding a pre-parsed *ast.Program (the root
// package's Program type, compiled once and reused across Run calls)
// drive evaluation through the loader so that any grab cycling back to
// the entry program itself is still caught.
func (l *Loader) RunParsed(canon string, prog *ast.Program) error {
	if done, err := l.enter(canon, canon, token.Position{}); done {
		return err
	}
	return l.finish(canon, prog)
}

// enter records canon as in-progress, or reports that the caller
// should stop immediately: (true, nil) if canon is already fully
// loaded, (true, err) if canon is mid-load (a cycle), (false, nil) if
// this is the first time canon has been seen and the caller should
// proceed to read/evaluate it.
func (l *Loader) enter(canon, displayPath string, pos token.Position) (bool, error) {
	if st, seen := l.states[canon]; seen {
		switch st {
		case stateLoaded:
			return true, nil
		case stateLoading:
			return true, &interp.Error{Pos: pos, Kind: "ImportError", Message: fmt.Sprintf("circular import detected for %s", displayPath)}
		}
	}
	l.states[canon] = stateLoading
	return false, nil
}

func (l *Loader) finish(canon string, prog *ast.Program) error {
	if err := l.it.RunProgram(prog); err != nil {
		return err
	}
	l.states[canon] = stateLoaded
	return nil
}
