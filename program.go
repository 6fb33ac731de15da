package fl

import (
	"bytes"
	"path/filepath"

	"github.com/flscript/fl/internal/ast"
	"github.com/flscript/fl/internal/interp"
	"github.com/flscript/fl/internal/lexer"
	"github.com/flscript/fl/internal/module"
	"github.com/flscript/fl/internal/natives"
	"github.com/flscript/fl/internal/parser"
)

// Program is a parsed FL program ready for (repeated) execution. Each
// call to Run builds a fresh environment and native registry, so one
// Program is safe to Run concurrently from multiple goroutines.
type Program struct {
	prog   *ast.Program
	canon  string // identity used by the module loader's cycle map
	source string
}

// Run evaluates the program against a fresh environment. If
// config.Stdout is nil, the program's combined output is captured and
// returned as a string; otherwise output is written to config.Stdout
// and Run returns an empty string.
func (p *Program) Run(config *Config) (string, error) {
	if config == nil {
		config = &Config{}
	}
	config.applyDefaults()

	var outBuf *bytes.Buffer
	stdout := config.Stdout
	if stdout == nil {
		outBuf = &bytes.Buffer{}
		stdout = outBuf
	}

	reg := natives.New(stdout, config.Stdin)
	it := interp.New(reg)
	loader := module.NewLoader(it)

	if err := loader.RunParsed(p.canon, p.prog); err != nil {
		return "", toPublicError(err)
	}

	if outBuf != nil {
		return outBuf.String(), nil
	}
	return "", nil
}

// Source returns the original FL source text.
func (p *Program) Source() string {
	return p.source
}

// toPublicError converts an internal lexical, parse, or runtime error
// into the corresponding public error type.
func toPublicError(err error) error {
	switch e := err.(type) {
	case *lexer.Error:
		return &LexicalError{Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message}
	case *parser.ParseError:
		return &ParseError{Line: e.Pos.Line, Column: e.Pos.Column, Message: e.Message}
	case parser.ErrorList:
		if len(e) > 0 {
			return &ParseError{Line: e[0].Pos.Line, Column: e[0].Pos.Column, Message: e[0].Message}
		}
		return &ParseError{Message: "unknown parse error"}
	case *interp.Error:
		return &RuntimeError{
			File:    e.Pos.File,
			Line:    e.Pos.Line,
			Column:  e.Pos.Column,
			Kind:    e.Kind,
			Message: e.Message,
		}
	default:
		return err
	}
}

// canonFor derives a stable identity for a parsed program's entry
// point, used as the module loader's cycle-detection key. Programs
// compiled from disk use the file's absolute path; programs compiled
// from an in-memory source string use a synthetic identity, since
// there's no real file to canonicalize. Relative grab paths in an
// in-memory program resolve against the current working directory.
func canonFor(file string) string {
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	return abs
}
