package fl

import (
	"os"

	"github.com/flscript/fl/internal/parser"
)

// sourceFile is the synthetic file name attributed to programs
// compiled from an in-memory string rather than read from disk.
const sourceFile = "<source>"

// Run parses and evaluates an FL program in one step. For repeated
// execution of the same program, use Compile followed by Program.Run.
//
// Example:
//
//	output, err := fl.Run(`hurle("hello");`, nil)
//	// output: "hello\n"
func Run(source string, config *Config) (string, error) {
	prog, err := Compile(source)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Compile parses source into a Program ready for (repeated)
// execution. A grab statement with a relative path resolves against
// the current working directory, since an in-memory source has no
// file of its own; use CompileFile for programs that import sibling
// files.
//
// Example:
//
//	prog, err := fl.Compile(`function f(n){ omeo n*2; } hurle(f(21));`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, _ := prog.Run(nil)
func Compile(source string) (*Program, error) {
	astProg, err := parser.Parse(sourceFile, source)
	if err != nil {
		return nil, toPublicError(err)
	}
	return &Program{prog: astProg, canon: canonFor(sourceFile), source: source}, nil
}

// CompileFile reads and parses the FL program at path. Unlike
// Compile, grab statements inside the file resolve relative to path's
// own directory, matching how the fg command line runs a file.
func CompileFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RuntimeError{File: path, Kind: "ImportError", Message: err.Error()}
	}
	astProg, err := parser.Parse(path, string(data))
	if err != nil {
		return nil, toPublicError(err)
	}
	return &Program{prog: astProg, canon: canonFor(path), source: string(data)}, nil
}

// RunFile is Run for a program read from disk, with grab paths
// resolved relative to path's directory.
func RunFile(path string, config *Config) (string, error) {
	prog, err := CompileFile(path)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Exec is a simplified interface for running a program with output
// written directly to config's Stdout rather than captured and
// returned.
//
// Example:
//
//	err := fl.Exec(`hurle("hi");`, &fl.Config{Stdout: os.Stdout})
func Exec(source string, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	_, err := Run(source, config)
	return err
}

// MustCompile is like Compile but panics if the program cannot be
// parsed. It simplifies initialization of global program variables.
//
// Example:
//
//	var doubler = fl.MustCompile(`function f(n){ omeo n*2; }`)
func MustCompile(source string) *Program {
	prog, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return prog
}
