// Package fl provides an embeddable interpreter for FL, a small,
// dynamically-typed, block-scoped scripting language with C-like
// surface syntax.
//
// # Quick Start
//
// For simple one-off execution:
//
//	output, err := fl.Run(`hurle("hello", "world");`, nil)
//
// # Compiled Programs
//
// For repeated execution of the same program:
//
//	prog, err := fl.Compile(`function double(n){ omeo n*2; } hurle(double(21));`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, err := prog.Run(nil)
//
// # Programs on disk
//
// CompileFile and RunFile read a program from disk and resolve any
// grab statements relative to its directory, the same way the fg
// command line interpreter does:
//
//	output, err := fl.RunFile("main.fg", nil)
//
// # Configuration
//
// The [Config] type controls where input() reads from and where
// hurle (and the other printing natives) write to. If Config.Stdout
// is nil, output is captured and returned as a string.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [LexicalError]: malformed token in the source
//   - [ParseError]: source that does not fit the grammar
//   - [RuntimeError]: a failure while evaluating an already-parsed
//     program; its Kind field names the taxonomy category (NameError,
//     TypeError, ArityError, DomainError, BoundsError, ImportError,
//     FieldError)
//
// # Thread Safety
//
// A compiled [Program] is safe for concurrent use: each call to
// [Program.Run] builds its own environment and native registry.
package fl
