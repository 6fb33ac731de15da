// Package natives implements FL's fixed native-function surface: the
// name-keyed dispatch table spec.md calls a stable contract, plus one
// supplemental entry (matches) that exercises the coregex dependency
// the way the teacher's own regex engine does, through the trimmed
// internal/runtime wrapper. This mirrors the teacher's builtinFuncs
// dispatch table shape (name -> arity contract -> handler), adapted
// from a static arity table consulted by a compiler into a runtime
// table consulted directly by the evaluator, since FL has no separate
// compile pass.
package natives

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/flscript/fl/internal/runtime"
	"github.com/flscript/fl/internal/token"
	"github.com/flscript/fl/internal/value"
)

// CallError reports a native call that failed for a reason the
// language's error taxonomy names explicitly: wrong arity, a type the
// native does not accept, or a domain/bounds violation.
type CallError struct {
	Name    string
	Kind    string // ArityError, TypeError, DomainError, BoundsError
	Message string
}

func (e *CallError) Error() string { return e.Message }

func arityErr(name, msg string) *CallError {
	return &CallError{Name: name, Kind: "ArityError", Message: fmt.Sprintf("%s: %s", name, msg)}
}

func typeErr(name, msg string) *CallError {
	return &CallError{Name: name, Kind: "TypeError", Message: fmt.Sprintf("%s: %s", name, msg)}
}

func domainErr(name, msg string) *CallError {
	return &CallError{Name: name, Kind: "DomainError", Message: fmt.Sprintf("%s: %s", name, msg)}
}

func boundsErr(name, msg string) *CallError {
	return &CallError{Name: name, Kind: "BoundsError", Message: fmt.Sprintf("%s: %s", name, msg)}
}

// handler is the signature every native body implements. Handlers take
// no call-site position: the evaluator attaches the call site's
// location to any error a handler returns (see wrapCallError in
// internal/interp).
type handler func(args []value.Value) (value.Value, error)

type entry struct {
	minArgs int
	maxArgs int // -1 for variadic
	fn      handler
}

// Registry holds the bound native functions for one program run: the
// fixed table plus the I/O streams and regex cache natives close over.
type Registry struct {
	stdout  io.Writer
	stdin   *bufio.Reader
	regexes *runtime.RegexCache
	table   map[string]entry
}

// New builds a Registry writing hurle output to stdout and reading
// input from stdin.
func New(stdout io.Writer, stdin io.Reader) *Registry {
	r := &Registry{
		stdout:  stdout,
		stdin:   bufio.NewReader(stdin),
		regexes: runtime.NewRegexCache(64),
	}
	r.table = r.buildTable()
	return r
}

// NewDefault builds a Registry against os.Stdout/os.Stdin, the
// configuration cmd/fg runs with.
func NewDefault() *Registry { return New(os.Stdout, os.Stdin) }

// IsNative reports whether name is a registered native function.
func (r *Registry) IsNative(name string) bool {
	_, ok := r.table[name]
	return ok
}

// CheckArity validates argc against name's registered contract without
// invoking it, so the evaluator can report an ArityError at the call
// site's own location rather than one synthesized inside the native.
func (r *Registry) CheckArity(name string, argc int) error {
	e, ok := r.table[name]
	if !ok {
		return fmt.Errorf("unknown native function %q", name)
	}
	if argc < e.minArgs || (e.maxArgs >= 0 && argc > e.maxArgs) {
		if e.maxArgs == e.minArgs {
			return arityErr(name, fmt.Sprintf("expected %d argument(s), got %d", e.minArgs, argc))
		}
		if e.maxArgs < 0 {
			return arityErr(name, fmt.Sprintf("expected at least %d argument(s), got %d", e.minArgs, argc))
		}
		return arityErr(name, fmt.Sprintf("expected %d to %d argument(s), got %d", e.minArgs, e.maxArgs, argc))
	}
	return nil
}

// Call invokes the named native with already-evaluated arguments. The
// caller must have validated arity with CheckArity first; pos is
// accepted for symmetry with user-function calls and is not otherwise
// used, since native errors carry their own message.
func (r *Registry) Call(name string, args []value.Value, pos token.Position) (value.Value, error) {
	e, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("unknown native function %q", name)
	}
	return e.fn(args)
}

func (r *Registry) buildTable() map[string]entry {
	return map[string]entry{
		"hurle":       {0, -1, r.hurle},
		"input":       {0, 0, r.input},
		"len":         {1, 1, r.length},
		"substring":   {3, 3, r.substring},
		"to_string":   {1, 1, r.toString},
		"to_int":      {1, 1, r.toInt},
		"to_i8":       {1, 1, sizedInt(8)},
		"to_i16":      {1, 1, sizedInt(16)},
		"to_i32":      {1, 1, sizedInt(32)},
		"ord":         {1, 1, r.ord},
		"chr":         {1, 1, r.chr},
		"push":        {2, 2, r.push},
		"pop":         {1, 1, r.pop},
		"contains":    {2, 2, r.contains},
		"read_file":   {1, 1, r.readFile},
		"write_file":  {2, 2, r.writeFile},
		"append_file": {2, 2, r.appendFile},
		"file_exists": {1, 1, r.fileExists},
		"to_bin":      {1, 1, r.toBin},
		"to_hex":      {1, 1, r.toHex},
		"to_oct":      {1, 1, r.toOct},
		"matches":     {2, 2, r.matches},
	}
}

func (r *Registry) hurle(args []value.Value) (value.Value, error) {
	parts := make([]any, len(args))
	for i, a := range args {
		parts[i] = a.Display()
	}
	for i, p := range parts {
		if i > 0 {
			fmt.Fprint(r.stdout, " ")
		}
		fmt.Fprint(r.stdout, p)
	}
	fmt.Fprintln(r.stdout)
	return value.Null{}, nil
}

func (r *Registry) input(args []value.Value) (value.Value, error) {
	line, err := r.stdin.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return value.String(""), nil
		}
		return nil, domainErr("input", err.Error())
	}
	line = trimNewline(line)
	return value.String(line), nil
}

func trimNewline(s string) string {
	n := len(s)
	if n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		n--
	}
	if n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

func (r *Registry) length(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.String:
		return value.Int(value.RuneLen(string(v))), nil
	case value.Array:
		return value.Int(v.Len()), nil
	default:
		return nil, typeErr("len", "expected string or array, got "+v.TypeName())
	}
}

func (r *Registry) substring(args []value.Value) (value.Value, error) {
	s, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("substring", "expected string, got "+args[0].TypeName())
	}
	start, err := requireInt("substring", args[1])
	if err != nil {
		return nil, err
	}
	end, err := requireInt("substring", args[2])
	if err != nil {
		return nil, err
	}
	runes := []rune(string(s))
	if start < 0 || end < start || end > int64(len(runes)) {
		return nil, boundsErr("substring", fmt.Sprintf("range [%d, %d) out of bounds for string of length %d", start, end, len(runes)))
	}
	return value.String(value.Substring(string(s), int(start), int(end))), nil
}

func requireInt(name string, v value.Value) (int64, error) {
	i, ok := v.(value.Int)
	if !ok {
		return 0, typeErr(name, "expected int, got "+v.TypeName())
	}
	return int64(i), nil
}

func (r *Registry) toString(args []value.Value) (value.Value, error) {
	return value.String(value.ToString(args[0])), nil
}

func (r *Registry) toInt(args []value.Value) (value.Value, error) {
	i, err := value.ToInt(args[0])
	if err != nil {
		return nil, domainErr("to_int", err.Error())
	}
	return value.Int(i), nil
}

func sizedInt(bits uint) handler {
	return func(args []value.Value) (value.Value, error) {
		i, err := value.ToSizedInt(args[0], bits)
		if err != nil {
			return nil, typeErr(fmt.Sprintf("to_i%d", bits), err.Error())
		}
		return value.Int(i), nil
	}
}

func (r *Registry) ord(args []value.Value) (value.Value, error) {
	i, err := value.Ord(args[0])
	if err != nil {
		return nil, typeErr("ord", err.Error())
	}
	return value.Int(i), nil
}

func (r *Registry) chr(args []value.Value) (value.Value, error) {
	code, err := requireInt("chr", args[0])
	if err != nil {
		return nil, err
	}
	c, err := value.Chr(code)
	if err != nil {
		return nil, domainErr("chr", err.Error())
	}
	return c, nil
}

func (r *Registry) push(args []value.Value) (value.Value, error) {
	a, ok := args[0].(value.Array)
	if !ok {
		return nil, typeErr("push", "expected array, got "+args[0].TypeName())
	}
	a.Push(args[1])
	return value.Null{}, nil
}

func (r *Registry) pop(args []value.Value) (value.Value, error) {
	a, ok := args[0].(value.Array)
	if !ok {
		return nil, typeErr("pop", "expected array, got "+args[0].TypeName())
	}
	v, ok := a.Pop()
	if !ok {
		return nil, boundsErr("pop", "pop of empty array")
	}
	return v, nil
}

func (r *Registry) contains(args []value.Value) (value.Value, error) {
	a, ok := args[0].(value.Array)
	if !ok {
		return nil, typeErr("contains", "expected array, got "+args[0].TypeName())
	}
	for _, e := range a.Elems() {
		if value.Equal(e, args[1]) {
			return value.Int(1), nil
		}
	}
	return value.Int(0), nil
}

func (r *Registry) readFile(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("read_file", "expected string, got "+args[0].TypeName())
	}
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, domainErr("read_file", err.Error())
	}
	return value.String(string(data)), nil
}

func (r *Registry) writeFile(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("write_file", "expected string, got "+args[0].TypeName())
	}
	contents, ok := args[1].(value.String)
	if !ok {
		return nil, typeErr("write_file", "expected string contents, got "+args[1].TypeName())
	}
	if err := os.WriteFile(string(path), []byte(contents), 0o644); err != nil {
		return nil, domainErr("write_file", err.Error())
	}
	return value.Null{}, nil
}

func (r *Registry) appendFile(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("append_file", "expected string, got "+args[0].TypeName())
	}
	contents, ok := args[1].(value.String)
	if !ok {
		return nil, typeErr("append_file", "expected string contents, got "+args[1].TypeName())
	}
	f, err := os.OpenFile(string(path), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, domainErr("append_file", err.Error())
	}
	defer f.Close()
	if _, err := f.WriteString(string(contents)); err != nil {
		return nil, domainErr("append_file", err.Error())
	}
	return value.Null{}, nil
}

func (r *Registry) fileExists(args []value.Value) (value.Value, error) {
	path, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("file_exists", "expected string, got "+args[0].TypeName())
	}
	if _, err := os.Stat(string(path)); err != nil {
		return value.Int(0), nil
	}
	return value.Int(1), nil
}

func (r *Registry) toBin(args []value.Value) (value.Value, error) {
	s, err := value.ToBin(args[0])
	if err != nil {
		return nil, typeErr("to_bin", err.Error())
	}
	return value.String(s), nil
}

func (r *Registry) toHex(args []value.Value) (value.Value, error) {
	s, err := value.ToHex(args[0])
	if err != nil {
		return nil, typeErr("to_hex", err.Error())
	}
	return value.String(s), nil
}

func (r *Registry) toOct(args []value.Value) (value.Value, error) {
	s, err := value.ToOct(args[0])
	if err != nil {
		return nil, typeErr("to_oct", err.Error())
	}
	return value.String(s), nil
}

// matches is FL's one supplemental native beyond spec.md's fixed
// table: matches(pattern, s) reports whether s contains any substring
// matching pattern, backed by coregex through internal/runtime.
func (r *Registry) matches(args []value.Value) (value.Value, error) {
	pattern, ok := args[0].(value.String)
	if !ok {
		return nil, typeErr("matches", "expected string pattern, got "+args[0].TypeName())
	}
	s, ok := args[1].(value.String)
	if !ok {
		return nil, typeErr("matches", "expected string, got "+args[1].TypeName())
	}
	re, err := r.regexes.Get(string(pattern))
	if err != nil {
		return nil, domainErr("matches", "invalid pattern: "+err.Error())
	}
	return value.Bool(re.MatchString(string(s))), nil
}
