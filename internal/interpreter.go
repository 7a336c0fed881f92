package internal

import (
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// IPrinter printer interface
type IPrinter interface {
	Println(a ...interface{}) (n int, err error)
	Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	Fprintln(w io.Writer, a ...interface{}) (n int, err error)
}

var errOutput io.Writer = os.Stderr

// Interpreter keeps the global frame alive between runs so a REPL can feed
// it one line at a time.
type Interpreter struct {
	state *interpreterState
	exec  *exec
}

// NewInterpreter creates an interpreter that writes program output to p
func NewInterpreter(p IPrinter, log *logrus.Logger) *Interpreter {
	state := newInterpreterState(p, log)
	return &Interpreter{
		state: state,
		exec:  newExec(state),
	}
}

// Run scans, parses, resolves and executes source. Static errors are
// returned as an ErrorList and nothing is executed, a runtime error is
// returned as a *RuntimeError.
func (in *Interpreter) Run(source string) error {
	if err := in.load(source); err != nil {
		return err
	}

	start := time.Now()
	err := in.exec.interpret(in.state.stmts)
	in.state.log.WithFields(logrus.Fields{
		"phase":   "interpret",
		"elapsed": time.Since(start),
		"failed":  err != nil,
	}).Debug("phase done")
	return err
}

// Tree parses source and returns the printed syntax tree
func (in *Interpreter) Tree(source string) (string, error) {
	in.state.reset(source)
	in.scan()
	if !in.state.Valid() {
		return "", in.state.errorList()
	}
	in.parse()
	if !in.state.Valid() {
		return "", in.state.errorList()
	}
	return in.state.printTree(), nil
}

// HadRuntimeError reports whether any previous run failed at runtime
func (in *Interpreter) HadRuntimeError() bool {
	return in.state.hadRuntimeError
}

func (in *Interpreter) load(source string) error {
	in.state.reset(source)

	in.scan()
	if !in.state.Valid() {
		return in.state.errorList()
	}

	in.parse()
	if !in.state.Valid() {
		return in.state.errorList()
	}

	start := time.Now()
	newResolver(in.exec).resolve(in.state.stmts)
	in.state.log.WithFields(logrus.Fields{
		"phase":   "resolve",
		"locals":  len(in.exec.locals),
		"elapsed": time.Since(start),
	}).Debug("phase done")

	return in.state.errorList()
}

func (in *Interpreter) scan() {
	start := time.Now()
	lexer := &lexer{
		line:  1,
		state: in.state,
	}
	lexer.scan()
	in.state.log.WithFields(logrus.Fields{
		"phase":   "scan",
		"tokens":  len(in.state.tokens),
		"elapsed": time.Since(start),
	}).Debug("phase done")
}

func (in *Interpreter) parse() {
	start := time.Now()
	parser := &parser{
		state: in.state,
	}
	parser.parse()
	in.state.log.WithFields(logrus.Fields{
		"phase":   "parse",
		"stmts":   len(in.state.stmts),
		"elapsed": time.Since(start),
	}).Debug("phase done")
}

// RunSourceWithPrinter runs source code on a fresh interpreter instance,
// errors are written to stderr through the printer
func RunSourceWithPrinter(source string, p IPrinter) bool {
	in := NewInterpreter(p, nil)
	if err := in.Run(source); err != nil {
		p.Fprintln(errOutput, err)
		return false
	}
	return true
}
