package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

type parseError struct {
	err   error
	line  int
	where string
}

func (e parseError) Error() string {
	if e.where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.line, e.err)
	}
	return fmt.Sprintf("[line %d] Error at %s: %s", e.line, e.where, e.err)
}

func (e parseError) Unwrap() error {
	return e.err
}

// ErrorList holds every static error found while scanning, parsing or
// resolving a source. A program with a non empty list is never executed.
type ErrorList []error

func (l ErrorList) Error() string {
	lines := make([]string, len(l))
	for i, err := range l {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// RuntimeError is raised while executing a program. It carries the token
// closest to the failure so the line can be reported.
type RuntimeError struct {
	token *token
	err   error
	msg   string
}

func (r *RuntimeError) Error() string {
	return fmt.Sprintf("[line %d] %s", r.token.line, r.msg)
}

func (r *RuntimeError) Unwrap() error {
	return r.err
}

// Line returns the source line where the error happened
func (r *RuntimeError) Line() int {
	return r.token.line
}

// interpreterState stores the state of a interpreter
type interpreterState struct {
	source string
	tokens []token
	stmts  []stmt
	errors []parseError

	runtimeError    *RuntimeError
	hadRuntimeError bool

	printer IPrinter
	log     *logrus.Logger
}

func newInterpreterState(p IPrinter, log *logrus.Logger) *interpreterState {
	if log == nil {
		log = NewLogger(io.Discard, logrus.WarnLevel)
	}
	return &interpreterState{
		errors:  make([]parseError, 0),
		printer: p,
		log:     log,
	}
}

// reset prepares the state to process a new source, globals live in the
// executor so they are not affected.
func (s *interpreterState) reset(source string) {
	s.source = source
	s.tokens = nil
	s.stmts = nil
	s.errors = make([]parseError, 0)
}

func (s *interpreterState) setError(err error, line int, where string) {
	s.errors = append(s.errors, parseError{
		err:   err,
		line:  line,
		where: where,
	})
}

func (s *interpreterState) tokenError(err error, tk *token) {
	if tk.token == tkEOF {
		s.setError(err, tk.line, "end")
		return
	}
	s.setError(err, tk.line, "'"+tk.lexeme+"'")
}

// fatalError records the error and unwinds the parser up to the closest
// statement boundary.
func (s *interpreterState) fatalError(err error, tk *token) {
	s.tokenError(err, tk)
	panic(err)
}

func (s *interpreterState) runtimeErr(err error, tk *token) {
	s.runtimeErrf(err, tk, "%s", err)
}

func (s *interpreterState) runtimeErrf(err error, tk *token, format string, a ...interface{}) {
	s.runtimeError = &RuntimeError{
		token: tk,
		err:   err,
		msg:   fmt.Sprintf(format, a...),
	}
	panic(s.runtimeError)
}

// Valid returns true if the interpreter is in a valid states else false
func (s *interpreterState) Valid() bool {
	return len(s.errors) == 0
}

func (s *interpreterState) errorList() error {
	if s.Valid() {
		return nil
	}
	list := make(ErrorList, len(s.errors))
	for i, e := range s.errors {
		list[i] = e
	}
	return list
}

// Lexer errors
var errIllegalChar = errors.New("Unexpected character.")
var errUnclosedString = errors.New("Unterminated string.")

// Parser errors
var errUnclosedParen = errors.New("Expect ')' after expression.")
var errExpectedParen = errors.New("Expect '(' after name.")
var errUnclosedArgs = errors.New("Expect ')' after arguments.")
var errUnclosedParams = errors.New("Expect ')' after parameters.")
var errExpectedOpeningBrace = errors.New("Expect '{' before body.")
var errExpectedClosingBrace = errors.New("Expect '}' after block.")
var errExpectedProp = errors.New("Expect property name after '.'.")
var errExpectedDot = errors.New("Expect '.' after 'super'.")
var errExpectedSuperMethod = errors.New("Expect superclass method name.")
var errExpectedExpr = errors.New("Expect expression.")
var errMaxArguments = errors.New("Can't have more than 255 arguments.")
var errMaxParameters = errors.New("Can't have more than 255 parameters.")
var errExpectedIdentifier = errors.New("Expect variable name.")
var errExpectedClassName = errors.New("Expect class name.")
var errExpectedSuperclassName = errors.New("Expect superclass name.")
var errExpectedFunctionName = errors.New("Expect function name.")
var errExpectedFunctionParam = errors.New("Expect parameter name.")
var errExpectedSemicolon = errors.New("Expect ';' after statement.")
var errExpectedForParen = errors.New("Expect '(' after 'for'.")
var errExpectedIfParen = errors.New("Expect '(' after 'if'.")
var errExpectedWhileParen = errors.New("Expect '(' after 'while'.")
var errUnclosedCondition = errors.New("Expect ')' after condition.")
var errUnclosedForClauses = errors.New("Expect ')' after for clauses.")
var errInvalidAssignment = errors.New("Invalid assignment target.")

// Resolver errors
var errAlreadyDeclared = errors.New("Already a variable with this name in this scope.")
var errReadInInitializer = errors.New("Can't read local variable in its own initializer.")
var errTopLevelReturn = errors.New("Can't return from top-level code.")
var errReturnFromInit = errors.New("Can't return a value from an initializer.")
var errThisOutsideClass = errors.New("Can't use 'this' outside of a class.")
var errSuperOutsideClass = errors.New("Can't use 'super' outside of a class.")
var errSuperWithoutSuperclass = errors.New("Can't use 'super' in a class with no superclass.")
var errInheritFromSelf = errors.New("A class can't inherit from itself.")

// Runtime errors
var errUndefinedVar = errors.New("Undefined variable")
var errUndefinedProp = errors.New("Undefined property")
var errOnlyNumbers = errors.New("Operand must be a number.")
var errOnlyNumbersOrStrings = errors.New("Operands must be numbers or strings.")
var errOnlyFunction = errors.New("Can only call functions and classes.")
var errInvalidNumberArguments = errors.New("Invalid number of arguments")
var errSuperclassNotClass = errors.New("Superclass must be a class.")
var errExpectedObject = errors.New("Only instances have properties.")
var errExpectedObjectFields = errors.New("Only instances have fields.")
var errUndefinedOp = errors.New("Undefined operator")
