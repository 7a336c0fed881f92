package internal

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

type testPrinter struct {
	printed string
}

func (t *testPrinter) Println(a ...interface{}) (n int, err error) {
	for i, e := range a {
		if i != 0 {
			t.printed += " "
		}
		t.printed += fmt.Sprintf("%v", e)
	}
	t.printed += "\n"
	return 0, nil
}

func (t *testPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return t.Println(fmt.Sprintf(format, a...))
}

func (t *testPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return t.Println(a...)
}

func (t *testPrinter) Equals(p string) bool {
	if t.printed == p+"\n" {
		t.Reset()
		return true
	}
	return false
}

func (t *testPrinter) Reset() {
	t.printed = ""
}

func checkExpression(t *testing.T, exp string, result ...string) {
	t.Helper()
	source := "print " + exp + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	any := false
	for _, r := range result {
		if tp.Equals(r) {
			any = true
			break
		}
	}
	if !any {
		t.Errorf(
			"Error on: \n%s\n\tResult should be equal to %s instead of %s",
			exp,
			result,
			tp.printed,
		)
	}
}

func checkErrorMsg(t *testing.T, source string, errorMsg string, line int) {
	t.Helper()
	result := fmt.Sprintf("[line %d] %s", line, errorMsg)

	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----",
			source,
			result,
			tp.printed,
		)
	}
}

func checkStatements(t *testing.T, code string, resultVar string, result string) {
	t.Helper()
	source := code + "\nprint " + resultVar + ";"
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(result) {
		t.Errorf(
			"Error on: \n%s\n\t%s should be equal to %s instead of %s",
			code,
			resultVar,
			result,
			tp.printed,
		)
	}
}

func checkOutput(t *testing.T, source string, lines ...string) {
	t.Helper()
	tp := &testPrinter{}
	RunSourceWithPrinter(source, tp)
	if !tp.Equals(strings.Join(lines, "\n")) {
		t.Errorf(
			"\nSource:\n----\n%s\n----\nExpected:\n----\n%s\n----\nFound:\n----\n%s----",
			source,
			strings.Join(lines, "\n"),
			tp.printed,
		)
	}
}

func TestExpressions(t *testing.T) {

	// Arithmethic
	{
		checkExpression(t, "1", "1")
		checkExpression(t, "-1", "-1")
		checkExpression(t, "2.5", "2.5")
		checkExpression(t, "1 + 2 + 3", "6")
		checkExpression(t, "8 - 2", "6")
		checkExpression(t, "1 * 2 * 3", "6")
		checkExpression(t, "12 / 2", "6")
		checkExpression(t, "7 / 2", "3.5")
		checkExpression(t, "1 + 2 * 3", "7")
		checkExpression(t, "((1 + 3) / 2) + 1 - (100.5 / 0.5) == -198", "true")
		checkExpression(t, "((1 + 3) / 2) + 1 - (100.5 / 0.5)", "-198")
	}

	// Logical
	{
		checkExpression(t, "true", "true")
		checkExpression(t, "false", "false")
		checkExpression(t, "nil", "nil")

		checkExpression(t, "!false", "true")
		checkExpression(t, "!true", "false")
		checkExpression(t, "!nil", "true")
		checkExpression(t, `!""`, "false")
		checkExpression(t, `!0`, "false")

		checkExpression(t, "true and true", "true")
		checkExpression(t, "false and true", "false")
		checkExpression(t, "true or false", "true")
		checkExpression(t, "false or false", "false")

		// Operands are returned as they are
		checkExpression(t, `nil or "yes"`, "yes")
		checkExpression(t, `"hi" or 2`, "hi")
		checkExpression(t, `1 and 2`, "2")
		checkExpression(t, `nil and 2`, "nil")
	}

	// Strings
	{
		checkExpression(t, `"test"`, "test")
		checkExpression(t, `"te" + "st"`, "test")
		checkExpression(t, `"n" + 1`, "n1")
		checkExpression(t, `2.5 + "x"`, "2.5x")
		checkExpression(t, `"is " + nil`, "is nil")
		checkExpression(t, `"is " + true`, "is true")
	}

	// Comparisons
	{
		checkExpression(t, `"test" == "test"`, "true")
		checkExpression(t, `"test" != "test"`, "false")
		checkExpression(t, `nil == nil`, "true")
		checkExpression(t, `nil == false`, "false")
		checkExpression(t, `0 == false`, "false")
		checkExpression(t, `1 == "1"`, "false")
		checkExpression(t, `2*2 == 8-4`, "true")
		checkExpression(t, `10 > 5`, "true")
		checkExpression(t, `10 < 5`, "false")
		checkExpression(t, `5 >= 5`, "true")
		checkExpression(t, `4 >= 5`, "false")
		checkExpression(t, `5 <= 5`, "true")
		checkExpression(t, `(5 <= 5) and (!true or ((1*(1+4)) == 5))`, "true")
	}

	// Callables
	{
		checkExpression(t, "clock", "<native fn>")
		checkExpression(t, "clock() > 0", "true")
	}
}

func TestStatements(t *testing.T) {
	checkStatements(t, `var a = 1;`, "a", "1")
	checkStatements(t, `var a;`, "a", "nil")
	checkStatements(t, `var a = 1; a = a + 1;`, "a", "2")
	checkStatements(t, `var a = 1; var b = a = 3;`, "b", "3")
	checkStatements(t, `var a = 1; var a = 2;`, "a", "2")

	checkStatements(t, `
	var a = 0;
	if (a == 0) a = 1; else a = 2;
	`, "a", "1")

	checkStatements(t, `
	var a = 0;
	if (nil) { a = 1; } else { a = 2; }
	`, "a", "2")

	checkOutput(t, `
	var count = 0;
	while (count < 3) {
		print count;
		count = count + 1;
	}`, "0", "1", "2")

	checkOutput(t, `
	for (var i = 0; i < 3; i = i + 1) {
		print i;
	}`, "0", "1", "2")

	checkStatements(t, `
	var total = 0;
	for (var i = 0; i < 5; i = i + 1) total = total + i;
	`, "total", "10")
}

func TestScopes(t *testing.T) {
	checkOutput(t, `
	var a = "global a";
	var b = "global b";
	var c = "global c";
	{
		var a = "outer a";
		var b = "outer b";
		{
			var a = "inner a";
			print a;
			print b;
			print c;
		}
		print a;
		print b;
		print c;
	}
	print a;
	print b;
	print c;`,
		"inner a", "outer b", "global c",
		"outer a", "outer b", "global c",
		"global a", "global b", "global c",
	)

	// The function keeps the binding it saw when it was declared
	checkOutput(t, `
	var a = "global";
	{
		fun showA() {
			print a;
		}

		showA();
		var a = "block";
		showA();
	}`, "global", "global")

	// Assignment from an inner block writes the outer variable
	checkOutput(t, `
	{
		var a = 1;
		{
			a = 2;
		}
		print a;
	}`, "2")
}

func TestFunctions(t *testing.T) {
	checkOutput(t, `
	fun sayHi(first, last) {
		print "Hi, " + first + " " + last + "!";
	}

	sayHi("Dear", "Reader");`, "Hi, Dear Reader!")

	checkStatements(t, `
	fun add(a, b) {
		return a + b;
	}
	`, "add(1, 2)", "3")

	checkStatements(t, `fun noReturn() {}`, "noReturn()", "nil")
	checkStatements(t, `fun bare() { return; }`, "bare()", "nil")
	checkStatements(t, `fun named() {}`, "named", "<fn named>")

	checkStatements(t, `
	fun fib(n) {
		if (n < 2) return n;
		return fib(n - 1) + fib(n - 2);
	}
	`, "fib(15)", "610")

	// Return unwinds loops inside the function
	checkStatements(t, `
	fun firstAbove(limit) {
		var i = 0;
		while (true) {
			if (i > limit) {
				return i;
			}
			i = i + 1;
		}
	}
	`, "firstAbove(4)", "5")

	// Counters created by the same factory are independent
	checkOutput(t, `
	fun makeCounter() {
		var i = 0;
		fun count() {
			i = i + 1;
			print i;
		}
		return count;
	}

	var counter = makeCounter();
	var other = makeCounter();
	counter();
	counter();
	counter();
	other();`, "1", "2", "3", "1")

	// Two closures share the frame they were created in
	checkOutput(t, `
	var get;
	var set;
	fun pair() {
		var value = "before";
		fun g() { return value; }
		fun s(v) { value = v; }
		get = g;
		set = s;
	}
	pair();
	print get();
	set("after");
	print get();`, "before", "after")

	// Globals may be redefined, natives included
	checkStatements(t, `var clock = "mine";`, "clock", "mine")
}

func TestClasses(t *testing.T) {
	checkOutput(t, `
	class Foo {}
	print Foo;

	var foo = Foo();
	print foo;`, "Foo", "Foo instance")

	checkStatements(t, `
	class Foo {}
	var foo = Foo();
	foo.bar = "baz";
	`, "foo.bar", "baz")

	checkOutput(t, `
	class Foo {
		bar() {
			print "baz";
		}
	}

	var foo = Foo();
	foo.bar();`, "baz")

	checkOutput(t, `
	class Cake {
		taste() {
			var adjective = "delicious";
			print "The " + this.flavor + " cake is " + adjective + "!";
		}
	}

	var cake = Cake();
	cake.flavor = "German chocolate";
	cake.taste();`, "The German chocolate cake is delicious!")

	checkOutput(t, `
	class Thing {
		getCallback() {
			fun localFunction() {
				print this;
			}

			return localFunction;
		}
	}

	var callback = Thing().getCallback();
	callback();`, "Thing instance")

	checkOutput(t, `
	class Circle {
		init(radius) {
			this.radius = radius;
		}

		area() {
			return 3 * this.radius * this.radius;
		}
	}

	var circle = Circle(4);
	print circle.area();`, "48")

	// Methods are bound when accessed
	checkOutput(t, `
	class Person {
		init(name) { this.name = name; }
		sayName() { print this.name; }
	}
	var jane = Person("Jane");
	var bill = Person("Bill");
	bill.sayName = jane.sayName;
	bill.sayName();`, "Jane")

	// Fields shadow methods and are not shared between instances
	checkOutput(t, `
	class Box {
		value() { return "method"; }
	}
	var a = Box();
	var b = Box();
	a.value = "field";
	print a.value;
	print b.value();`, "field", "method")

	// init returns the instance, even on a bare return
	checkOutput(t, `
	class Early {
		init() {
			this.ready = true;
			return;
		}
	}
	var e = Early();
	print e.init() == e;
	print e.ready;`, "true", "true")

	// Methods see sibling methods through this and enclosing variables
	checkOutput(t, `
	var greeting = "hello";
	class Greeter {
		greet() { return greeting + " " + this.name(); }
		name() { return "world"; }
	}
	print Greeter().greet();`, "hello world")
}

func TestInheritance(t *testing.T) {
	checkOutput(t, `
	class Doughnut {
		cook() {
			print "Fry until golden brown.";
		}
	}

	class BostonCream < Doughnut {}

	Doughnut().cook();
	BostonCream().cook();`, "Fry until golden brown.", "Fry until golden brown.")

	checkOutput(t, `
	class Doughnut {
		cook() {
			print "Fry until golden brown.";
		}
	}

	class BostonCream < Doughnut {
		cook() {
			super.cook();
			print "Pipe full of custard and coat with chocolate.";
		}
	}

	BostonCream().cook();`, "Fry until golden brown.", "Pipe full of custard and coat with chocolate.")

	// super is rooted at the declaring class, not the runtime class
	checkOutput(t, `
	class A {
		method() { print "A method"; }
	}
	class B < A {
		method() { print "B method"; }
		test() { super.method(); }
	}
	class C < B {}
	C().test();`, "A method")

	// Inherited initializer
	checkOutput(t, `
	class Base {
		init(x) { this.x = x; }
	}
	class Derived < Base {}
	print Derived(7).x;`, "7")
}

func TestRuntimeErrors(t *testing.T) {
	checkErrorMsg(t, `-"B";`, "Operand must be a number.", 1)
	checkErrorMsg(t, `"A" - "B";`, "Operand must be a number.", 1)
	checkErrorMsg(t, `1 < "2";`, "Operand must be a number.", 1)
	checkErrorMsg(t, `true + nil;`, "Operands must be numbers or strings.", 1)
	checkErrorMsg(t, `"B"();`, "Can only call functions and classes.", 1)
	checkErrorMsg(t, "\n\nprint missing;", "Undefined variable 'missing'.", 3)
	checkErrorMsg(t, `missing = 1;`, "Undefined variable 'missing'.", 1)
	checkErrorMsg(t, `class A {} A().nope;`, "Undefined property 'nope'.", 1)
	checkErrorMsg(t, `"str".length;`, "Only instances have properties.", 1)
	checkErrorMsg(t, `"str".length = 1;`, "Only instances have fields.", 1)
	checkErrorMsg(t, `var NotAClass = "x"; class A < NotAClass {}`, "Superclass must be a class.", 1)

	// Arity
	checkErrorMsg(t, `fun f(a, b) {} f(1);`, "Expected 2 arguments but got 1.", 1)
	checkErrorMsg(t, `fun f(a, b) {} f(1, 2, 3);`, "Expected 2 arguments but got 3.", 1)
	checkOutput(t, `fun f(a, b) { print a + b; } f(1, 2);`, "3")
	checkErrorMsg(t, `class A { init(x) {} } A();`, "Expected 1 arguments but got 0.", 1)
	checkErrorMsg(t, `class A {} A(1);`, "Expected 0 arguments but got 1.", 1)

	// Execution stops at the first error
	checkOutput(t, `
	print "before";
	print 1 - nil;
	print "after";`, "before", "[line 3] Operand must be a number.")
}

func TestRuntimeErrorFlag(t *testing.T) {
	tp := &testPrinter{}
	in := NewInterpreter(tp, nil)

	if err := in.Run(`var a = 1;`); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if in.HadRuntimeError() {
		t.Fatal("runtime error flag should not be set")
	}

	err := in.Run(`fun f() { return nil + 1; } f();`)
	var runErr *RuntimeError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected a runtime error, got %v", err)
	}
	if !errors.Is(err, errOnlyNumbersOrStrings) {
		t.Errorf("expected errOnlyNumbersOrStrings, got %v", err)
	}
	if runErr.Line() != 1 {
		t.Errorf("expected line 1, got %d", runErr.Line())
	}
	if !in.HadRuntimeError() {
		t.Fatal("runtime error flag should be set")
	}

	// Globals survive and the flag is sticky
	if err := in.Run(`print a;`); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !tp.Equals("1") {
		t.Errorf("expected 1, got %q", tp.printed)
	}
	if !in.HadRuntimeError() {
		t.Fatal("runtime error flag should stay set")
	}
}

func TestStaticErrorsPreventExecution(t *testing.T) {
	tp := &testPrinter{}
	in := NewInterpreter(tp, nil)
	err := in.Run(`
	print "should not run";
	{
		var a = 1;
		var a = 2;
	}`)
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected an error list, got %v", err)
	}
	if tp.printed != "" {
		t.Errorf("nothing should be printed, got %q", tp.printed)
	}
	if in.HadRuntimeError() {
		t.Error("static errors must not set the runtime flag")
	}
}
