package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"plox/internal"
)

var source = `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}

class Counter {
  init() { this.count = 0; }
  inc() { this.count = this.count + 1; }
}

var c = Counter();
for (var i = 0; i < %d; i = i + 1) {
  c.inc();
}
print c.count;
print fib(%d);
`

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	return fmt.Fprintln(w, a...)
}

func main() {
	loops := flag.Int("loops", 1000000, "method calls in the counter loop")
	fib := flag.Int("fib", 25, "argument passed to fib")
	verbose := flag.Bool("v", false, "log phase timings")
	flag.Parse()

	level := logrus.WarnLevel
	if *verbose {
		level = logrus.DebugLevel
	}

	start := time.Now()
	in := internal.NewInterpreter(stdPrinter{}, internal.NewLogger(os.Stderr, level))
	if err := in.Run(fmt.Sprintf(source, *loops, *fib)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(70)
	}
	fmt.Println("Time elapsed is:", time.Since(start))
}
