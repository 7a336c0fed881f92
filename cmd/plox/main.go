package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/color"
	"github.com/sirupsen/logrus"

	"plox/internal"
)

// Exit codes follow sysexits.h
const (
	exitUsage   = 64
	exitDataErr = 65
	exitIOErr   = 74
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("plox", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (default $HOME/"+internal.DefaultConfigFile+")")
	verbose := fs.Bool("v", false, "log phase timings at debug level")
	printAST := fs.Bool("ast", false, "print the syntax tree instead of running")
	noColor := fs.Bool("no-color", false, "disable colored diagnostics")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: plox [flags] [script]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red(err.Error()))
		return exitUsage
	}
	if *noColor || !cfg.Color {
		color.Disable()
	}
	if *printAST {
		cfg.PrintAST = true
	}

	level, _ := cfg.Level()
	if *verbose {
		level = logrus.DebugLevel
	}
	log := internal.NewLogger(os.Stderr, level)

	if fs.NArg() == 0 {
		return runPrompt(cfg, log)
	}
	return runFile(fs.Arg(0), cfg, log)
}

func loadConfig(path string) (internal.Config, error) {
	if path != "" {
		return internal.LoadConfig(path, true)
	}
	return internal.LoadConfig(internal.DefaultConfigPath(), false)
}

func runFile(path string, cfg internal.Config, log *logrus.Logger) int {
	absPath, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red(err.Error()))
		return exitIOErr
	}

	b, err := ioutil.ReadFile(absPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red(err.Error()))
		return exitIOErr
	}
	log.WithField("file", absPath).Debug("running script")

	in := internal.NewInterpreter(stdPrinter{}, log)
	if cfg.PrintAST {
		tree, err := in.Tree(string(b))
		if err != nil {
			reportError(err)
			return exitDataErr
		}
		fmt.Print(tree)
		return 0
	}

	if err := in.Run(string(b)); err != nil {
		reportError(err)
		var runtimeErr *internal.RuntimeError
		if errors.As(err, &runtimeErr) {
			return exitRuntime
		}
		return exitDataErr
	}
	return 0
}

func reportError(err error) {
	var runtimeErr *internal.RuntimeError
	if errors.As(err, &runtimeErr) {
		fmt.Fprintln(os.Stderr, color.Red(err.Error()))
		return
	}
	fmt.Fprintln(os.Stderr, color.Yellow(err.Error()))
}
