package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/color"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	"plox/internal"
)

const quitCommand = "quit"

const banner = "plox, type quit to exit"

// runPrompt reads one line at a time and runs it on the same interpreter,
// so globals survive between lines. Errors are reported and the session
// goes on.
func runPrompt(cfg internal.Config, log *logrus.Logger) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(histPath)
			if err != nil {
				log.WithError(err).Warn("could not save history")
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Println(color.Cyan(banner))
	in := internal.NewInterpreter(stdPrinter{}, log)
	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, color.Red(err.Error()))
			return exitIOErr
		}

		source := strings.TrimSpace(line)
		if source == "" {
			continue
		}
		if source == quitCommand {
			return 0
		}
		ln.AppendHistory(line)

		if cfg.PrintAST {
			tree, err := in.Tree(source)
			if err != nil {
				reportError(err)
				continue
			}
			fmt.Print(tree)
			continue
		}
		if err := in.Run(source); err != nil {
			reportError(err)
		}
	}
}
