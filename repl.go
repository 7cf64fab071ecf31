package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	historyFile = ".gostack_history"
	promptMain  = "> "
	promptCont  = ". "
)

// runREPL reads programs from the terminal, evaluating each against vm. The
// stack and definitions carry over from one program to the next; an error
// only clears the stack.
func runREPL(ctx context.Context, vm *VM) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		src, err := readProgram(ln)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Println()
			return nil
		} else if err != nil {
			return err
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		stack, err := vm.Eval(ctx, src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		fmt.Println(vm.FormatStack(stack))
	}
}

// readProgram reads lines until they compile, or fail for a reason other than
// running out of input, like an unclosed block.
func readProgram(ln *liner.State) (string, error) {
	var sb strings.Builder
	for {
		prompt := promptMain
		if sb.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return "", err
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		src := sb.String()
		if _, err := Compile(newSymbols(), src); !IsIncomplete(err) {
			return src, nil
		}
	}
}
