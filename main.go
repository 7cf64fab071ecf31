package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"time"

	"github.com/jcorbin/gostack/internal/logio"
)

func main() {
	ctx := context.Background()

	var (
		logs       logio.Logger
		timeout    time.Duration
		trace      bool
		dump       bool
		repl       bool
		inline     string
		file       string
		stackLimit int
		callLimit  int
	)
	flag.StringVar(&inline, "i", "", "evaluate the given program text")
	flag.StringVar(&file, "f", "", "evaluate the program in the given file")
	flag.BoolVar(&repl, "repl", false, "run an interactive session")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump the VM after evaluation")
	flag.IntVar(&stackLimit, "stack-limit", 0, "limit value stack depth")
	flag.IntVar(&callLimit, "call-limit", 0, "limit call depth")
	flag.Parse()

	var opts = []VMOption{
		WithOutput(os.Stdout),
		WithStackLimit(stackLimit),
		WithCallDepthLimit(callLimit),
	}
	if trace {
		opts = append(opts, WithLogf(log.Printf))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	switch {
	case repl:
		logs.ErrorIf(runREPL(ctx, vm))

	case inline != "" || file != "":
		src := inline
		if file != "" {
			b, err := ioutil.ReadFile(file)
			if err != nil {
				logs.Errorf("%v", err)
				break
			}
			src = string(b)
		}
		if stack, err := vm.Eval(ctx, src); err != nil {
			logs.Errorf("%v", err)
		} else {
			fmt.Println(vm.FormatStack(stack))
		}

	default:
		flag.Usage()
		os.Exit(2)
	}

	if dump {
		vm.Dump(os.Stderr)
	}
	os.Exit(logs.ExitCode())
}
