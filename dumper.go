package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

type vmDumper struct {
	vm  *VM
	out io.Writer

	addrWidth int
	blocks    map[int]struct{}
}

func (dump vmDumper) dump() {
	fmt.Fprintf(dump.out, "# VM Dump\n")
	fmt.Fprintf(dump.out, "  prog: %v\n", dump.vm.prog)
	fmt.Fprintf(dump.out, "  stack: %v\n", formatValues(dump.vm.syms, dump.vm.stack))
	fmt.Fprintf(dump.out, "  rstack: %v\n", dump.vm.rstack)
	dump.dumpDefs()
	dump.dumpProgram()
}

func (dump *vmDumper) dumpDefs() {
	names := make([]string, 0, len(dump.vm.defs))
	codes := make(map[string]Code, len(dump.vm.defs))
	for sym, code := range dump.vm.defs {
		name := dump.vm.syms.string(sym)
		names = append(names, name)
		codes[name] = code
	}
	sort.Strings(names)
	fmt.Fprintf(dump.out, "# Definitions\n")
	for _, name := range names {
		fmt.Fprintf(dump.out, "  %v %v\n", name, formatCode(codes[name]))
	}
}

// dumpProgram disassembles the instruction buffer, marking the start of every
// block referenced by a push, and the entry of the last compiled program.
func (dump *vmDumper) dumpProgram() {
	ops := dump.vm.ops
	if dump.addrWidth == 0 {
		dump.addrWidth = len(strconv.Itoa(len(ops)))
	}
	if dump.blocks == nil {
		dump.scanBlocks()
	}

	fmt.Fprintf(dump.out, "# Program\n")
	var buf strings.Builder
	for addr, op := range ops {
		switch _, isBlock := dump.blocks[addr]; {
		case addr == dump.vm.entry:
			fmt.Fprintf(dump.out, "# Entry @%v\n", addr)
		case isBlock:
			fmt.Fprintf(dump.out, "# Block @%v\n", addr)
		}
		buf.Reset()
		fmt.Fprintf(&buf, "  @%*v %v", dump.addrWidth, addr, formatOp(dump.vm.syms, op))
		if addr == dump.vm.prog {
			buf.WriteString("  <-- prog")
		}
		buf.WriteByte('\n')
		io.WriteString(dump.out, buf.String())
	}
}

func (dump *vmDumper) scanBlocks() {
	dump.blocks = make(map[int]struct{})
	for _, op := range dump.vm.ops {
		if op.Code != OpPush {
			continue
		}
		if code, ok := op.Value.Code(); ok && code.kind == CodeCustom {
			dump.blocks[code.addr] = struct{}{}
		}
	}
	for _, code := range dump.vm.defs {
		if code.kind == CodeCustom {
			dump.blocks[code.addr] = struct{}{}
		}
	}
}

// Dump writes a description of the VM's state and program to w.
func (vm *VM) Dump(w io.Writer) {
	vmDumper{vm: vm, out: w}.dump()
}
