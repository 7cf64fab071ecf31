package main

// builtin is a native routine, referenced by index from Code values.
type builtin struct {
	name string
	run  func(vm *VM)
}

var builtins []builtin

func init() {
	builtins = []builtin{
		{"print", (*VM).print},
		{"nl", (*VM).newline},
		{"stack", (*VM).printStack},
	}
}

// Name   Function
// print  write the top of the stack to the output, leaving it in place
func (vm *VM) print() {
	vm.need("print", 1)
	vm.write(formatValue(vm.syms, vm.peek(0), false))
}

// Name   Function
// nl     write a line break to the output
func (vm *VM) newline() { vm.write("\n") }

// Name   Function
// stack  write the whole stack to the output, leaving it in place
func (vm *VM) printStack() { vm.write(formatValues(vm.syms, vm.stack)) }
