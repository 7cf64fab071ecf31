/* Package main: a small stack language, compiled to a flat bytecode buffer.

Programs are whitespace separated tokens:

	123        an integer literal; only digits may start a number
	"text"     a string literal; "" inside it stands for one "
	:name      a symbol literal
	# ...      a comment, running to the end of the line
	{ ... }    a block: compiled once, pushed as a code value
	word       anything else: an operator, or a call to a defined word

Operators:

	+ - * /             integer arithmetic; + also joins strings
	< <= > >= =         comparison; = compares any two values
	. dup swap rot -rot stack shuffling
	not and or          logic; every value other than false counts as true
	exec                run a code value
	def                 ( code :name -- ) define a word
	if                  ( cond {then} {else} -- ) run one of two blocks
	while               ( {cond} {body} -- ) run body while cond is not false

Builtin words, which def may replace like any other:

	print   write the top of the stack
	nl      write a line break
	stack   write the whole stack

For example, this counts down from 3, printing each number:

	3 { dup 0 > } { print nl 1 - } while .

Compilation flattens nested blocks into one instruction buffer: each block's
body is emitted, followed by a return, as soon as the block closes, so blocks
always precede the code that refers to them and top-level code runs from the
end of the buffer. Calls push their address onto a return stack inside the
VM; no Go stack frame is held while a program runs.

Words, symbols, and strings are interned, so a call resolves its definition
by handle without rehashing any text.
*/
package main
