// Package intcode implements the intcode virtual machine and its assembler.
//
// An intcode program is a sequence of signed integers that doubles as the
// machine's memory. The low two decimal digits of an instruction cell select
// the opcode, and the hundreds and thousands digits select the addressing
// mode of the first two parameters. A third parameter, when present, is
// always an address to write the result to.
//
// The Machine owns memory, the instruction pointer, and a FIFO of input
// values. Each Tick decodes one instruction, advances the instruction
// pointer past it, and executes it. Jumps overwrite the advanced pointer.
//
// The assembler provides a small assembly language for intcode, with
// labels, equates, and compile-time $(...) expression evaluation.
package intcode
