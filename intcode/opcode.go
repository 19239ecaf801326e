package intcode

import (
	"fmt"
)

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // Value is an address to dereference.
	MODE_IMMEDIATE = Mode(1) // Value is used literally.
)

// Valid returns true for a defined addressing mode.
func (mode Mode) Valid() bool {
	return mode == MODE_POSITION || mode == MODE_IMMEDIATE
}

func (mode Mode) String() string {
	switch mode {
	case MODE_POSITION:
		return "position"
	case MODE_IMMEDIATE:
		return "immediate"
	}
	return fmt.Sprintf("Mode(%d)", int(mode))
}

//go:generate go tool stringer -linecomment -type=Op

// Op is an instruction opcode, the low two decimal digits of an instruction cell.
type Op int

const (
	OP_ADD           = Op(1)  // add
	OP_MULTIPLY      = Op(2)  // mul
	OP_INPUT         = Op(3)  // in
	OP_OUTPUT        = Op(4)  // out
	OP_JUMP_IF_TRUE  = Op(5)  // jt
	OP_JUMP_IF_FALSE = Op(6)  // jf
	OP_LESS_THAN     = Op(7)  // lt
	OP_EQUAL         = Op(8)  // eq
	OP_TERMINATE     = Op(99) // halt
)

// Ops lists every defined opcode, in opcode order.
var Ops = []Op{
	OP_ADD,
	OP_MULTIPLY,
	OP_INPUT,
	OP_OUTPUT,
	OP_JUMP_IF_TRUE,
	OP_JUMP_IF_FALSE,
	OP_LESS_THAN,
	OP_EQUAL,
	OP_TERMINATE,
}

// Width returns the number of memory cells occupied by an instruction,
// or 0 for an undefined opcode.
func (op Op) Width() int {
	switch op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUAL:
		return 4
	case OP_INPUT, OP_OUTPUT:
		return 2
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		return 3
	case OP_TERMINATE:
		return 1
	}
	return 0
}

// Params returns the number of loaded parameters, and the number of
// output targets, of an opcode.
func (op Op) Params() (params int, targets int) {
	switch op {
	case OP_ADD, OP_MULTIPLY, OP_LESS_THAN, OP_EQUAL:
		return 2, 1
	case OP_INPUT:
		return 0, 1
	case OP_OUTPUT:
		return 1, 0
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		return 2, 0
	}
	return 0, 0
}

// Encode packs an opcode and its parameter modes into an instruction cell.
// modes[0] is the hundreds digit, modes[1] the thousands digit, and so on.
func Encode(op Op, modes ...Mode) (code int64) {
	code = int64(op)
	scale := int64(100)
	for _, mode := range modes {
		code += int64(mode) * scale
		scale *= 10
	}
	return
}

// split unpacks an instruction cell into its opcode and the two parameter
// modes the encoding defines.
func split(code int64) (op Op, mode_a, mode_b Mode) {
	op = Op(code % 100)
	mode_a = Mode((code / 100) % 10)
	mode_b = Mode((code / 1000) % 10)
	return
}

// Parameter is a resolved instruction operand.
type Parameter struct {
	Mode  Mode
	Value int64
}

// Load returns the value of the parameter. Position parameters are
// dereferenced; immediate parameters never touch memory.
func (p Parameter) Load(mem View) (value int64, err error) {
	switch p.Mode {
	case MODE_IMMEDIATE:
		value = p.Value
	case MODE_POSITION:
		value, err = mem.Load(p.Value)
	default:
		err = ErrModeInvalid
	}
	return
}

// String returns the assembler syntax of the parameter.
func (p Parameter) String() string {
	if p.Mode == MODE_IMMEDIATE {
		return fmt.Sprintf("%d", p.Value)
	}
	return fmt.Sprintf("[%d]", p.Value)
}

// Target is the address an instruction writes its result to.
type Target int64

// Write stores value at the target address.
func (t Target) Write(mem Memory, value int64) error {
	return mem.Store(int64(t), value)
}

// String returns the assembler syntax of the target.
func (t Target) String() string {
	return fmt.Sprintf("[%d]", int64(t))
}
