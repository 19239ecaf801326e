package intcode

import (
	"fmt"
)

// Instruction is a decoded instruction. The set of implementations is
// closed: Add, Multiply, Input, Output, JumpIfTrue, JumpIfFalse,
// LessThan, Equal and Terminate.
type Instruction interface {
	fmt.Stringer
	// Op returns the opcode of the instruction.
	Op() Op
	// Width returns the number of cells the instruction occupies.
	Width() int

	instruction()
}

// Add writes A + B to Dst.
type Add struct {
	A, B Parameter
	Dst  Target
}

// Multiply writes A * B to Dst.
type Multiply struct {
	A, B Parameter
	Dst  Target
}

// Input writes the next queued input value to Dst.
type Input struct {
	Dst Target
}

// Output emits the value of A.
type Output struct {
	A Parameter
}

// JumpIfTrue sets the instruction pointer to Addr when Cond is nonzero.
type JumpIfTrue struct {
	Cond, Addr Parameter
}

// JumpIfFalse sets the instruction pointer to Addr when Cond is zero.
type JumpIfFalse struct {
	Cond, Addr Parameter
}

// LessThan writes 1 to Dst if A < B, else 0.
type LessThan struct {
	A, B Parameter
	Dst  Target
}

// Equal writes 1 to Dst if A == B, else 0.
type Equal struct {
	A, B Parameter
	Dst  Target
}

// Terminate halts the machine.
type Terminate struct{}

func (Add) Op() Op         { return OP_ADD }
func (Multiply) Op() Op    { return OP_MULTIPLY }
func (Input) Op() Op       { return OP_INPUT }
func (Output) Op() Op      { return OP_OUTPUT }
func (JumpIfTrue) Op() Op  { return OP_JUMP_IF_TRUE }
func (JumpIfFalse) Op() Op { return OP_JUMP_IF_FALSE }
func (LessThan) Op() Op    { return OP_LESS_THAN }
func (Equal) Op() Op       { return OP_EQUAL }
func (Terminate) Op() Op   { return OP_TERMINATE }

func (ins Add) Width() int         { return ins.Op().Width() }
func (ins Multiply) Width() int    { return ins.Op().Width() }
func (ins Input) Width() int       { return ins.Op().Width() }
func (ins Output) Width() int      { return ins.Op().Width() }
func (ins JumpIfTrue) Width() int  { return ins.Op().Width() }
func (ins JumpIfFalse) Width() int { return ins.Op().Width() }
func (ins LessThan) Width() int    { return ins.Op().Width() }
func (ins Equal) Width() int       { return ins.Op().Width() }
func (ins Terminate) Width() int   { return ins.Op().Width() }

func (Add) instruction()         {}
func (Multiply) instruction()    {}
func (Input) instruction()       {}
func (Output) instruction()      {}
func (JumpIfTrue) instruction()  {}
func (JumpIfFalse) instruction() {}
func (LessThan) instruction()    {}
func (Equal) instruction()       {}
func (Terminate) instruction()   {}

func (ins Add) String() string      { return fmt.Sprintf("add %v %v %v", ins.A, ins.B, ins.Dst) }
func (ins Multiply) String() string { return fmt.Sprintf("mul %v %v %v", ins.A, ins.B, ins.Dst) }
func (ins Input) String() string    { return fmt.Sprintf("in %v", ins.Dst) }
func (ins Output) String() string   { return fmt.Sprintf("out %v", ins.A) }
func (ins JumpIfTrue) String() string {
	return fmt.Sprintf("jt %v %v", ins.Cond, ins.Addr)
}
func (ins JumpIfFalse) String() string {
	return fmt.Sprintf("jf %v %v", ins.Cond, ins.Addr)
}
func (ins LessThan) String() string { return fmt.Sprintf("lt %v %v %v", ins.A, ins.B, ins.Dst) }
func (ins Equal) String() string    { return fmt.Sprintf("eq %v %v %v", ins.A, ins.B, ins.Dst) }
func (ins Terminate) String() string {
	return "halt"
}

// Decode decodes the instruction at ip. Memory is only read.
func Decode(mem View, ip int) (ins Instruction, err error) {
	code, err := mem.Load(int64(ip))
	if err != nil {
		return
	}

	op, mode_a, mode_b := split(code)
	if !mode_a.Valid() || !mode_b.Valid() {
		err = ErrMode(code)
		return
	}

	width := op.Width()
	if width == 0 {
		err = ErrOpcode(code)
		return
	}

	// Operand cells follow the instruction cell.
	var cell [3]int64
	for n := range width - 1 {
		cell[n], err = mem.Load(int64(ip + 1 + n))
		if err != nil {
			return
		}
	}

	a := Parameter{Mode: mode_a, Value: cell[0]}
	b := Parameter{Mode: mode_b, Value: cell[1]}

	switch op {
	case OP_ADD:
		ins = Add{A: a, B: b, Dst: Target(cell[2])}
	case OP_MULTIPLY:
		ins = Multiply{A: a, B: b, Dst: Target(cell[2])}
	case OP_INPUT:
		ins = Input{Dst: Target(cell[0])}
	case OP_OUTPUT:
		ins = Output{A: a}
	case OP_JUMP_IF_TRUE:
		ins = JumpIfTrue{Cond: a, Addr: b}
	case OP_JUMP_IF_FALSE:
		ins = JumpIfFalse{Cond: a, Addr: b}
	case OP_LESS_THAN:
		ins = LessThan{A: a, B: b, Dst: Target(cell[2])}
	case OP_EQUAL:
		ins = Equal{A: a, B: b, Dst: Target(cell[2])}
	case OP_TERMINATE:
		ins = Terminate{}
	default:
		err = ErrOpcode(code)
	}

	return
}
