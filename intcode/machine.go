package intcode

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/intcode/io"
)

// Channel is an output channel interface.
type Channel io.Channel

// State is the run state of a machine.
type State int

const (
	STATE_RUNNING = State(0) // running
	STATE_HALTED  = State(1) // halted
)

func (state State) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	}
	return fmt.Sprintf("State(%d)", int(state))
}

// Machine is the simulation context for one intcode program.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory  // Program memory, fixed length.
	Ip     int     // Current instruction pointer.
	Input  Queue   // Pending input values.
	Output Channel // Receives each output value, may be nil.
	State  State   // Current run state.

	Ticks int // Instructions executed.
}

// NewMachine creates a machine running a copy of program, with inputs queued
// in supply order.
func NewMachine(program []int64, inputs ...int64) (m *Machine) {
	m = &Machine{
		Memory: Memory(slices.Clone(program)),
	}
	m.Input.Push(inputs...)

	return
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("   ip: %d\n", m.Ip)
	text += fmt.Sprintf("state: %v\n", m.State)
	text += fmt.Sprintf("ticks: %d\n", m.Ticks)
	text += fmt.Sprintf("input: %v\n", m.Input.Data)

	ins, err := Decode(m.Memory, m.Ip)
	if err != nil {
		text += fmt.Sprintf(" next: %v\n", err)
	} else {
		text += fmt.Sprintf(" next: %v\n", ins)
	}

	return
}

// Tick executes a single decode-execute cycle.
// The instruction pointer is advanced past the instruction before it is
// executed, so a taken jump replaces the advanced pointer.
// Tick on a halted machine does nothing.
func (m *Machine) Tick() (state State, err error) {
	if m.State == STATE_HALTED {
		return STATE_HALTED, nil
	}

	ip := m.Ip
	ins, err := Decode(m.Memory, ip)
	if err != nil {
		err = &ErrExecute{Ip: ip, Err: err}
		return m.State, err
	}

	if m.Verbose {
		log.Printf("%04d: %v", ip, ins)
	}

	m.Ip += ins.Width()

	err = m.Execute(ins)
	if err != nil {
		err = &ErrExecute{Ip: ip, Instruction: ins, Err: err}
		return m.State, err
	}

	m.Ticks++

	return m.State, nil
}

// Run ticks the machine until it halts, or until the first fault.
func (m *Machine) Run() (err error) {
	for {
		var state State
		state, err = m.Tick()
		if err != nil || state == STATE_HALTED {
			return
		}
	}
}

// Execute performs the effect of a single decoded instruction.
func (m *Machine) Execute(ins Instruction) (err error) {
	mem := m.Memory

	switch ins := ins.(type) {
	case Add:
		var a, b int64
		if a, b, err = load2(mem, ins.A, ins.B); err != nil {
			return
		}
		err = ins.Dst.Write(mem, a+b)
	case Multiply:
		var a, b int64
		if a, b, err = load2(mem, ins.A, ins.B); err != nil {
			return
		}
		err = ins.Dst.Write(mem, a*b)
	case Input:
		value, ok := m.Input.Pop()
		if !ok {
			err = ErrInputExhausted
			return
		}
		err = ins.Dst.Write(mem, value)
	case Output:
		var value int64
		value, err = ins.A.Load(mem)
		if err != nil {
			return
		}
		if m.Verbose {
			log.Printf("intcode: output %d", value)
		}
		if m.Output != nil {
			err = m.Output.Send(value)
		}
	case JumpIfTrue:
		var cond, addr int64
		if cond, addr, err = load2(mem, ins.Cond, ins.Addr); err != nil {
			return
		}
		if cond != 0 {
			err = m.jump(addr)
		}
	case JumpIfFalse:
		var cond, addr int64
		if cond, addr, err = load2(mem, ins.Cond, ins.Addr); err != nil {
			return
		}
		if cond == 0 {
			err = m.jump(addr)
		}
	case LessThan:
		var a, b int64
		if a, b, err = load2(mem, ins.A, ins.B); err != nil {
			return
		}
		err = ins.Dst.Write(mem, flag(a < b))
	case Equal:
		var a, b int64
		if a, b, err = load2(mem, ins.A, ins.B); err != nil {
			return
		}
		err = ins.Dst.Write(mem, flag(a == b))
	case Terminate:
		m.State = STATE_HALTED
		if m.Verbose {
			log.Printf("intcode: halted after %d ticks", m.Ticks+1)
		}
	default:
		err = errors.Join(ErrOpcodeUnknown, fmt.Errorf("%T", ins))
	}

	return
}

// jump sets the instruction pointer, which must address memory.
func (m *Machine) jump(addr int64) (err error) {
	if addr < 0 || addr >= int64(len(m.Memory)) {
		err = ErrAddress(addr)
		return
	}

	m.Ip = int(addr)
	return
}

// load2 loads a pair of parameters.
func load2(mem View, pa, pb Parameter) (a, b int64, err error) {
	a, err = pa.Load(mem)
	if err != nil {
		return
	}
	b, err = pb.Load(mem)
	return
}

// flag converts a comparison result to its memory representation.
func flag(cond bool) int64 {
	if cond {
		return 1
	}
	return 0
}
