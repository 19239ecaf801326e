package intcode

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and
// generated memory cells.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []int64
}

// Program is an assembled intcode program.
type Program struct {
	Opcodes []Opcode
}

type Debug struct {
	*Opcode
	Index int
}

// Debug finds the source line that generated the cell at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Memory returns the initial memory image of the program.
func (prog *Program) Memory() (mem []int64) {
	for _, code := range prog.Codes() {
		mem = append(mem, code)
	}

	return
}

// Codes iterates over every cell of the program, by address.
func (prog *Program) Codes() iter.Seq2[int, int64] {
	return func(yield func(ip int, code int64) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Ip+n, code) {
					return
				}
			}
		}
	}
}

// NewProgram wraps a raw memory image as a program with one opcode per
// decodable instruction, so that Debug can locate faults by instruction.
func NewProgram(mem []int64) (prog *Program) {
	prog = &Program{}

	for ip, width := range instructionSpans(Memory(mem)) {
		prog.Opcodes = append(prog.Opcodes, Opcode{
			LineNo: len(prog.Opcodes) + 1,
			Ip:     ip,
			Codes:  mem[ip : ip+width],
		})
	}

	return
}
