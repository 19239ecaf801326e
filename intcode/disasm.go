package intcode

import (
	"fmt"
	"io"
	"iter"
)

// Disassemble decodes instructions linearly from address 0, stopping at the
// first cell that does not decode.
func Disassemble(mem View) iter.Seq2[int, Instruction] {
	return func(yield func(ip int, ins Instruction) bool) {
		for ip := 0; ip < mem.Len(); {
			ins, err := Decode(mem, ip)
			if err != nil {
				return
			}
			if !yield(ip, ins) {
				return
			}
			ip += ins.Width()
		}
	}
}

// canonical decodes the instruction at ip only if it encodes back to the
// same cell, so that listing it loses nothing.
func canonical(mem View, ip int) (ins Instruction, ok bool) {
	ins, err := Decode(mem, ip)
	if err != nil {
		return
	}

	code, _ := mem.Load(int64(ip))

	var modes []Mode
	switch ins := ins.(type) {
	case Add:
		modes = []Mode{ins.A.Mode, ins.B.Mode}
	case Multiply:
		modes = []Mode{ins.A.Mode, ins.B.Mode}
	case LessThan:
		modes = []Mode{ins.A.Mode, ins.B.Mode}
	case Equal:
		modes = []Mode{ins.A.Mode, ins.B.Mode}
	case JumpIfTrue:
		modes = []Mode{ins.Cond.Mode, ins.Addr.Mode}
	case JumpIfFalse:
		modes = []Mode{ins.Cond.Mode, ins.Addr.Mode}
	case Output:
		modes = []Mode{ins.A.Mode}
	}

	ok = Encode(ins.Op(), modes...) == code
	return
}

// instructionSpans iterates over memory as (address, width) spans: one
// span per canonical instruction, and one cell spans for everything else.
func instructionSpans(mem View) iter.Seq2[int, int] {
	return func(yield func(ip int, width int) bool) {
		for ip := 0; ip < mem.Len(); {
			width := 1
			if ins, ok := canonical(mem, ip); ok {
				width = ins.Width()
			}
			if !yield(ip, width) {
				return
			}
			ip += width
		}
	}
}

// Listing writes memory as assembler source. Cells that do not decode to
// an instruction are listed as .data, so the listing assembles back to
// the same memory.
func Listing(output io.Writer, mem []int64) (err error) {
	view := Memory(mem)

	for ip := range instructionSpans(view) {
		var text string
		if ins, ok := canonical(view, ip); ok {
			text = ins.String()
		} else {
			text = fmt.Sprintf(".data %d", mem[ip])
		}
		_, err = fmt.Fprintf(output, "%-24s ; %04d\n", text, ip)
		if err != nil {
			return
		}
	}

	return
}
