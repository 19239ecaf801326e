// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs assembled intcode programs, tracking source lines.
package emulator

import (
	"log"
	"slices"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/io"
)

// Emulator state. Machine + program listing + output tape.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*intcode.Machine                  // Reference to the machine simulation.
	Program          *intcode.Program // Reference to the currently running program listing.
	Inputs           []int64          // Input values queued on each reset.

	Tape io.Tape // Tape output channel.
}

// NewEmulator creates a new emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: intcode.NewMachine(nil),
		Program: &intcode.Program{},
	}

	emu.Machine.Output = &emu.Tape

	return
}

// Reset reloads memory from the program, requeues the inputs, and rewinds
// the tape.
func (emu *Emulator) Reset() (err error) {
	m := emu.Machine

	m.Memory = intcode.Memory(emu.Program.Memory())
	m.Ip = 0
	m.State = intcode.STATE_RUNNING
	m.Ticks = 0
	m.Input.Reset()
	m.Input.Push(slices.Clone(emu.Inputs)...)
	m.Output.Rewind()
	m.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: reset, %d cells, %d inputs", len(m.Memory), m.Input.Len())
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return emu.Machine.Ip
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Machine.Ip)
	if dbg.Opcode == nil {
		return 0
	}
	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	ip := emu.Machine.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	state, err := emu.Machine.Tick()
	if err != nil {
		return
	}

	done = state == intcode.STATE_HALTED
	return
}

// Run ticks the emulator until the program halts, or faults.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
