package intcode

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var cell = translate.Cell

var (
	// Machine errors
	ErrProgramMalformed = errors.New(f("program malformed"))
	ErrOpcodeUnknown    = errors.New(f("opcode unknown"))
	ErrModeInvalid      = errors.New(f("parameter mode invalid"))
	ErrOutOfBounds      = errors.New(f("address out of bounds"))
	ErrInputExhausted   = errors.New(f("input exhausted"))
	ErrSearchExhausted  = errors.New(f("no noun and verb produce the result"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrDataMissing        = errors.New(f(".data without values"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrTargetInvalid      = errors.New(f("target must be a [position]"))
)

// ErrOpcode is an undecodable instruction cell.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("bad opcode %v in cell %v", cell(int64(eo)%100), cell(int64(eo)))
}

func (eo ErrOpcode) Unwrap() error {
	return ErrOpcodeUnknown
}

// ErrMode is an instruction cell with an unknown parameter mode digit.
type ErrMode int64

func (em ErrMode) Error() string {
	return f("bad parameter mode in cell %v", cell(int64(em)))
}

func (em ErrMode) Unwrap() error {
	return ErrModeInvalid
}

// ErrAddress is a memory access outside of memory.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %v out of bounds", cell(int64(ea)))
}

func (ea ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrParseNumber is a program cell that is not a number.
type ErrParseNumber struct {
	Index int
	Word  string
}

func (err ErrParseNumber) Error() string {
	return f("cell %v '%v' is not a number", cell(int64(err.Index)), err.Word)
}

func (err ErrParseNumber) Unwrap() error {
	return ErrProgramMalformed
}

// ErrParseExpression is an assembler $(...) that did not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrLabelMissing is a reference to an undefined label or equate.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrSyntax locates an assembler error in the source text.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", cell(int64(err.LineNo)), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrExecute locates a machine fault at the instruction that raised it.
type ErrExecute struct {
	Ip          int
	Instruction Instruction
	Err         error
}

func (err *ErrExecute) Error() string {
	if err.Instruction == nil {
		return f("ip %v %v", cell(int64(err.Ip)), err.Err)
	}
	return f("ip %v '%v' %v", cell(int64(err.Ip)), err.Instruction, err.Err)
}

func (err *ErrExecute) Unwrap() error {
	return err.Err
}
