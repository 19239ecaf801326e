// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/intcode/internal"
)

// equateDepth bounds the chain of equates referring to other equates.
const equateDepth = 16

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"MODE_POSITION":  fmt.Sprintf("%d", MODE_POSITION),
	"MODE_IMMEDIATE": fmt.Sprintf("%d", MODE_IMMEDIATE),
}

// mnemonicMap maps assembler mnemonics to opcodes.
var mnemonicMap = map[string]Op{}

func init() {
	for _, op := range Ops {
		mnemonicMap[op.String()] = op
	}
}

// statement is a source line after the first pass: labels removed, and
// placed at its final address.
type statement struct {
	lineNo int
	line   string
	ip     int
	words  []string
}

// Assembler is a two pass assembler for intcode.
//
// Each line holds one statement, with an optional leading label:
//
//	loop:  in [x]              ; read a value into x
//	       eq [x] 8 [flag]     ; flag = (x == 8)
//	       out [flag]
//	       halt
//	x:     .data 0
//	flag:  .data $(LIMIT - 8)
//
// A bracketed operand is a position (address) parameter, a bare operand is
// an immediate. Result targets must be bracketed.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// splitWords splits a line at whitespace outside of () and [] groups.
func splitWords(line string) (words []string) {
	var depth int
	var word strings.Builder

	for _, r := range line {
		switch {
		case r == '(' || r == '[':
			depth++
		case (r == ')' || r == ']') && depth > 0:
			depth--
		case depth == 0 && (r == ' ' || r == '\t'):
			if word.Len() > 0 {
				words = append(words, word.String())
				word.Reset()
			}
			continue
		}
		word.WriteRune(r)
	}

	if word.Len() > 0 {
		words = append(words, word.String())
	}

	return
}

// defines iterates over every name that may appear in an expression.
func (asm *Assembler) defines() iter.Seq2[string, string] {
	labels := func(yield func(name, value string) bool) {
		for name, ip := range asm.Label {
			if !yield(name, strconv.Itoa(ip)) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(maps.All(asm.Equate), labels)
}

// identifiers returns the set of names that appear in an expression.
func identifiers(expr string) (names map[string]bool) {
	names = map[string]bool{}
	words := strings.FieldsFunc(expr, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	for _, word := range words {
		names[word] = true
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, depth int) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	names := identifiers(expr)
	for key, str := range asm.defines() {
		if !names[key] {
			continue
		}
		value, err := asm.resolve(str, depth+1)
		if err != nil {
			// Ignore equates that are not integers, or that depend on
			// themselves.
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// resolve returns the integer value of a word: a number, a label, an
// equate, or a $(...) expression.
func (asm *Assembler) resolve(word string, depth int) (value int64, err error) {
	if depth > equateDepth {
		err = ErrLabelMissing(word)
		return
	}

	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return asm.parenEval(word[2:len(word)-1], depth)
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err == nil {
		return
	}
	err = nil

	ip, ok := asm.Label[word]
	if ok {
		value = int64(ip)
		return
	}

	equate, ok := asm.Equate[word]
	if ok {
		return asm.resolve(equate, depth+1)
	}

	err = ErrLabelMissing(word)
	return
}

// valueOf returns the value of an operand word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	return asm.resolve(word, 0)
}

// operand decodes a parameter word into its mode and value.
func (asm *Assembler) operand(word string) (mode Mode, value int64, err error) {
	mode = MODE_IMMEDIATE
	if strings.HasPrefix(word, "[") && strings.HasSuffix(word, "]") {
		mode = MODE_POSITION
		word = strings.TrimSpace(word[1 : len(word)-1])
	}

	value, err = asm.valueOf(word)
	return
}

// width returns the number of cells a statement will generate.
func width(words []string) (cells int, err error) {
	if words[0] == ".data" {
		cells = len(words) - 1
		if cells == 0 {
			err = ErrDataMissing
		}
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	params, targets := op.Params()
	switch {
	case len(words)-1 < params+targets:
		err = ErrOpcodeValueMissing
	case len(words)-1 > params+targets:
		err = ErrOpcodeExtraArgs
	}

	cells = op.Width()
	return
}

// parseLine performs the first pass on a line: labels and equates are
// recorded, and the remaining statement is placed at ip.
func (asm *Assembler) parseLine(line string, lineno int, ip int) (stmt *statement, err error) {
	words := splitWords(line)

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = ip
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	stmt = &statement{lineNo: lineno, line: line, ip: ip, words: words}
	return
}

// parseWords performs the second pass on a statement, generating its cells.
func (asm *Assembler) parseWords(stmt *statement) (codes []int64, err error) {
	asm.Equate["LINENO"] = strconv.Itoa(stmt.lineNo)

	words := stmt.words

	if words[0] == ".data" {
		for _, word := range words[1:] {
			var value int64
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			codes = append(codes, value)
		}
		return
	}

	op := mnemonicMap[words[0]]
	params, _ := op.Params()

	var modes []Mode
	var cells []int64
	for n, word := range words[1:] {
		var mode Mode
		var value int64
		mode, value, err = asm.operand(word)
		if err != nil {
			return
		}
		if n >= params {
			// Result targets are always addresses.
			if mode != MODE_POSITION {
				err = ErrTargetInvalid
				return
			}
		} else {
			modes = append(modes, mode)
		}
		cells = append(cells, value)
	}

	codes = append([]int64{Encode(op, modes...)}, cells...)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// First pass: place statements, collect labels and equates.
	var stmts []*statement
	var ip int
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var stmt *statement
		stmt, err = asm.parseLine(line, lineno, ip)
		if err != nil {
			return
		}
		if stmt == nil {
			continue
		}

		var cells int
		cells, err = width(stmt.words)
		if err != nil {
			return
		}
		stmts = append(stmts, stmt)
		ip += cells
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Second pass: all labels are known, generate the cells.
	for _, stmt := range stmts {
		lineno = stmt.lineNo
		line = stmt.line

		var codes []int64
		codes, err = asm.parseWords(stmt)
		if err != nil {
			return
		}

		opcode := Opcode{LineNo: stmt.lineNo, Ip: stmt.ip, Words: stmt.words, Codes: codes}
		asm.Opcode = append(asm.Opcode, opcode)
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}
