package intcode

import (
	"strconv"
	"strings"
	"unicode"
)

// Noun and verb cells patched by a search.
const (
	ADDR_NOUN = int64(1)
	ADDR_VERB = int64(2)
)

// SearchTicks bounds each candidate run of a search.
const SearchTicks = 1 << 20

// Patch overrides a memory cell before a run.
type Patch struct {
	Addr  int64
	Value int64
}

// Apply stores the patch value, or returns ErrAddress if the address is
// outside memory.
func (p Patch) Apply(mem Memory) error {
	return mem.Store(p.Addr, p.Value)
}

func (p Patch) String() string {
	return strconv.FormatInt(p.Addr, 10) + "=" + strconv.FormatInt(p.Value, 10)
}

// ParsePatches parses address=value pairs separated by commas or whitespace.
func ParsePatches(text string) (patches []Patch, err error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	for n, word := range words {
		addr, value, ok := strings.Cut(word, "=")
		if !ok {
			err = ErrParseNumber{Index: n, Word: word}
			return
		}

		var patch Patch
		patch.Addr, err = strconv.ParseInt(addr, 10, 64)
		if err != nil {
			err = ErrParseNumber{Index: n, Word: word}
			return
		}
		patch.Value, err = strconv.ParseInt(value, 10, 64)
		if err != nil {
			err = ErrParseNumber{Index: n, Word: word}
			return
		}

		patches = append(patches, patch)
	}

	return
}

// Search finds the noun and verb, each in [0, limit), which leave result in
// cell 0 when patched into cells 1 and 2 of a fresh copy of program.
// Candidates that fault, or run past SearchTicks, do not match.
// Returns ErrSearchExhausted if no pair matches.
func Search(program []int64, limit int64, result int64) (noun, verb int64, err error) {
	if len(program) <= int(ADDR_VERB) {
		err = ErrAddress(ADDR_VERB)
		return
	}

	for noun = 0; noun < limit; noun++ {
		for verb = 0; verb < limit; verb++ {
			cell, ok := try(program, noun, verb)
			if ok && cell == result {
				return
			}
		}
	}

	err = ErrSearchExhausted
	return
}

// try runs a copy of program with a noun and verb, returning cell 0 if the
// run halted.
func try(program []int64, noun, verb int64) (cell int64, ok bool) {
	m := NewMachine(program)
	m.Memory[ADDR_NOUN] = noun
	m.Memory[ADDR_VERB] = verb

	for m.State == STATE_RUNNING {
		if m.Ticks >= SearchTicks {
			return
		}
		_, err := m.Tick()
		if err != nil {
			return
		}
	}

	cell, ok = m.Memory[0], true
	return
}
