package intcode

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ParseProgram reads a comma-separated list of signed decimal integers.
// Whitespace around each cell is ignored.
func ParseProgram(input io.Reader) (program []int64, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	text := strings.TrimSpace(string(data))
	if len(text) == 0 {
		return
	}

	for n, word := range strings.Split(text, ",") {
		word = strings.TrimSpace(word)
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseNumber{Index: n, Word: word}
			return
		}
		program = append(program, value)
	}

	return
}

// ParseValues parses a list of input values separated by commas or whitespace.
func ParseValues(text string) (values []int64, err error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	for n, word := range words {
		var value int64
		value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseNumber{Index: n, Word: word}
			return
		}
		values = append(values, value)
	}

	return
}

// FormatProgram writes memory in the format read by ParseProgram.
func FormatProgram(output io.Writer, mem []int64) (err error) {
	words := make([]string, len(mem))
	for n, value := range mem {
		words[n] = strconv.FormatInt(value, 10)
	}

	_, err = io.WriteString(output, strings.Join(words, ",")+"\n")
	return
}
