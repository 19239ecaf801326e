package io

import (
	"fmt"
	"io"
)

// Tape writes each value as a signed decimal line to Output.
type Tape struct {
	Output io.Writer

	Count int // Values written since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind is not possible on a tape; only the counter is reset.
func (tc *Tape) Rewind() {
	tc.Count = 0
}

// Send writes a value, followed by a newline.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelClose
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	if err != nil {
		return
	}

	tc.Count++

	return
}
