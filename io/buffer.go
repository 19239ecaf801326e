package io

// Buffer captures output values in memory, in order.
type Buffer struct {
	Capacity int // Maximum values held, 0 for unbounded.

	Data []int64
}

var _ Channel = (*Buffer)(nil)

// Rewind discards all captured values.
func (buf *Buffer) Rewind() {
	buf.Data = buf.Data[:0]
}

// Send appends a value.
// Returns ErrChannelFull if the buffer has reached capacity.
func (buf *Buffer) Send(value int64) (err error) {
	if buf.Capacity > 0 && len(buf.Data) >= buf.Capacity {
		err = ErrChannelFull
		return
	}

	buf.Data = append(buf.Data, value)

	return
}
