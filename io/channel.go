// Package io provides output channel implementations for the intcode
// machine: sequential text output (Tape) and in-memory capture (Buffer).
package io

// Channel defines the interface for all output channels.
// A machine sends one value per executed output instruction, in
// execution order.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single value to the channel.
	Send(value int64) error
}
