// Package io provides output channel implementations for the hopvm machine.
package io

import (
	"io"

	"github.com/ezrec/hopvm/cpu"
)

// Flusher is implemented by buffered writers, ie bufio.Writer.
type Flusher interface {
	Flush() error
}

// Tape provides sequential output to an io.Writer. Every send is flushed
// before it returns.
type Tape struct {
	Output io.Writer

	sent int
}

var _ cpu.Channel = (*Tape)(nil)

// Rewind resets the sent byte count. The output itself can not be rewound.
func (tc *Tape) Rewind() {
	tc.sent = 0
}

// Sent returns the number of bytes sent since the last rewind.
func (tc *Tape) Sent() int {
	return tc.sent
}

// Send writes data to the output, and flushes it.
func (tc *Tape) Send(data []byte) (err error) {
	if tc.Output == nil {
		err = ErrChannelDetached
		return
	}

	n, err := tc.Output.Write(data)
	tc.sent += n
	if err != nil {
		return
	}
	if n != len(data) {
		err = ErrChannelShort
		return
	}

	flusher, ok := tc.Output.(Flusher)
	if ok {
		err = flusher.Flush()
	}

	return
}
