// Package trace provides sinks for the instruction trace of the
// CPU. Every traced instruction is written as two lines: the
// opcode and its mnemonic, followed by the registers at the time
// the opcode was fetched.
package trace

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/andybalholm/brotli"

	"github.com/thelolagemann/dmg/internal/cpu"
)

var _ cpu.Tracer = (*Writer)(nil)

// Writer is a cpu.Tracer that writes the trace as text. Write
// errors never reach the CPU, the first one is kept and
// returned by Err and Close.
type Writer struct {
	w       *bufio.Writer
	closers []io.Closer
	err     error
	count   uint64
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// NewFileSink creates the file at path and returns a Writer
// writing to it, brotli compressed if compress is true. The
// Writer must be closed to flush the trace.
func NewFileSink(path string, compress bool) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	if !compress {
		t := NewWriter(f)
		t.closers = []io.Closer{f}
		return t, nil
	}

	b := brotli.NewWriterLevel(f, brotli.DefaultCompression)
	t := NewWriter(b)
	t.closers = []io.Closer{b, f}
	return t, nil
}

// Trace implements cpu.Tracer.
func (t *Writer) Trace(opcode uint8, name string, regs cpu.Snapshot) {
	if t.err != nil {
		return
	}
	t.count++
	if _, err := fmt.Fprintf(t.w, "0x%02X %s\n%s\n", opcode, name, regs); err != nil {
		t.err = err
	}
}

// Count returns the number of instructions traced.
func (t *Writer) Count() uint64 {
	return t.count
}

// Err returns the first error encountered while writing.
func (t *Writer) Err() error {
	return t.err
}

// Close flushes the trace and closes the underlying file, if any.
func (t *Writer) Close() error {
	if err := t.w.Flush(); err != nil && t.err == nil {
		t.err = err
	}
	for _, c := range t.closers {
		if err := c.Close(); err != nil && t.err == nil {
			t.err = err
		}
	}
	t.closers = nil
	return t.err
}
