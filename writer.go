package ostream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer serializes fixed-width values into an unstructured memory block it
// does not own. Packing binary file or wire data can be done this way. The
// caller is responsible for keeping writes aligned, either by ordering them
// accordingly or by calling Align; every primitive write checks that the
// cursor satisfies the value's natural alignment and panics on misuse, since
// unaligned access is orders of magnitude slower and crashes outright on some
// architectures. Writes that would run past the end of the region never touch
// memory: they latch a *BoundsError instead. After the first error all
// subsequent write operations become no-ops.
//
// Example:
//
//	w := ostream.NewWriter(block)
//	w.WriteBool(flag)
//	w.Align(4)
//	w.WriteUint32(id)
//	w.Write(payload)
//	out := w.Bytes()
type Writer struct {
	buf   []byte // non-owning view over externally owned storage
	pos   int    // offset of the next write, 0 <= pos <= len(buf)
	order binary.ByteOrder
	err   error // first error encountered. Subsequent writes become no-ops.
}

// NewWriter creates a Writer over the given region. The region may be empty.
func NewWriter(p []byte) *Writer {
	return &Writer{buf: p, order: Order}
}

// WithByteOrder allows setting a custom byte order and returns
// the configured writer for chaining.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.order = order
	return w
}

// Link rebinds the view to a new region. The cursor is left where it was;
// callers that need it moved Seek explicitly.
func (w *Writer) Link(p []byte) { w.buf = p }

// Pos returns the current write position. Usually this is also the number of
// bytes written.
func (w *Writer) Pos() int { return w.pos }

// StreamSize returns the number of bytes written so far.
func (w *Writer) StreamSize() int { return w.pos }

// Size returns the capacity of the linked region.
func (w *Writer) Size() int { return len(w.buf) }

// Remaining returns the number of bytes left in the write buffer.
func (w *Writer) Remaining() int { return len(w.buf) - w.pos }

// Bytes returns a view of the written prefix of the region.
func (w *Writer) Bytes() []byte { return w.buf[:w.pos] }

// Err returns the first error encountered, if any.
func (w *Writer) Err() error { return w.err }

// Reset moves the cursor back to the start and clears the error state so the
// region can be reused.
func (w *Writer) Reset() {
	w.pos = 0
	w.err = nil
}

// Seek moves the write cursor to pos. Seeking past the end of the region is a
// bounds violation.
func (w *Writer) Seek(pos int) error {
	if pos < 0 || pos > len(w.buf) {
		w.setError(&BoundsError{Op: "seek", Label: "binary", Pos: w.pos, Requested: pos, Remaining: w.Remaining()})
		return w.err
	}
	w.pos = pos
	return nil
}

// Skip advances the cursor n bytes without writing anything.
func (w *Writer) Skip(n int) error { return w.Seek(w.pos + n) }

// Aligned reports whether the cursor is aligned on grain.
func (w *Writer) Aligned(grain int) bool { return grain < 2 || w.pos%grain == 0 }

// Align advances the cursor to the next multiple of grain. Nothing is written
// to the skipped bytes; their contents are whatever was there before.
func (w *Writer) Align(grain int) error {
	if grain < 2 {
		return w.err
	}
	return w.Seek(Roundup(w.pos, grain))
}

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// reserve validates alignment and capacity for a fixed-width write of size
// bytes. Misalignment is caller misuse and panics; insufficient room latches
// a bounds error and reports false.
func (w *Writer) reserve(op string, size int) bool {
	if w.err != nil {
		return false
	}
	if grain := min(size, DefaultAlignment); w.pos%grain != 0 {
		panic(fmt.Sprintf("ostream: %s at position %d violates %d-byte alignment", op, w.pos, grain))
	}
	if w.Remaining() < size {
		w.setError(&BoundsError{Op: op, Label: "binary", Pos: w.pos, Requested: size, Remaining: w.Remaining()})
		return false
	}
	return true
}

// Write copies p into the region at the cursor and advances past it. The copy
// is all or nothing: when p does not fit, no bytes are written and the bounds
// error is both latched and returned.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	if w.Remaining() < len(p) {
		w.setError(&BoundsError{Op: "write", Label: "binary", Pos: w.pos, Requested: len(p), Remaining: w.Remaining()})
		return 0, w.err
	}
	w.writeRaw(p)
	return len(p), nil
}

// WriteString implements the io.StringWriter interface with the same
// all-or-nothing contract as Write.
func (w *Writer) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	if w.Remaining() < len(s) {
		w.setError(&BoundsError{Op: "write", Label: "binary", Pos: w.pos, Requested: len(s), Remaining: w.Remaining()})
		return 0, w.err
	}
	copy(w.buf[w.pos:], s)
	w.pos += len(s)
	return len(s), nil
}

// writeRaw copies p at the cursor with no gating. Callers guarantee p fits.
func (w *Writer) writeRaw(p []byte) {
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
}

// --- Primitive Write Operations ---

func (w *Writer) WriteBool(v bool) {
	if !w.reserve("bool", 1) {
		return
	}
	if v {
		w.buf[w.pos] = 1
	} else {
		w.buf[w.pos] = 0
	}
	w.pos++
}

// WriteByte implements the io.ByteWriter interface.
func (w *Writer) WriteByte(c byte) error {
	if !w.reserve("byte", 1) {
		return w.err
	}
	w.buf[w.pos] = c
	w.pos++
	return nil
}

func (w *Writer) WriteUint8(v uint8) {
	if !w.reserve("uint8", 1) {
		return
	}
	w.buf[w.pos] = v
	w.pos++
}

func (w *Writer) WriteUint16(v uint16) {
	if !w.reserve("uint16", 2) {
		return
	}
	w.order.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

func (w *Writer) WriteUint32(v uint32) {
	if !w.reserve("uint32", 4) {
		return
	}
	w.order.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

func (w *Writer) WriteUint64(v uint64) {
	if !w.reserve("uint64", 8) {
		return
	}
	w.order.PutUint64(w.buf[w.pos:], v)
	w.pos += 8
}

func (w *Writer) WriteInt8(v int8) {
	if !w.reserve("int8", 1) {
		return
	}
	w.buf[w.pos] = uint8(v)
	w.pos++
}

func (w *Writer) WriteInt16(v int16) {
	if !w.reserve("int16", 2) {
		return
	}
	w.order.PutUint16(w.buf[w.pos:], uint16(v))
	w.pos += 2
}

func (w *Writer) WriteInt32(v int32) {
	if !w.reserve("int32", 4) {
		return
	}
	w.order.PutUint32(w.buf[w.pos:], uint32(v))
	w.pos += 4
}

func (w *Writer) WriteInt64(v int64) {
	if !w.reserve("int64", 8) {
		return
	}
	w.order.PutUint64(w.buf[w.pos:], uint64(v))
	w.pos += 8
}

func (w *Writer) WriteFloat32(v float32) {
	if !w.reserve("float32", 4) {
		return
	}
	w.order.PutUint32(w.buf[w.pos:], math.Float32bits(v))
	w.pos += 4
}

func (w *Writer) WriteFloat64(v float64) {
	if !w.reserve("float64", 8) {
		return
	}
	w.order.PutUint64(w.buf[w.pos:], math.Float64bits(v))
	w.pos += 8
}

// WriteRune writes the raw code point as a fixed-width 32-bit value. The
// UTF-8 transformation belongs to the text layer; the binary layer keeps the
// value round-trippable as-is.
func (w *Writer) WriteRune(r rune) {
	if !w.reserve("rune", 4) {
		return
	}
	w.order.PutUint32(w.buf[w.pos:], uint32(r))
	w.pos += 4
}
