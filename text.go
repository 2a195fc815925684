package ostream

// TextWriter formats values as human-readable text and appends them through
// the Writer contract, growing its owned buffer transparently whenever a
// write needs more room than remains. The embedded Writer is a view over the
// owned buffer's storage; every operation that may relocate that storage
// re-links the view before returning, so the view is never observably stale.
//
// The formatting state (base, width, precision, justification, separators)
// persists across writes until explicitly changed; Flush does not touch it.
//
// The embedded Writer remains accessible for interleaving pre-serialized
// binary records with formatted text, e.g. write a length prefix, Align,
// then continue with text. Instances are not safe for concurrent use.
type TextWriter struct {
	Writer
	buf StreamBuffer // owned growable storage; nil when linked to a fixed region

	flags        Flags
	base         int
	precision    int
	width        int
	decimalSep   byte
	thousandsSep byte
}

// NewTextWriter creates a TextWriter with an empty owned buffer.
func NewTextWriter() *TextWriter {
	return NewTextWriterBuffer(NewBuffer(nil))
}

// NewTextWriterString creates a TextWriter whose buffer starts out holding s,
// with the cursor at its end so that subsequent writes append.
func NewTextWriterString(s string) *TextWriter {
	w := NewTextWriterBuffer(NewBuffer([]byte(s)))
	w.pos = w.buf.Len()
	return w
}

// NewTextWriterBuffer creates a TextWriter over a caller-supplied growable
// container. The container must not be mutated by anyone else while the
// writer is live.
func NewTextWriterBuffer(b StreamBuffer) *TextWriter {
	w := &TextWriter{
		buf:          b,
		base:         10,
		precision:    2,
		decimalSep:   '.',
		thousandsSep: ',',
	}
	w.order = Order
	w.Writer.Link(b.Bytes())
	return w
}

// Link binds the writer to a fixed external region instead of an owned
// buffer. In this mode growth is impossible: a write needing more room than
// remains fails with a bounds violation, never writing out of range.
func (w *TextWriter) Link(p []byte) {
	w.buf = nil
	w.Writer.Link(p)
}

// Overflow attempts to create room for at least n more bytes, growing the
// owned buffer to pos+n and re-linking the internal view onto the possibly
// relocated storage. The cursor is preserved. If growth cannot produce the
// room (fixed region), the bounds failure is latched. Returns Remaining().
func (w *TextWriter) Overflow(n int) int {
	if n > w.Remaining() && w.buf != nil {
		w.buf.Reserve(w.pos+n, false)
		w.buf.Resize(w.pos + n)
		w.Writer.Link(w.buf.Bytes())
	}
	if n > w.Remaining() {
		w.setError(&BoundsError{Op: "write", Label: "text", Pos: w.pos, Requested: n, Remaining: w.Remaining()})
	}
	return w.Remaining()
}

// writeBuffer is the core append loop: write as much as currently fits, ask
// Overflow for the rest, repeat. A zero-progress overflow stops the loop with
// the bounds failure latched rather than spinning.
func (w *TextWriter) writeBuffer(p []byte) {
	for len(p) > 0 && w.err == nil {
		if n := min(w.Remaining(), len(p)); n > 0 {
			w.writeRaw(p[:n])
			p = p[n:]
			continue
		}
		if w.Overflow(len(p)) == 0 {
			return
		}
	}
}

// writeText is writeBuffer for string payloads, avoiding a []byte conversion.
func (w *TextWriter) writeText(s string) {
	for len(s) > 0 && w.err == nil {
		if n := min(w.Remaining(), len(s)); n > 0 {
			copy(w.Writer.buf[w.pos:], s[:n])
			w.pos += n
			s = s[n:]
			continue
		}
		if w.Overflow(len(s)) == 0 {
			return
		}
	}
}

// Write copies p into the stream with no formatting, growing as needed. On a
// fixed region that cannot hold all of p, nothing is written and the bounds
// error is returned. This is the path for embedding pre-serialized blobs in
// a textual stream.
func (w *TextWriter) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	if w.Remaining() < len(p) && w.Overflow(len(p)) < len(p) {
		return 0, w.err
	}
	w.writeRaw(p)
	return len(p), nil
}

// WriteString implements io.StringWriter with the same contract as Write:
// the copy is all or nothing. Unlike the formatted writes, which degrade to
// partial progress on a saturating fixed region, a raw string value that
// cannot fit in full is dropped and the bounds error returned.
func (w *TextWriter) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	if w.Remaining() < len(s) && w.Overflow(len(s)) < len(s) {
		return 0, w.err
	}
	copy(w.Writer.buf[w.pos:], s)
	w.pos += len(s)
	return len(s), nil
}

// WriteByte writes a single raw character, implementing io.ByteWriter.
func (w *TextWriter) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	if w.Remaining() >= 1 || w.Overflow(1) >= 1 {
		w.Writer.buf[w.pos] = c
		w.pos++
	}
	return w.err
}

// Flush truncates the owned buffer's logical size down to the cursor,
// dropping reserved-but-unwritten tail capacity from the logical view. The
// physical capacity stays reserved. Calling Flush again without intervening
// writes is a no-op; linked fixed regions are unaffected.
func (w *TextWriter) Flush() {
	if w.buf == nil {
		return
	}
	w.buf.Resize(w.pos)
	w.Writer.Link(w.buf.Bytes())
}

// String returns the written text.
func (w *TextWriter) String() string { return string(w.Bytes()) }
