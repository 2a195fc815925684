package ostream

// StreamBuffer is the growable byte container a TextWriter appends into.
// Reserve only ever increases capacity; Resize sets the logical size within
// that capacity. Bytes must return the storage for the current logical size,
// and a Reserve or Resize call may relocate that storage — consumers must
// re-fetch Bytes afterwards.
type StreamBuffer interface {
	Bytes() []byte
	Len() int
	Cap() int
	Reserve(n int, exact bool)
	Resize(n int)
}

// Buffer is the default StreamBuffer: a slice-backed container. Growth is
// amortized (capacity at least doubles) unless a reservation asks for an
// exact fit.
type Buffer struct {
	b []byte
}

var _ StreamBuffer = (*Buffer)(nil)

// NewBuffer creates a Buffer whose initial content is p. The slice is taken
// over, not copied.
func NewBuffer(p []byte) *Buffer { return &Buffer{b: p} }

// minBufferCap is the smallest capacity an amortized reservation allocates,
// so a stream of tiny writes does not start with a run of tiny relocations.
const minBufferCap = 64

// Bytes returns the logical content of the buffer.
func (b *Buffer) Bytes() []byte { return b.b }

// Len returns the logical size.
func (b *Buffer) Len() int { return len(b.b) }

// Cap returns the reserved capacity.
func (b *Buffer) Cap() int { return cap(b.b) }

// Reserve ensures capacity for at least n bytes, relocating the storage if
// needed. With exact false the new capacity is amortized to at least twice
// the old one, so a sequence of small reservations stays linear overall.
func (b *Buffer) Reserve(n int, exact bool) {
	if n <= cap(b.b) {
		return
	}
	if !exact {
		n = max(n, 2*cap(b.b), minBufferCap)
	}
	nb := make([]byte, len(b.b), n)
	copy(nb, b.b)
	b.b = nb
}

// Resize sets the logical size to n, reserving more capacity first when n
// exceeds it. Bytes between the old and new size within already-reserved
// capacity keep whatever was last written there.
func (b *Buffer) Resize(n int) {
	if n > cap(b.b) {
		b.Reserve(n, false)
	}
	b.b = b.b[:n]
}
