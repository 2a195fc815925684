package ostream

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v4"
)

// Flags is the persistent formatting configuration bitset of a TextWriter.
// Oct, Dec and Hex double as control tokens for WriteFlags; as bits they
// record nothing beyond the base already held by the writer.
type Flags uint16

const (
	Boolalpha Flags = 1 << iota
	Dec
	Hex
	Oct
	Left
	Right
	Scientific
	Showbase
	Showpoint
	Showpos
	Skipws
	Uppercase
	Unitbuf
)

// WriteFlags interprets f as a control token rather than data. The base
// selectors switch the numeric base, Left and Right toggle justification
// (mutually exclusive, last write wins), and any other value is OR-ed into
// the flags bitset.
func (w *TextWriter) WriteFlags(f Flags) {
	switch f {
	case Oct:
		w.SetBase(8)
	case Dec:
		w.SetBase(10)
	case Hex:
		w.SetBase(16)
	case Left:
		w.flags |= Left
		w.flags &^= Right
	case Right:
		w.flags |= Right
		w.flags &^= Left
	default:
		w.flags |= f
	}
}

func (w *TextWriter) Flags() Flags       { return w.flags }
func (w *TextWriter) SetFlags(f Flags)   { w.flags = f }
func (w *TextWriter) Base() int          { return w.base }
func (w *TextWriter) SetBase(b int)      { w.base = b }
func (w *TextWriter) Precision() int     { return w.precision }
func (w *TextWriter) SetPrecision(p int) { w.precision = p }
func (w *TextWriter) Width() int         { return w.width }

// maxFieldWidth bounds the field width so it always survives the packed
// pattern-cache key intact.
const maxFieldWidth = 0xFFFF

// SetWidth sets the minimum field width for numeric output. Negative widths
// are treated as zero; widths beyond maxFieldWidth are capped.
func (w *TextWriter) SetWidth(n int) { w.width = min(max(n, 0), maxFieldWidth) }

// SetDecimalSeparator sets the character used as the decimal point in
// floating-point output.
func (w *TextWriter) SetDecimalSeparator(c byte) { w.decimalSep = c }

// SetThousandsSeparator sets the digit-grouping character. The value is
// carried as formatting state; digit grouping itself is not applied to
// numeric output.
func (w *TextWriter) SetThousandsSeparator(c byte) { w.thousandsSep = c }

func (w *TextWriter) DecimalSeparator() byte   { return w.decimalSep }
func (w *TextWriter) ThousandsSeparator() byte { return w.thousandsSep }

// --- format pattern synthesis ---

// fmtKind separates the integer and floating pattern spaces in the cache.
type fmtKind uint8

const (
	fmtInteger fmtKind = iota
	fmtFloat
)

// fmtKey packs exactly the formatting state that decides one synthesized
// pattern.
type fmtKey struct {
	kind  fmtKind
	flags Flags // only Left and Scientific participate
	base  uint8
	width uint16
	prec  uint16
}

// baseVerbs maps the active numeric base to its fmt verb. Hexadecimal output
// uses uppercase digits.
var baseVerbs = map[uint8]byte{8: 'o', 10: 'd', 16: 'X'}

// fmtCache holds synthesized patterns keyed by formatting state, so repeated
// writes under unchanged state cost one lookup instead of a rebuild. The map
// is shared by all instances and safe for concurrent readers.
var fmtCache = xsync.NewMap[fmtKey, string]()

func (w *TextWriter) fmtKeyFor(kind fmtKind) fmtKey {
	k := fmtKey{
		kind:  kind,
		flags: w.flags & (Left | Scientific),
		width: uint16(w.width),
	}
	if kind == fmtInteger {
		k.base = uint8(w.base)
	} else {
		k.prec = uint16(w.precision)
	}
	return k
}

// fmtPattern returns the fmt pattern for the writer's current state,
// synthesizing and caching it on first use.
func (w *TextWriter) fmtPattern(kind fmtKind) string {
	key := w.fmtKeyFor(kind)
	if p, ok := fmtCache.Load(key); ok {
		return p
	}
	p := synthesizePattern(key)
	fmtCache.Store(key, p)
	return p
}

// synthesizePattern assembles a short bounded pattern from the key:
// "%" [ "-" ] [ width ] ( baseVerb | "." precision ( "f" | "E" ) ).
func synthesizePattern(key fmtKey) string {
	p := make([]byte, 0, 16)
	p = append(p, '%')
	if key.flags&Left != 0 {
		p = append(p, '-')
	}
	if key.width > 0 {
		p = strconv.AppendUint(p, uint64(key.width), 10)
	}
	if key.kind == fmtInteger {
		verb, ok := baseVerbs[key.base]
		if !ok {
			verb = 'd'
		}
		p = append(p, verb)
	} else {
		p = append(p, '.')
		p = strconv.AppendUint(p, uint64(key.prec), 10)
		if key.flags&Scientific != 0 {
			p = append(p, 'E')
		} else {
			p = append(p, 'f')
		}
	}
	return string(p)
}

// --- formatted value writes ---

// writeInteger renders v with the synthesized integer pattern and appends the
// resulting text.
func (w *TextWriter) writeInteger(v any) {
	if w.err != nil {
		return
	}
	scratch := getScratch()
	b := fmt.Appendf((*scratch)[:0], w.fmtPattern(fmtInteger), v)
	w.writeBuffer(b)
	*scratch = b[:0]
	putScratch(scratch)
}

func (w *TextWriter) WriteInt32(v int32)   { w.writeInteger(v) }
func (w *TextWriter) WriteInt64(v int64)   { w.writeInteger(v) }
func (w *TextWriter) WriteUint32(v uint32) { w.writeInteger(v) }
func (w *TextWriter) WriteUint64(v uint64) { w.writeInteger(v) }

// writeFloat renders v with the active precision, in exponential notation
// when the Scientific flag is set. The decimal separator is substituted here,
// in the formatting step, never in the byte-copy path.
func (w *TextWriter) writeFloat(v float64) {
	if w.err != nil {
		return
	}
	scratch := getScratch()
	b := fmt.Appendf((*scratch)[:0], w.fmtPattern(fmtFloat), v)
	if w.decimalSep != '.' {
		if i := bytes.IndexByte(b, '.'); i >= 0 {
			b[i] = w.decimalSep
		}
	}
	w.writeBuffer(b)
	*scratch = b[:0]
	putScratch(scratch)
}

func (w *TextWriter) WriteFloat32(v float32) { w.writeFloat(float64(v)) }
func (w *TextWriter) WriteFloat64(v float64) { w.writeFloat(v) }

// WriteBool writes the literal text "true" or "false", with no quoting and
// no surrounding whitespace.
func (w *TextWriter) WriteBool(v bool) {
	if v {
		w.writeText("true")
	} else {
		w.writeText("false")
	}
}

// WriteRune appends the UTF-8 encoding of the code point, writing exactly as
// many bytes as that encoding requires (1-4).
func (w *TextWriter) WriteRune(r rune) {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	w.writeBuffer(buf[:n])
}

// Format renders pattern with fmt semantics directly into the stream. When
// the result does not fit it grows once for the known required size; the
// cursor advances by the bytes actually written, clamped to what remained if
// growth fell short. Returns the byte count the format required, which can
// exceed what was written, mirroring snprintf's would-have-written contract.
func (w *TextWriter) Format(pattern string, args ...any) int {
	if w.err != nil {
		return 0
	}
	scratch := getScratch()
	b := fmt.Appendf((*scratch)[:0], pattern, args...)
	size := len(b)
	if size > w.Remaining() {
		w.Overflow(size)
	}
	if n := min(size, w.Remaining()); n > 0 {
		w.writeRaw(b[:n])
	}
	*scratch = b[:0]
	putScratch(scratch)
	return size
}
