package ostream

import (
	"encoding/binary"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default byte order for primitive writes. The in-memory
	// format this stream produces is position-addressed, so the order must be
	// fixed rather than native to keep output portable across architectures.
	Order binary.ByteOrder = BE
)

// DefaultAlignment caps the grain a fixed-width primitive write must be
// aligned to. Values smaller than this align to their own size.
const DefaultAlignment = 8

// Roundup rounds n up to the nearest multiple of align. The grain does not
// need to be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + align - 1) / align * align }
