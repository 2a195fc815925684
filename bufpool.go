package ostream

import "sync"

// scratchSize holds any single formatted numeric value at default width.
// Wide field widths may grow a scratch slice past this; oversized slices are
// not returned to the pool.
const scratchSize = 64

const maxPooledScratch = 1024

// scratchPool reuses the staging buffers numeric formatting renders into
// before the bytes are appended to the stream. This keeps the per-write
// allocation count at zero for common formatting state.
var scratchPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, scratchSize)
		return &b
	},
}

func getScratch() *[]byte { return scratchPool.Get().(*[]byte) }

func putScratch(b *[]byte) {
	if cap(*b) <= maxPooledScratch {
		scratchPool.Put(b)
	}
}
