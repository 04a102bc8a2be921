package bus

import "math/bits"

// DefaultCPortMax bounds the host-side cport id space. Ids are handed
// out lowest-free-first, so the first allocation on a fresh host is
// always id 0.
const DefaultCPortMax = 128

// cportIDBad marks a connection whose id has been returned to the pool.
const cportIDBad uint16 = 0xffff

// cportMap is a bitmap allocator over [0, max). Callers serialize
// access; the owning Host holds the lock.
type cportMap struct {
	words []uint64
	max   uint16
}

func newCPortMap(max uint16) *cportMap {
	return &cportMap{
		words: make([]uint64, (int(max)+63)/64),
		max:   max,
	}
}

// allocate returns the lowest free id, or ErrCPortExhausted.
func (m *cportMap) allocate() (uint16, error) {
	for w, word := range m.words {
		if word == ^uint64(0) {
			continue
		}
		bit := bits.TrailingZeros64(^word)
		id := uint16(w*64 + bit)
		if id >= m.max {
			break
		}
		m.words[w] = word | 1<<bit
		return id, nil
	}
	return cportIDBad, ErrCPortExhausted
}

// free returns an id to the pool. Freeing an id that is not currently
// allocated reports false and changes nothing; the caller decides how
// loudly to complain.
func (m *cportMap) free(id uint16) bool {
	if id >= m.max {
		return false
	}
	w, bit := int(id)/64, uint(id)%64
	if m.words[w]&(1<<bit) == 0 {
		return false
	}
	m.words[w] &^= 1 << bit
	return true
}

// used counts currently allocated ids.
func (m *cportMap) used() int {
	n := 0
	for _, word := range m.words {
		n += bits.OnesCount64(word)
	}
	return n
}
