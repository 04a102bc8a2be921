package manifest

import "fmt"

// record is one indexed descriptor: its declared type and the borrowed
// bytes it covers (header included). Records live only for the duration
// of a single parse and are dropped from the index the moment their
// content is consumed.
type record struct {
	typ  DescType
	data []byte
}

// payload returns the bytes after the descriptor header.
func (r *record) payload() []byte {
	return r.data[DescHeaderLen:]
}

// index holds the descriptors found by one scan pass, in wire order.
// It is owned by a single Parse call; nothing about it is shared.
type index struct {
	records []*record
}

func (ix *index) add(r *record) {
	ix.records = append(ix.records, r)
}

// remove drops a consumed record. Order of the survivors is preserved.
func (ix *index) remove(r *record) {
	for i, have := range ix.records {
		if have == r {
			ix.records = append(ix.records[:i], ix.records[i+1:]...)
			return
		}
	}
}

func (ix *index) countType(t DescType) int {
	n := 0
	for _, r := range ix.records {
		if r.typ == t {
			n++
		}
	}
	return n
}

func (ix *index) firstOfType(t DescType) *record {
	for _, r := range ix.records {
		if r.typ == t {
			return r
		}
	}
	return nil
}

// identifyDescriptor validates the descriptor at the front of buf and
// registers it in the index. It returns the number of bytes the
// descriptor consumed; the next descriptor begins immediately after.
//
// A descriptor's declared size must fit the remaining buffer and must be
// at least the minimum for its type. Class descriptors are registered
// and consume their declared size but carry nothing this layer wants.
func identifyDescriptor(ix *index, buf []byte) (int, error) {
	if len(buf) < DescHeaderLen {
		return 0, fmt.Errorf("%w: %d bytes remain", ErrDescriptorTooShort, len(buf))
	}

	h := decodeDescHeader(buf)
	if h.Size == 0 {
		return 0, ErrZeroSizeDescriptor
	}
	if int(h.Size) > len(buf) {
		return 0, fmt.Errorf("%w: declared %d, remaining %d", ErrSizeOverflow, h.Size, len(buf))
	}

	switch h.Type {
	case TypeModule:
		if int(h.Size) < MinModuleDescLen {
			return 0, fmt.Errorf("%w: module descriptor %d", ErrSizeTooSmall, h.Size)
		}
	case TypeString:
		if int(h.Size) < MinStringDescLen {
			return 0, fmt.Errorf("%w: string descriptor %d", ErrSizeTooSmall, h.Size)
		}
		strLen := int(decodeStringPrefix(buf[DescHeaderLen:int(h.Size)]).length)
		if int(h.Size) < MinStringDescLen+strLen {
			return 0, fmt.Errorf("%w: string descriptor %d, needs %d",
				ErrSizeTooSmall, h.Size, MinStringDescLen+strLen)
		}
	case TypeCPort:
		if int(h.Size) < MinCPortDescLen {
			return 0, fmt.Errorf("%w: cport descriptor %d", ErrSizeTooSmall, h.Size)
		}
	case TypeFunction:
		if int(h.Size) < MinFunctionDescLen {
			return 0, fmt.Errorf("%w: function descriptor %d", ErrSizeTooSmall, h.Size)
		}
	case TypeClass:
		// Recognized but carries nothing for us; still indexed so the
		// leftover pass can log it.
	case TypeInvalid:
		return 0, fmt.Errorf("%w: type 0x%04x", ErrUnknownType, uint16(h.Type))
	default:
		return 0, fmt.Errorf("%w: type 0x%04x", ErrUnknownType, uint16(h.Type))
	}

	ix.add(&record{typ: h.Type, data: buf[:int(h.Size)]})
	return int(h.Size), nil
}
