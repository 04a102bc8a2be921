package manifest

import (
	"encoding/binary"
	"fmt"
)

// stringPrefix is the fixed part of a string descriptor payload.
type stringPrefix struct {
	id     uint8
	length uint16
}

func decodeStringPrefix(payload []byte) stringPrefix {
	return stringPrefix{
		id:     payload[0],
		length: binary.LittleEndian.Uint16(payload[1:3]),
	}
}

// resolveString looks up the string descriptor with the given id and
// returns an owned copy of its bytes. Id 0 means "no string" and
// resolves to ("", false) without error.
//
// A successful resolution consumes the descriptor: strings are
// single-use, and a second lookup for the same id fails with
// ErrStringNotFound unless the manifest carried a duplicate.
func resolveString(ix *index, stringID uint8) (string, bool, error) {
	if stringID == 0 {
		return "", false, nil
	}

	for _, r := range ix.records {
		if r.typ != TypeString {
			continue
		}
		prefix := decodeStringPrefix(r.payload())
		if prefix.id != stringID {
			continue
		}

		// Copy out of the borrowed manifest buffer; the record is
		// dropped here and the buffer belongs to the caller.
		raw := r.payload()[stringPrefixLen : stringPrefixLen+int(prefix.length)]
		value := string(raw)
		ix.remove(r)
		return value, true, nil
	}

	return "", false, fmt.Errorf("%w: id %d", ErrStringNotFound, stringID)
}
