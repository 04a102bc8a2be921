package bus

import (
	"encoding/binary"
	"fmt"
)

// Every operation message, request and response alike, starts with this
// header. Numeric fields are little endian; the pad bytes must be zero
// on send and are ignored on receive. Responses echo the request id and
// set the high bit of the type.
const (
	msgHeaderLen = 8

	// ResponseTypeFlag distinguishes a response from a request.
	ResponseTypeFlag uint8 = 0x80
)

type msgHeader struct {
	Size uint16
	ID   uint16
	Type uint8
}

func encodeMsg(id uint16, opType uint8, payload []byte) []byte {
	buf := make([]byte, msgHeaderLen+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(buf)))
	binary.LittleEndian.PutUint16(buf[2:4], id)
	buf[4] = opType
	copy(buf[msgHeaderLen:], payload)
	return buf
}

func decodeMsg(data []byte) (msgHeader, []byte, error) {
	if len(data) < msgHeaderLen {
		return msgHeader{}, nil, fmt.Errorf("%w: %d bytes", ErrShortMessage, len(data))
	}
	h := msgHeader{
		Size: binary.LittleEndian.Uint16(data[0:2]),
		ID:   binary.LittleEndian.Uint16(data[2:4]),
		Type: data[4],
	}
	if int(h.Size) != len(data) {
		return msgHeader{}, nil, fmt.Errorf("%w: declared %d, have %d",
			ErrMessageSize, h.Size, len(data))
	}
	return h, data[msgHeaderLen:], nil
}
