package manifest

import "encoding/binary"

// Builder assembles canonical manifest blobs. It exists for tooling and
// tests (manifestgen, round-trip coverage); the library contract for
// production use is decode-only.
type Builder struct {
	descriptors [][]byte
	major       uint8
	minor       uint8
}

func NewBuilder() *Builder {
	return &Builder{major: VersionMajor, minor: VersionMinor}
}

// Version overrides the envelope version, for negative tests.
func (b *Builder) Version(major, minor uint8) *Builder {
	b.major = major
	b.minor = minor
	return b
}

func (b *Builder) descriptor(t DescType, payload []byte) *Builder {
	desc := make([]byte, DescHeaderLen+len(payload))
	binary.LittleEndian.PutUint16(desc[0:2], uint16(DescHeaderLen+len(payload)))
	binary.LittleEndian.PutUint16(desc[2:4], uint16(t))
	copy(desc[DescHeaderLen:], payload)
	b.descriptors = append(b.descriptors, desc)
	return b
}

func (b *Builder) Module(vendor, product, version uint16, vendorStringID, productStringID uint8, serial uint64) *Builder {
	payload := make([]byte, modulePayloadLen)
	binary.LittleEndian.PutUint16(payload[0:2], vendor)
	binary.LittleEndian.PutUint16(payload[2:4], product)
	binary.LittleEndian.PutUint16(payload[4:6], version)
	payload[6] = vendorStringID
	payload[7] = productStringID
	binary.LittleEndian.PutUint64(payload[8:16], serial)
	return b.descriptor(TypeModule, payload)
}

func (b *Builder) String(id uint8, value string) *Builder {
	payload := make([]byte, stringPrefixLen+len(value))
	payload[0] = id
	binary.LittleEndian.PutUint16(payload[1:3], uint16(len(value)))
	copy(payload[stringPrefixLen:], value)
	return b.descriptor(TypeString, payload)
}

func (b *Builder) CPort(number uint16, speed uint8) *Builder {
	payload := make([]byte, cportPayloadLen)
	binary.LittleEndian.PutUint16(payload[0:2], number)
	payload[2] = speed
	return b.descriptor(TypeCPort, payload)
}

func (b *Builder) Function(number, cport uint16, class FunctionClass, subclass, protocol uint8) *Builder {
	payload := make([]byte, functionPayloadLen)
	binary.LittleEndian.PutUint16(payload[0:2], number)
	binary.LittleEndian.PutUint16(payload[2:4], cport)
	payload[4] = uint8(class)
	payload[5] = subclass
	payload[6] = protocol
	return b.descriptor(TypeFunction, payload)
}

func (b *Builder) Class(payload []byte) *Builder {
	return b.descriptor(TypeClass, payload)
}

// Raw appends a pre-encoded descriptor verbatim, for malformed-input tests.
func (b *Builder) Raw(desc []byte) *Builder {
	b.descriptors = append(b.descriptors, desc)
	return b
}

// Bytes renders the manifest with a correct envelope size.
func (b *Builder) Bytes() []byte {
	total := EnvelopeLen
	for _, d := range b.descriptors {
		total += len(d)
	}

	out := make([]byte, EnvelopeLen, total)
	binary.LittleEndian.PutUint16(out[0:2], uint16(total))
	out[2] = b.major
	out[3] = b.minor
	for _, d := range b.descriptors {
		out = append(out, d...)
	}
	return out
}
