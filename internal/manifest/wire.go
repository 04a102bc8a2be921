package manifest

import "encoding/binary"

const (
	// EnvelopeLen is the manifest envelope header: size, version_major,
	// version_minor.
	EnvelopeLen = 4

	// DescHeaderLen is the per-descriptor header: size, type.
	DescHeaderLen = 4

	// VersionMajor is the newest manifest format major version this
	// parser understands. Minor revisions are forward compatible.
	VersionMajor uint8 = 0
	VersionMinor uint8 = 1
)

// DescType identifies one descriptor kind on the wire.
type DescType uint16

const (
	TypeInvalid  DescType = 0x0000
	TypeModule   DescType = 0x0001
	TypeString   DescType = 0x0002
	TypeClass    DescType = 0x0003
	TypeCPort    DescType = 0x0004
	TypeFunction DescType = 0x0005
)

func (t DescType) String() string {
	switch t {
	case TypeInvalid:
		return "invalid"
	case TypeModule:
		return "module"
	case TypeString:
		return "string"
	case TypeClass:
		return "class"
	case TypeCPort:
		return "cport"
	case TypeFunction:
		return "function"
	}
	return "unknown"
}

// Fixed payload sizes; a descriptor may declare more than the minimum
// (newer format revisions grow at the tail), never less.
const (
	modulePayloadLen   = 16
	stringPrefixLen    = 3 // id + length, before the string bytes
	cportPayloadLen    = 4
	functionPayloadLen = 8

	MinModuleDescLen   = DescHeaderLen + modulePayloadLen
	MinStringDescLen   = DescHeaderLen + stringPrefixLen
	MinCPortDescLen    = DescHeaderLen + cportPayloadLen
	MinFunctionDescLen = DescHeaderLen + functionPayloadLen
)

// FunctionClass mirrors the function descriptor class byte.
type FunctionClass uint8

const (
	FunctionControl FunctionClass = 0x00
	FunctionUSB     FunctionClass = 0x01
	FunctionGPIO    FunctionClass = 0x02
	FunctionSPI     FunctionClass = 0x03
	FunctionUART    FunctionClass = 0x04
	FunctionPWM     FunctionClass = 0x05
	FunctionI2S     FunctionClass = 0x06
	FunctionI2C     FunctionClass = 0x07
	FunctionSDIO    FunctionClass = 0x08
	FunctionHID     FunctionClass = 0x09
	FunctionDisplay FunctionClass = 0x0a
	FunctionCamera  FunctionClass = 0x0b
	FunctionSensor  FunctionClass = 0x0c
	FunctionVendor  FunctionClass = 0xff
)

// Envelope is the decoded manifest envelope header.
type Envelope struct {
	Size         uint16
	VersionMajor uint8
	VersionMinor uint8
}

func decodeEnvelope(b []byte) Envelope {
	return Envelope{
		Size:         binary.LittleEndian.Uint16(b[0:2]),
		VersionMajor: b[2],
		VersionMinor: b[3],
	}
}

// descHeader is the decoded per-descriptor header.
type descHeader struct {
	Size uint16
	Type DescType
}

func decodeDescHeader(b []byte) descHeader {
	return descHeader{
		Size: binary.LittleEndian.Uint16(b[0:2]),
		Type: DescType(binary.LittleEndian.Uint16(b[2:4])),
	}
}

// CPortDecl is one declared logical port, taken from a cport descriptor.
type CPortDecl struct {
	Number uint16
	Speed  uint8
}

func decodeCPort(payload []byte) CPortDecl {
	return CPortDecl{
		Number: binary.LittleEndian.Uint16(payload[0:2]),
		Speed:  payload[2],
	}
}

// FunctionDecl is one declared device function and the cport it answers on.
type FunctionDecl struct {
	Number   uint16
	CPort    uint16
	Class    FunctionClass
	Subclass uint8
	Protocol uint8
}

func decodeFunction(payload []byte) FunctionDecl {
	return FunctionDecl{
		Number:   binary.LittleEndian.Uint16(payload[0:2]),
		CPort:    binary.LittleEndian.Uint16(payload[2:4]),
		Class:    FunctionClass(payload[4]),
		Subclass: payload[5],
		Protocol: payload[6],
	}
}
