package meshproto

// WireType represents a protobuf wire type
type WireType byte

const (
	// WireVarint frames the payload as a single base-128 varint
	WireVarint WireType = 0
	// WireBytes frames the payload as varint length followed by raw bytes;
	// used for strings, byte blobs and nested messages alike
	WireBytes WireType = 2

	// Fixed64 (1) and fixed32 (5) exist in the protocol but no field of
	// this schema uses them.
)

// MakeTag builds a field tag from field number and wire type
func MakeTag(fieldNum uint32, wt WireType) uint64 {
	return uint64(fieldNum)<<3 | uint64(wt)
}

// SplitTag splits a decoded tag into field number and wire type
func SplitTag(tag uint64) (uint32, WireType) {
	return uint32(tag >> 3), WireType(tag & 0x7)
}

// AppendTag appends the varint-encoded tag for a field
func AppendTag(dst []byte, fieldNum uint32, wt WireType) []byte {
	return AppendUvarint(dst, MakeTag(fieldNum, wt))
}

// AppendUintField appends a varint field: tag followed by the value
func AppendUintField(dst []byte, fieldNum uint32, v uint64) []byte {
	dst = AppendTag(dst, fieldNum, WireVarint)
	return AppendUvarint(dst, v)
}

// AppendBoolField appends a bool field as varint 0/1
func AppendBoolField(dst []byte, fieldNum uint32, v bool) []byte {
	n := uint64(0)
	if v {
		n = 1
	}
	return AppendUintField(dst, fieldNum, n)
}

// AppendBytesField appends a length-delimited field: tag, varint length,
// then the payload bytes. A nested message is just its own encoding used
// as the payload.
func AppendBytesField(dst []byte, fieldNum uint32, payload []byte) []byte {
	dst = AppendTag(dst, fieldNum, WireBytes)
	dst = AppendUvarint(dst, uint64(len(payload)))
	return append(dst, payload...)
}

// AppendStringField appends a length-delimited UTF-8 string field
func AppendStringField(dst []byte, fieldNum uint32, s string) []byte {
	return AppendBytesField(dst, fieldNum, []byte(s))
}
