package meshproto

import "fmt"

// MaxVarintLen is the maximum number of bytes a varint can occupy.
// A uint64 requires at most 10 bytes in base-128 encoding.
const MaxVarintLen = 10

// AppendUvarint appends the base-128 varint encoding of v to dst.
// Seven bits of payload per byte, least-significant group first, the
// high bit set on every byte except the last.
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Uvarint decodes a base-128 varint from data starting at offset.
// Returns the value and the number of bytes consumed.
func Uvarint(data []byte, offset int) (uint64, int, error) {
	if offset < 0 || offset > len(data) {
		return 0, 0, fmt.Errorf("%w: offset %d out of range", ErrTruncated, offset)
	}

	var v uint64
	var shift uint

	for i, b := range data[offset:] {
		if i >= MaxVarintLen {
			return 0, 0, fmt.Errorf("varint at offset %d exceeds %d bytes", offset, MaxVarintLen)
		}
		if shift == 63 && b > 1 {
			return 0, 0, fmt.Errorf("varint at offset %d overflows uint64", offset)
		}
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}

	// Ran out of input with the continuation bit still set.
	return 0, 0, fmt.Errorf("%w: varint at offset %d", ErrTruncated, offset)
}
