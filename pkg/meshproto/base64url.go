package meshproto

import (
	"encoding/base64"
	"fmt"
)

// ToBase64URL encodes bytes as unpadded URL-safe base64: the standard
// alphabet with + and / replaced by - and _, and no = padding, so the
// result can live in a URL fragment or a QR code unescaped.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes an unpadded URL-safe base64 string. Padding is
// re-derived from the length; no unpadded base64 string has length
// 1 mod 4, so that case is rejected before decoding.
func FromBase64URL(s string) ([]byte, error) {
	if len(s)%4 == 1 {
		return nil, fmt.Errorf("%w: impossible length %d", ErrInvalidEncoding, len(s))
	}
	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return data, nil
}
