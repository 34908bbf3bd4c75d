package meshproto

import (
	"crypto/rand"
	"fmt"
)

// PSKBits is the key size used for private channels
const PSKBits = 256

// GeneratePSK returns bits/8 bytes from the host's cryptographically
// secure random source. bits must be a positive multiple of 8.
func GeneratePSK(bits int) ([]byte, error) {
	if bits <= 0 || bits%8 != 0 {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidKeySize, bits)
	}
	key := make([]byte, bits/8)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("read random source: %w", err)
	}
	return key, nil
}
