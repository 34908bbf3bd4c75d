package meshproto

import "errors"

// Common errors
var (
	// ErrTruncated reports decode input that ends before a varint or a
	// declared length-delimited field is complete.
	ErrTruncated = errors.New("truncated data")

	// ErrInvalidEncoding reports a base64url payload that cannot
	// correspond to any byte sequence.
	ErrInvalidEncoding = errors.New("invalid base64url encoding")

	// ErrInvalidPSK reports a pre-shared key of a length the protocol
	// does not allow.
	ErrInvalidPSK = errors.New("invalid PSK length")

	// ErrHopLimitRange reports a hop limit above the protocol ceiling.
	ErrHopLimitRange = errors.New("hop limit out of range")

	// ErrInvalidKeySize reports a key size that is not a positive
	// multiple of 8 bits.
	ErrInvalidKeySize = errors.New("invalid key size")
)
