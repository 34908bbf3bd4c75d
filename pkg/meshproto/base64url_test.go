package meshproto

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestBase64URLRoundTrip(t *testing.T) {
	for n := 0; n <= 64; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}

		s := ToBase64URL(data)
		if strings.ContainsAny(s, "+/=") {
			t.Fatalf("ToBase64URL(%d bytes) contains forbidden characters: %q", n, s)
		}

		got, err := FromBase64URL(s)
		if err != nil {
			t.Fatalf("FromBase64URL(%q) error = %v", s, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip %d bytes: got %x, want %x", n, got, data)
		}
	}
}

func TestToBase64URLSubstitution(t *testing.T) {
	// 0xFB 0xEF 0xFF encodes to "++//" in the standard alphabet
	got := ToBase64URL([]byte{0xFB, 0xEF, 0xFF})
	if got != "--__" {
		t.Errorf("ToBase64URL() = %q, want %q", got, "--__")
	}
}

func TestFromBase64URLInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"impossible length", "AAAAA"},
		{"standard alphabet plus", "A+AA"},
		{"standard alphabet slash", "A/AA"},
		{"padding character", "QQ=="},
		{"whitespace", "QU JD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromBase64URL(tt.input); !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("FromBase64URL(%q) error = %v, want ErrInvalidEncoding", tt.input, err)
			}
		})
	}
}
