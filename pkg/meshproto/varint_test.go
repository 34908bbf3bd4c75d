package meshproto

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestAppendUvarintKnownValues(t *testing.T) {
	tests := []struct {
		value uint64
		want  []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}},
	}

	for _, tt := range tests {
		got := AppendUvarint(nil, tt.value)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AppendUvarint(%d) = %x, want %x", tt.value, got, tt.want)
		}
	}
}

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint64{
		0, 1, 127, 128, 255, 300, 16383, 16384,
		1<<32 - 1, 1 << 32, 1<<63 - 1, math.MaxUint64,
	}

	for _, v := range values {
		enc := AppendUvarint(nil, v)
		got, n, err := Uvarint(enc, 0)
		if err != nil {
			t.Fatalf("Uvarint(%x) error = %v", enc, err)
		}
		if got != v {
			t.Errorf("round trip %d: got %d", v, got)
		}
		if n != len(enc) {
			t.Errorf("round trip %d: consumed %d bytes, want %d", v, n, len(enc))
		}
	}
}

func TestUvarintOffset(t *testing.T) {
	data := AppendUvarint([]byte{0xFF, 0xFF}, 300)

	v, n, err := Uvarint(data, 2)
	if err != nil {
		t.Fatalf("Uvarint() error = %v", err)
	}
	if v != 300 || n != 2 {
		t.Errorf("Uvarint() = (%d, %d), want (300, 2)", v, n)
	}
}

func TestUvarintTruncated(t *testing.T) {
	tests := [][]byte{
		{},
		{0x80},
		{0xFF, 0xFF},
		{0x80, 0x80, 0x80},
	}

	for _, data := range tests {
		_, _, err := Uvarint(data, 0)
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("Uvarint(%x) error = %v, want ErrTruncated", data, err)
		}
	}
}

func TestUvarintOverflow(t *testing.T) {
	// 11 continuation bytes: longer than any uint64 varint
	data := bytes.Repeat([]byte{0x80}, 11)
	if _, _, err := Uvarint(data, 0); err == nil {
		t.Fatal("Uvarint() expected overflow error")
	}

	// 10 bytes but the final group carries bits beyond 64
	data = append(bytes.Repeat([]byte{0xFF}, 9), 0x7F)
	if _, _, err := Uvarint(data, 0); err == nil {
		t.Fatal("Uvarint() expected overflow error for out-of-range final byte")
	}
}
