package meshproto

import (
	"bytes"
	"errors"
	"testing"
)

func TestChannelSettingsFieldOmission(t *testing.T) {
	s := &ChannelSettings{ChannelNum: 0}
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if len(data) != 0 {
		t.Errorf("all-zero settings should encode to nothing, got %x", data)
	}

	s = &ChannelSettings{ChannelNum: 3}
	data, err = s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	want := []byte{0x08, 0x03} // field 1 varint, value 3
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBinary() = %x, want %x", data, want)
	}
}

func TestChannelSettingsAllFields(t *testing.T) {
	s := &ChannelSettings{
		ChannelNum:      3,
		PSK:             []byte{0x01},
		Name:            "Lora",
		UplinkEnabled:   true,
		DownlinkEnabled: true,
	}
	data, err := s.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	want := []byte{
		0x08, 0x03, // channel_num = 3
		0x12, 0x01, 0x01, // psk = [0x01]
		0x1A, 0x04, 'L', 'o', 'r', 'a', // name = "Lora"
		0x28, 0x01, // uplink_enabled
		0x30, 0x01, // downlink_enabled
	}
	if !bytes.Equal(data, want) {
		t.Errorf("MarshalBinary() = %x, want %x", data, want)
	}
}

func TestChannelSettingsInvalidPSK(t *testing.T) {
	for _, n := range []int{2, 15, 17, 31, 33} {
		s := &ChannelSettings{PSK: make([]byte, n)}
		if _, err := s.MarshalBinary(); !errors.Is(err, ErrInvalidPSK) {
			t.Errorf("MarshalBinary() with %d-byte PSK: error = %v, want ErrInvalidPSK", n, err)
		}
	}
}

func TestLoRaConfigHopLimitRange(t *testing.T) {
	c := &LoRaConfig{HopLimit: 8}
	if _, err := c.MarshalBinary(); !errors.Is(err, ErrHopLimitRange) {
		t.Errorf("MarshalBinary() error = %v, want ErrHopLimitRange", err)
	}

	c = &LoRaConfig{HopLimit: 7}
	if _, err := c.MarshalBinary(); err != nil {
		t.Errorf("MarshalBinary() with hop limit 7: error = %v", err)
	}
}

func TestChannelNesting(t *testing.T) {
	ch := &Channel{
		Index: 2,
		Settings: ChannelSettings{
			PSK:  []byte{0x01},
			Name: "Test",
		},
		Role: RoleSecondary,
	}
	data, err := ch.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	// Walk the channel generically: field 2 must be a length-delimited
	// blob whose contents decode as valid settings on their own.
	var settingsBlob []byte
	for offset := 0; offset < len(data); {
		num, wt, _, payload, next, err := readField(data, offset)
		if err != nil {
			t.Fatalf("readField() error = %v", err)
		}
		if num == channelFieldSettings {
			if wt != WireBytes {
				t.Fatalf("settings field wire type = %d, want %d", wt, WireBytes)
			}
			settingsBlob = payload
		}
		offset = next
	}
	if settingsBlob == nil {
		t.Fatal("settings field not found in encoded channel")
	}

	var s ChannelSettings
	if err := s.UnmarshalBinary(settingsBlob); err != nil {
		t.Fatalf("UnmarshalBinary(settings blob) error = %v", err)
	}
	if s.Name != "Test" || !bytes.Equal(s.PSK, []byte{0x01}) {
		t.Errorf("decoded settings = %+v", s)
	}
}

func TestChannelSetRoundTrip(t *testing.T) {
	cs := &ChannelSet{
		Channels: []Channel{
			{
				Settings: ChannelSettings{PSK: DefaultPSK, UplinkEnabled: true, DownlinkEnabled: true},
				Role:     RolePrimary,
			},
			{
				Index:    1,
				Settings: ChannelSettings{PSK: make([]byte, 32), Name: "Backup"},
				Role:     RoleSecondary,
			},
		},
		LoRa: &LoRaConfig{
			Region:      RegionEU868,
			ModemPreset: PresetLongSlow,
			HopLimit:    3,
			TxEnabled:   true,
			TxPower:     27,
		},
	}

	data, err := cs.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}

	var got ChannelSet
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary() error = %v", err)
	}

	if len(got.Channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(got.Channels))
	}
	if got.Channels[0].Role != RolePrimary || got.Channels[1].Role != RoleSecondary {
		t.Errorf("roles = %v, %v", got.Channels[0].Role, got.Channels[1].Role)
	}
	if got.Channels[1].Settings.Name != "Backup" {
		t.Errorf("channel 1 name = %q", got.Channels[1].Settings.Name)
	}
	if got.LoRa == nil || got.LoRa.Region != RegionEU868 || got.LoRa.TxPower != 27 {
		t.Errorf("lora config = %+v", got.LoRa)
	}
}

func TestChannelSetDeterminism(t *testing.T) {
	cs := &ChannelSet{
		Channels: []Channel{
			{Settings: ChannelSettings{PSK: DefaultPSK, Name: "A"}, Role: RolePrimary},
			{Index: 1, Settings: ChannelSettings{PSK: DefaultPSK, Name: "B"}, Role: RoleSecondary},
		},
		LoRa: &LoRaConfig{Region: RegionUS, HopLimit: 5},
	}

	first, err := BuildChannelSetBytes(cs)
	if err != nil {
		t.Fatalf("BuildChannelSetBytes() error = %v", err)
	}
	second, err := BuildChannelSetBytes(cs)
	if err != nil {
		t.Fatalf("BuildChannelSetBytes() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("non-deterministic encoding: %x vs %x", first, second)
	}
}

func TestUnmarshalTruncated(t *testing.T) {
	// Field 1 declares a 5-byte payload but only 2 bytes follow
	data := []byte{0x0A, 0x05, 0x01, 0x02}
	var cs ChannelSet
	if err := cs.UnmarshalBinary(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("UnmarshalBinary() error = %v, want ErrTruncated", err)
	}

	// Tag with the continuation bit set and nothing after it
	data = []byte{0x80}
	if err := cs.UnmarshalBinary(data); !errors.Is(err, ErrTruncated) {
		t.Errorf("UnmarshalBinary() error = %v, want ErrTruncated", err)
	}
}
