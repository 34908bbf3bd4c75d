package meshproto

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

// The default network configuration has a fixed, externally-checked
// encoding. If this vector changes, the field-number table no longer
// matches what compatible devices expect.
const networkPayload = "CgsSBxIBASgBMAEYARIKGAEgAzgGWAFgHg"

func TestGenerateNetworkURL(t *testing.T) {
	url, err := GenerateNetworkURL(DefaultBaseURL)
	if err != nil {
		t.Fatalf("GenerateNetworkURL() error = %v", err)
	}

	want := DefaultBaseURL + "#" + networkPayload
	if url != want {
		t.Errorf("GenerateNetworkURL() = %q, want %q", url, want)
	}
}

func TestNetworkURLDecodesToKnownConfig(t *testing.T) {
	url, err := GenerateNetworkURL(DefaultBaseURL)
	if err != nil {
		t.Fatalf("GenerateNetworkURL() error = %v", err)
	}

	cs, err := DecodeURL(url)
	if err != nil {
		t.Fatalf("DecodeURL() error = %v", err)
	}

	if len(cs.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(cs.Channels))
	}
	ch := cs.Channels[0]
	if ch.Role != RolePrimary {
		t.Errorf("role = %v, want PRIMARY", ch.Role)
	}
	if ch.Settings.Name != "" {
		t.Errorf("name = %q, want blank", ch.Settings.Name)
	}
	if len(ch.Settings.PSK) != 1 || ch.Settings.PSK[0] != 0x01 {
		t.Errorf("psk = %x, want 01", ch.Settings.PSK)
	}
	if !ch.Settings.UplinkEnabled || !ch.Settings.DownlinkEnabled {
		t.Errorf("uplink/downlink = %v/%v, want true/true", ch.Settings.UplinkEnabled, ch.Settings.DownlinkEnabled)
	}

	if cs.LoRa == nil {
		t.Fatal("lora config missing")
	}
	if cs.LoRa.Region != RegionUS {
		t.Errorf("region = %v, want US", cs.LoRa.Region)
	}
	if cs.LoRa.ModemPreset != PresetMediumFast {
		t.Errorf("preset = %v, want MEDIUM_FAST", cs.LoRa.ModemPreset)
	}
	if cs.LoRa.HopLimit != 6 || !cs.LoRa.TxEnabled || cs.LoRa.TxPower != 30 {
		t.Errorf("lora = %+v", cs.LoRa)
	}
}

func TestGeneratePrivateChannelURL(t *testing.T) {
	first, err := GeneratePrivateChannelURL(DefaultBaseURL, "Test")
	if err != nil {
		t.Fatalf("GeneratePrivateChannelURL() error = %v", err)
	}
	second, err := GeneratePrivateChannelURL(DefaultBaseURL, "Test")
	if err != nil {
		t.Fatalf("GeneratePrivateChannelURL() error = %v", err)
	}

	if first.URL == second.URL {
		t.Error("two private channels produced the same URL")
	}

	for _, pc := range []*PrivateChannel{first, second} {
		key, err := base64.StdEncoding.DecodeString(pc.PSK)
		if err != nil {
			t.Fatalf("returned PSK is not standard base64: %v", err)
		}
		if len(key) != 32 {
			t.Errorf("PSK = %d bytes, want 32", len(key))
		}

		cs, err := DecodeURL(pc.URL)
		if err != nil {
			t.Fatalf("DecodeURL() error = %v", err)
		}
		if len(cs.Channels) != 1 {
			t.Fatalf("channels = %d, want 1", len(cs.Channels))
		}
		ch := cs.Channels[0]
		if ch.Role != RolePrimary {
			t.Errorf("role = %v, want PRIMARY", ch.Role)
		}
		if ch.Settings.Name != "Test" {
			t.Errorf("name = %q, want Test", ch.Settings.Name)
		}
		if ch.Settings.UplinkEnabled || ch.Settings.DownlinkEnabled {
			t.Error("private channel must not relay to the public mesh")
		}
		if base64.StdEncoding.EncodeToString(ch.Settings.PSK) != pc.PSK {
			t.Error("embedded PSK does not match the returned key")
		}
	}
}

func TestGenerateURLRejectsBadConfig(t *testing.T) {
	cs := &ChannelSet{
		Channels: []Channel{{Settings: ChannelSettings{PSK: make([]byte, 5)}}},
	}
	if _, err := GenerateURL(DefaultBaseURL, cs); !errors.Is(err, ErrInvalidPSK) {
		t.Errorf("GenerateURL() error = %v, want ErrInvalidPSK", err)
	}

	cs = &ChannelSet{LoRa: &LoRaConfig{HopLimit: 12}}
	if _, err := GenerateURL(DefaultBaseURL, cs); !errors.Is(err, ErrHopLimitRange) {
		t.Errorf("GenerateURL() error = %v, want ErrHopLimitRange", err)
	}
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"full url", DefaultBaseURL + "#" + networkPayload, false},
		{"fragment with hash", "#" + networkPayload, false},
		{"bare fragment", networkPayload, false},
		{"empty fragment", DefaultBaseURL + "#", true},
		{"bad alphabet", DefaultBaseURL + "#abc+def=", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := ParseURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseURL(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseURL(%q) error = %v", tt.input, err)
			}
			if ToBase64URL(payload) != networkPayload {
				t.Errorf("payload round trip mismatch")
			}
		})
	}
}

func TestGenerateURLShape(t *testing.T) {
	url, err := GenerateNetworkURL("https://example.org/e/")
	if err != nil {
		t.Fatalf("GenerateNetworkURL() error = %v", err)
	}
	if !strings.HasPrefix(url, "https://example.org/e/#") {
		t.Errorf("url = %q, want base + # prefix", url)
	}
	if strings.ContainsAny(url[strings.Index(url, "#"):], "+/=") {
		t.Errorf("fragment contains non-URL-safe characters: %q", url)
	}
}
