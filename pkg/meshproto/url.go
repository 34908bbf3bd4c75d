package meshproto

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DefaultBaseURL is the well-known link prefix understood by
// Meshtastic-compatible scanners. The channel set rides in the URL
// fragment, which never reaches a server.
const DefaultBaseURL = "https://meshtastic.org/e/"

// Default network channel policy. These are fixed configuration
// values, not derived data: the public primary channel every device
// ships with.
const (
	DefaultRegion   = RegionUS
	DefaultPreset   = PresetMediumFast
	DefaultHopLimit = 6
	DefaultTxPower  = 30 // max US tx power, dBm
)

// BuildChannelSetBytes validates and serializes a channel set.
// Deterministic: byte-identical output for identical input.
func BuildChannelSetBytes(cs *ChannelSet) ([]byte, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return cs.MarshalBinary()
}

// GenerateURL builds the shareable deep link for a channel set:
// baseURL + "#" + base64url(payload).
func GenerateURL(baseURL string, cs *ChannelSet) (string, error) {
	payload, err := BuildChannelSetBytes(cs)
	if err != nil {
		return "", err
	}
	return baseURL + "#" + ToBase64URL(payload), nil
}

// NetworkChannelSet returns the default public network configuration:
// a single primary channel with the well-known 1-byte PSK, uplink and
// downlink enabled, and the default US radio parameters.
func NetworkChannelSet() *ChannelSet {
	return &ChannelSet{
		Channels: []Channel{{
			Index: 0,
			Settings: ChannelSettings{
				PSK:             DefaultPSK,
				Name:            "",
				UplinkEnabled:   true,
				DownlinkEnabled: true,
			},
			Role: RolePrimary,
		}},
		LoRa: &LoRaConfig{
			Region:      DefaultRegion,
			ModemPreset: DefaultPreset,
			HopLimit:    DefaultHopLimit,
			TxEnabled:   true,
			TxPower:     DefaultTxPower,
		},
	}
}

// GenerateNetworkURL builds the deep link for the default public
// network channel.
func GenerateNetworkURL(baseURL string) (string, error) {
	return GenerateURL(baseURL, NetworkChannelSet())
}

// PrivateChannel holds a freshly generated private channel link. PSK is
// the standard-base64 (not base64url) encoding of the raw key, for
// separate out-of-band display: anyone holding the URL can derive the
// key, so the link itself is the secret.
type PrivateChannel struct {
	URL string `json:"url"`
	PSK string `json:"psk"`
}

// GeneratePrivateChannelURL builds a single-channel private
// configuration with a fresh 256-bit PSK. Uplink and downlink stay
// disabled so the channel does not relay to the public mesh.
func GeneratePrivateChannelURL(baseURL, name string) (*PrivateChannel, error) {
	psk, err := GeneratePSK(PSKBits)
	if err != nil {
		return nil, fmt.Errorf("generate PSK: %w", err)
	}

	cs := &ChannelSet{
		Channels: []Channel{{
			Index: 0,
			Settings: ChannelSettings{
				PSK:  psk,
				Name: name,
			},
			Role: RolePrimary,
		}},
	}

	url, err := GenerateURL(baseURL, cs)
	if err != nil {
		return nil, err
	}

	return &PrivateChannel{
		URL: url,
		PSK: base64.StdEncoding.EncodeToString(psk),
	}, nil
}

// ParseURL extracts and decodes the channel-set payload from a deep
// link. Accepts a full URL, or a bare fragment with or without the
// leading #.
func ParseURL(url string) ([]byte, error) {
	fragment := url
	if i := strings.Index(url, "#"); i >= 0 {
		fragment = url[i+1:]
	}
	if fragment == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidEncoding)
	}
	return FromBase64URL(fragment)
}

// DecodeURL parses a deep link all the way back to a channel set
func DecodeURL(url string) (*ChannelSet, error) {
	payload, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	var cs ChannelSet
	if err := cs.UnmarshalBinary(payload); err != nil {
		return nil, err
	}
	return &cs, nil
}
