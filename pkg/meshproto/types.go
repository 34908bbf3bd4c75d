package meshproto

import "fmt"

// Region represents a LoRa regulatory region code
type Region uint32

const (
	RegionUnset Region = iota
	RegionUS
	RegionEU433
	RegionEU868
	RegionCN
	RegionJP
	RegionANZ
	RegionKR
	RegionTW
	RegionRU
	RegionIN
)

// String returns the region name
func (r Region) String() string {
	switch r {
	case RegionUnset:
		return "UNSET"
	case RegionUS:
		return "US"
	case RegionEU433:
		return "EU_433"
	case RegionEU868:
		return "EU_868"
	case RegionCN:
		return "CN"
	case RegionJP:
		return "JP"
	case RegionANZ:
		return "ANZ"
	case RegionKR:
		return "KR"
	case RegionTW:
		return "TW"
	case RegionRU:
		return "RU"
	case RegionIN:
		return "IN"
	default:
		return fmt.Sprintf("REGION_%d", uint32(r))
	}
}

// ModemPreset represents a LoRa modem preset
type ModemPreset uint32

const (
	PresetLongFast ModemPreset = iota
	PresetLongSlow
	PresetVeryLongSlow
	PresetMediumFast
	PresetMediumSlow
	PresetShortFast
	PresetShortSlow
	PresetLongModerate
)

// String returns the preset name
func (p ModemPreset) String() string {
	switch p {
	case PresetLongFast:
		return "LONG_FAST"
	case PresetLongSlow:
		return "LONG_SLOW"
	case PresetVeryLongSlow:
		return "VERY_LONG_SLOW"
	case PresetMediumFast:
		return "MEDIUM_FAST"
	case PresetMediumSlow:
		return "MEDIUM_SLOW"
	case PresetShortFast:
		return "SHORT_FAST"
	case PresetShortSlow:
		return "SHORT_SLOW"
	case PresetLongModerate:
		return "LONG_MODERATE"
	default:
		return fmt.Sprintf("PRESET_%d", uint32(p))
	}
}

// ChannelRole represents the role of a channel slot.
// Values are fixed by the external protocol.
type ChannelRole uint32

const (
	RoleDisabled  ChannelRole = 0
	RolePrimary   ChannelRole = 1
	RoleSecondary ChannelRole = 2
)

// String returns the role name
func (r ChannelRole) String() string {
	switch r {
	case RoleDisabled:
		return "DISABLED"
	case RolePrimary:
		return "PRIMARY"
	case RoleSecondary:
		return "SECONDARY"
	default:
		return fmt.Sprintf("ROLE_%d", uint32(r))
	}
}

// MaxHopLimit is the protocol ceiling for the hop limit field
const MaxHopLimit = 7

// LoRaConfig holds the radio parameters carried in a channel set.
// Zero-valued fields are omitted from the wire encoding.
type LoRaConfig struct {
	Region      Region      `json:"region"`
	ModemPreset ModemPreset `json:"modemPreset"`
	HopLimit    uint32      `json:"hopLimit"`
	TxEnabled   bool        `json:"txEnabled"`
	TxPower     uint32      `json:"txPower"`
}

// Validate checks protocol range constraints
func (c *LoRaConfig) Validate() error {
	if c.HopLimit > MaxHopLimit {
		return fmt.Errorf("%w: %d (max %d)", ErrHopLimitRange, c.HopLimit, MaxHopLimit)
	}
	return nil
}

// ChannelSettings holds the per-channel configuration.
// A blank name with a single-byte PSK of 0x01 denotes the well-known
// public primary channel.
type ChannelSettings struct {
	ChannelNum      uint32 `json:"channelNum,omitempty"`
	PSK             []byte `json:"psk,omitempty"`
	Name            string `json:"name"`
	UplinkEnabled   bool   `json:"uplinkEnabled"`
	DownlinkEnabled bool   `json:"downlinkEnabled"`
}

// Validate checks the PSK against the lengths the protocol allows:
// empty, the 1-byte default-key marker, AES-128 or AES-256.
func (s *ChannelSettings) Validate() error {
	switch len(s.PSK) {
	case 0, 1, 16, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d bytes (want 0, 1, 16 or 32)", ErrInvalidPSK, len(s.PSK))
	}
}

// Channel is one slot in the device channel table
type Channel struct {
	Index    uint32          `json:"index"`
	Settings ChannelSettings `json:"settings"`
	Role     ChannelRole     `json:"role"`
}

// ChannelSet is the top-level shareable configuration: an ordered list
// of channels plus optional radio parameters. Channel order is the wire
// order; decoders assign slots by order of appearance.
type ChannelSet struct {
	Channels []Channel   `json:"channels"`
	LoRa     *LoRaConfig `json:"loraConfig,omitempty"`
}

// Validate checks every channel and the radio config
func (cs *ChannelSet) Validate() error {
	for i := range cs.Channels {
		if err := cs.Channels[i].Settings.Validate(); err != nil {
			return fmt.Errorf("channel %d: %w", i, err)
		}
	}
	if cs.LoRa != nil {
		if err := cs.LoRa.Validate(); err != nil {
			return fmt.Errorf("lora config: %w", err)
		}
	}
	return nil
}

// DefaultPSK is the 1-byte marker for the well-known public key
var DefaultPSK = []byte{0x01}
