package meshproto

// Field numbers are a compatibility contract with the external
// Meshtastic protocol and must not be changed independently.
const (
	settingsFieldChannelNum = 1
	settingsFieldPSK        = 2
	settingsFieldName       = 3
	settingsFieldUplink     = 5
	settingsFieldDownlink   = 6

	channelFieldIndex    = 1
	channelFieldSettings = 2
	channelFieldRole     = 3

	loraFieldRegion      = 3
	loraFieldModemPreset = 4
	loraFieldHopLimit    = 7
	loraFieldTxEnabled   = 11
	loraFieldTxPower     = 12

	setFieldChannels = 1
	setFieldLoRa     = 2
)

// field drives the generic encode loop: one entry per schema field, in
// ascending field-number order. Unset fields report skip and are not
// encoded at all, which a proto3 consumer cannot distinguish from an
// explicit zero and which keeps the payload QR-sized.
type field struct {
	num    uint32
	wire   WireType
	skip   bool
	varint uint64
	bytes  []byte
}

func uintField(num uint32, v uint64) field {
	return field{num: num, wire: WireVarint, skip: v == 0, varint: v}
}

func boolField(num uint32, v bool) field {
	n := uint64(0)
	if v {
		n = 1
	}
	return field{num: num, wire: WireVarint, skip: !v, varint: n}
}

func bytesField(num uint32, payload []byte) field {
	return field{num: num, wire: WireBytes, skip: len(payload) == 0, bytes: payload}
}

// appendFields concatenates the encoded fields, skipping unset ones.
// No separators, no outer framing.
func appendFields(dst []byte, fields []field) []byte {
	for _, f := range fields {
		if f.skip {
			continue
		}
		switch f.wire {
		case WireVarint:
			dst = AppendUintField(dst, f.num, f.varint)
		case WireBytes:
			dst = AppendBytesField(dst, f.num, f.bytes)
		}
	}
	return dst
}

// AppendBinary appends the wire encoding of the settings to dst
func (s *ChannelSettings) AppendBinary(dst []byte) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return appendFields(dst, []field{
		uintField(settingsFieldChannelNum, uint64(s.ChannelNum)),
		bytesField(settingsFieldPSK, s.PSK),
		bytesField(settingsFieldName, []byte(s.Name)),
		boolField(settingsFieldUplink, s.UplinkEnabled),
		boolField(settingsFieldDownlink, s.DownlinkEnabled),
	}), nil
}

// MarshalBinary encodes the settings as a standalone message
func (s *ChannelSettings) MarshalBinary() ([]byte, error) {
	return s.AppendBinary(nil)
}

// AppendBinary appends the wire encoding of the channel to dst.
// The settings submessage is its own encoding carried as a
// length-delimited payload.
func (c *Channel) AppendBinary(dst []byte) ([]byte, error) {
	settings, err := c.Settings.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return appendFields(dst, []field{
		uintField(channelFieldIndex, uint64(c.Index)),
		bytesField(channelFieldSettings, settings),
		uintField(channelFieldRole, uint64(c.Role)),
	}), nil
}

// MarshalBinary encodes the channel as a standalone message
func (c *Channel) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(nil)
}

// AppendBinary appends the wire encoding of the radio config to dst
func (c *LoRaConfig) AppendBinary(dst []byte) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return appendFields(dst, []field{
		uintField(loraFieldRegion, uint64(c.Region)),
		uintField(loraFieldModemPreset, uint64(c.ModemPreset)),
		uintField(loraFieldHopLimit, uint64(c.HopLimit)),
		boolField(loraFieldTxEnabled, c.TxEnabled),
		uintField(loraFieldTxPower, uint64(c.TxPower)),
	}), nil
}

// MarshalBinary encodes the radio config as a standalone message
func (c *LoRaConfig) MarshalBinary() ([]byte, error) {
	return c.AppendBinary(nil)
}

// MarshalBinary encodes the channel set. The result is the final
// unwrapped payload: repeated channel fields in input order, then the
// optional radio config. Byte-identical output for identical input.
func (cs *ChannelSet) MarshalBinary() ([]byte, error) {
	var dst []byte
	for i := range cs.Channels {
		ch, err := cs.Channels[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		dst = AppendBytesField(dst, setFieldChannels, ch)
	}
	if cs.LoRa != nil {
		lora, err := cs.LoRa.MarshalBinary()
		if err != nil {
			return nil, err
		}
		dst = AppendBytesField(dst, setFieldLoRa, lora)
	}
	return dst, nil
}
