package meshproto

import "fmt"

// readField decodes one tag and its payload starting at offset.
// For varint fields the value is returned directly; for
// length-delimited fields the payload slice is returned. The returned
// offset points at the next field.
func readField(data []byte, offset int) (num uint32, wt WireType, varint uint64, payload []byte, next int, err error) {
	tag, n, err := Uvarint(data, offset)
	if err != nil {
		return 0, 0, 0, nil, 0, fmt.Errorf("field tag: %w", err)
	}
	offset += n

	num, wt = SplitTag(tag)
	if num == 0 {
		return 0, 0, 0, nil, 0, fmt.Errorf("invalid field number 0 at offset %d", offset-n)
	}

	switch wt {
	case WireVarint:
		varint, n, err = Uvarint(data, offset)
		if err != nil {
			return 0, 0, 0, nil, 0, fmt.Errorf("field %d value: %w", num, err)
		}
		return num, wt, varint, nil, offset + n, nil

	case WireBytes:
		length, n, err := Uvarint(data, offset)
		if err != nil {
			return 0, 0, 0, nil, 0, fmt.Errorf("field %d length: %w", num, err)
		}
		offset += n
		end := offset + int(length)
		if length > uint64(len(data)) || end > len(data) {
			return 0, 0, 0, nil, 0, fmt.Errorf("%w: field %d declares %d bytes at offset %d, %d remain",
				ErrTruncated, num, length, offset, len(data)-offset)
		}
		return num, wt, 0, data[offset:end], end, nil

	default:
		return 0, 0, 0, nil, 0, fmt.Errorf("unsupported wire type %d for field %d at offset %d", wt, num, offset-n)
	}
}

// UnmarshalBinary decodes a ChannelSettings message
func (s *ChannelSettings) UnmarshalBinary(data []byte) error {
	*s = ChannelSettings{}
	for offset := 0; offset < len(data); {
		num, _, v, payload, next, err := readField(data, offset)
		if err != nil {
			return fmt.Errorf("channel settings: %w", err)
		}
		switch num {
		case settingsFieldChannelNum:
			s.ChannelNum = uint32(v)
		case settingsFieldPSK:
			s.PSK = append([]byte(nil), payload...)
		case settingsFieldName:
			s.Name = string(payload)
		case settingsFieldUplink:
			s.UplinkEnabled = v != 0
		case settingsFieldDownlink:
			s.DownlinkEnabled = v != 0
		}
		offset = next
	}
	return s.Validate()
}

// UnmarshalBinary decodes a Channel message
func (c *Channel) UnmarshalBinary(data []byte) error {
	*c = Channel{}
	for offset := 0; offset < len(data); {
		num, _, v, payload, next, err := readField(data, offset)
		if err != nil {
			return fmt.Errorf("channel: %w", err)
		}
		switch num {
		case channelFieldIndex:
			c.Index = uint32(v)
		case channelFieldSettings:
			if err := c.Settings.UnmarshalBinary(payload); err != nil {
				return err
			}
		case channelFieldRole:
			c.Role = ChannelRole(v)
		}
		offset = next
	}
	return nil
}

// UnmarshalBinary decodes a LoRaConfig message
func (c *LoRaConfig) UnmarshalBinary(data []byte) error {
	*c = LoRaConfig{}
	for offset := 0; offset < len(data); {
		num, _, v, _, next, err := readField(data, offset)
		if err != nil {
			return fmt.Errorf("lora config: %w", err)
		}
		switch num {
		case loraFieldRegion:
			c.Region = Region(v)
		case loraFieldModemPreset:
			c.ModemPreset = ModemPreset(v)
		case loraFieldHopLimit:
			c.HopLimit = uint32(v)
		case loraFieldTxEnabled:
			c.TxEnabled = v != 0
		case loraFieldTxPower:
			c.TxPower = uint32(v)
		}
		offset = next
	}
	return c.Validate()
}

// UnmarshalBinary decodes a ChannelSet payload. Channels keep their
// order of appearance. Unknown fields are skipped, as a protobuf
// consumer must.
func (cs *ChannelSet) UnmarshalBinary(data []byte) error {
	*cs = ChannelSet{}
	for offset := 0; offset < len(data); {
		num, _, _, payload, next, err := readField(data, offset)
		if err != nil {
			return fmt.Errorf("channel set: %w", err)
		}
		switch num {
		case setFieldChannels:
			var ch Channel
			if err := ch.UnmarshalBinary(payload); err != nil {
				return err
			}
			cs.Channels = append(cs.Channels, ch)
		case setFieldLoRa:
			var lora LoRaConfig
			if err := lora.UnmarshalBinary(payload); err != nil {
				return err
			}
			cs.LoRa = &lora
		}
		offset = next
	}
	return nil
}
