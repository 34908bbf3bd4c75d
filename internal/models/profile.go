package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/meshforge/meshlink-server/pkg/meshproto"
)

// ChannelProfile is a saved, named channel-set configuration together
// with the deep link generated from it. The stored URL is re-derived
// from the config on every save so persisted links stay canonical.
type ChannelProfile struct {
	BaseModel

	OwnerID uuid.UUID `json:"ownerId" db:"owner_id"`

	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`

	Config ChannelSetConfig `json:"config" db:"config"`
	URL    string           `json:"url" db:"url"`
}

// ChannelSetConfig wraps meshproto.ChannelSet for JSONB storage
type ChannelSetConfig struct {
	meshproto.ChannelSet
}

// Value implements driver.Valuer interface
func (c ChannelSetConfig) Value() (driver.Value, error) {
	return json.Marshal(c.ChannelSet)
}

// Scan implements sql.Scanner interface
func (c *ChannelSetConfig) Scan(value interface{}) error {
	if value == nil {
		c.ChannelSet = meshproto.ChannelSet{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type for ChannelSetConfig: %T", value)
	}

	return json.Unmarshal(b, &c.ChannelSet)
}
