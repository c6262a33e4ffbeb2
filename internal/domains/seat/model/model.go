package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"seatmap/shared/model"
)

const (
	TableName  = "seats"
	EntityName = "seat"

	FieldID            = "id"
	FieldSeatNumber    = "seat_number"
	FieldDescription   = "description"
	FieldPositionX     = "position_x"
	FieldPositionY     = "position_y"
	FieldRotationAngle = "rotation_angle"
	FieldWidth         = "width"
	FieldHeight        = "height"
	FieldShape         = "shape"
	FieldAttributes    = "attributes"
	FieldFloorID       = "floor_id"
	FieldSpaceID       = "space_id"
	FieldIsActive      = "is_active"
)

const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeSquare    = "square"
	ShapeOval      = "oval"
)

const freeAttributesKey = "free_attributes"

// AttributeBag is a string-keyed record with one reserved, typed key:
// free_attributes, a list of user-defined tags. Every other key passes
// through untouched so unknown attributes written by older clients survive
// round trips.
type AttributeBag struct {
	FreeAttributes []string
	Extra          map[string]json.RawMessage
}

func (b AttributeBag) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+1)

	for k, v := range b.Extra {
		out[k] = v
	}

	if b.FreeAttributes != nil {
		out[freeAttributesKey] = b.FreeAttributes
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	return data, nil
}

func (b *AttributeBag) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal attributes: %w", err)
	}

	if freeRaw, ok := raw[freeAttributesKey]; ok {
		if err := json.Unmarshal(freeRaw, &b.FreeAttributes); err != nil {
			return fmt.Errorf("failed to unmarshal free attributes: %w", err)
		}

		delete(raw, freeAttributesKey)
	}

	b.Extra = raw

	return nil
}

// Value implements driver.Valuer so the bag persists as JSONB.
func (b AttributeBag) Value() (driver.Value, error) {
	data, err := b.MarshalJSON()
	if err != nil {
		return nil, err
	}

	return data, nil
}

// Scan implements sql.Scanner for reading the JSONB column.
func (b *AttributeBag) Scan(src any) error {
	if src == nil {
		*b = AttributeBag{}

		return nil
	}

	switch v := src.(type) {
	case []byte:
		return b.UnmarshalJSON(v)
	case string:
		return b.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported attributes source type %T", src)
	}
}

type Seat struct {
	ID            string       `db:"id"`
	SeatNumber    string       `db:"seat_number"`
	Description   string       `db:"description"`
	PositionX     float64      `db:"position_x"`
	PositionY     float64      `db:"position_y"`
	RotationAngle float64      `db:"rotation_angle"`
	Width         float64      `db:"width"`
	Height        float64      `db:"height"`
	Shape         string       `db:"shape"`
	Attributes    AttributeBag `db:"attributes"`
	FloorID       *string      `db:"floor_id"`
	SpaceID       *string      `db:"space_id"`
	IsActive      bool         `db:"is_active"`
	model.Metadata
}
