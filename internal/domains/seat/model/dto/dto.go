package dto

import (
	"seatmap/internal/domains/seat/model"
	gDto "seatmap/shared/dto"
	gModel "seatmap/shared/model"
	"seatmap/shared/timezone"

	"github.com/google/uuid"
)

const (
	defaultPosition  = 100
	defaultDimension = 100
)

type CreateSeatRequest struct {
	SeatNumber    string              `json:"seat_number"    validate:"required,max=50"`
	Description   string              `json:"description"    validate:"omitempty,max=500"`
	PositionX     *float64            `json:"position_x"     validate:"omitempty,gte=0"`
	PositionY     *float64            `json:"position_y"     validate:"omitempty,gte=0"`
	RotationAngle float64             `json:"rotation_angle" validate:"omitempty,gte=0,lte=345,multiple=15"`
	Width         *float64            `json:"width"          validate:"omitempty,gt=0"`
	Height        *float64            `json:"height"         validate:"omitempty,gt=0"`
	Shape         string              `json:"shape"          validate:"omitempty,oneof=rectangle circle square oval"`
	Attributes    *model.AttributeBag `json:"attributes"     validate:"omitempty"`
	FloorID       *string             `json:"floor_id"       validate:"omitempty,uuid"`
	SpaceID       *string             `json:"space_id"       validate:"omitempty,uuid"`
	IsActive      *bool               `json:"is_active"      validate:"omitempty"`
}

func (c *CreateSeatRequest) ToModel(user string) model.Seat {
	seat := model.Seat{
		ID:            uuid.NewString(),
		SeatNumber:    c.SeatNumber,
		Description:   c.Description,
		PositionX:     defaultPosition,
		PositionY:     defaultPosition,
		RotationAngle: c.RotationAngle,
		Width:         defaultDimension,
		Height:        defaultDimension,
		Shape:         model.ShapeRectangle,
		FloorID:       c.FloorID,
		SpaceID:       c.SpaceID,
		IsActive:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			UpdatedAt:  timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.PositionX != nil {
		seat.PositionX = *c.PositionX
	}

	if c.PositionY != nil {
		seat.PositionY = *c.PositionY
	}

	if c.Width != nil {
		seat.Width = *c.Width
	}

	if c.Height != nil {
		seat.Height = *c.Height
	}

	if c.Shape != "" {
		seat.Shape = c.Shape
	}

	if c.Attributes != nil {
		seat.Attributes = *c.Attributes
	}

	if c.IsActive != nil {
		seat.IsActive = *c.IsActive
	}

	// Circles and squares keep equal dimensions. Snap to the smaller edge
	// so an oversized request never grows the seat.
	if seat.Shape == model.ShapeCircle || seat.Shape == model.ShapeSquare {
		side := min(seat.Width, seat.Height)
		seat.Width = side
		seat.Height = side
	}

	return seat
}

type UpdateSeatRequest struct {
	Description   *string             `db:"description"    json:"description"    validate:"omitempty,max=500"`
	PositionX     *float64            `db:"position_x"     json:"position_x"     validate:"omitempty,gte=0"`
	PositionY     *float64            `db:"position_y"     json:"position_y"     validate:"omitempty,gte=0"`
	RotationAngle *float64            `db:"rotation_angle" json:"rotation_angle" validate:"omitempty,gte=0,lte=345,multiple=15"`
	Width         *float64            `db:"width"          json:"width"          validate:"omitempty,gt=0"`
	Height        *float64            `db:"height"         json:"height"         validate:"omitempty,gt=0"`
	Shape         *string             `db:"shape"          json:"shape"          validate:"omitempty,oneof=rectangle circle square oval"`
	Attributes    *model.AttributeBag `db:"attributes"     json:"attributes"     validate:"omitempty"`
	FloorID       *string             `db:"floor_id"       json:"floor_id"       validate:"omitempty,uuid"`
	SpaceID       *string             `db:"space_id"       json:"space_id"       validate:"omitempty,uuid"`
	IsActive      *bool               `db:"is_active"      json:"is_active"      validate:"omitempty"`
}

type SeatResponse struct {
	ID            string             `json:"id"`
	SeatNumber    string             `json:"seat_number"`
	Description   string             `json:"description,omitempty"`
	PositionX     float64            `json:"position_x"`
	PositionY     float64            `json:"position_y"`
	RotationAngle float64            `json:"rotation_angle"`
	Width         float64            `json:"width"`
	Height        float64            `json:"height"`
	Shape         string             `json:"shape"`
	Attributes    model.AttributeBag `json:"attributes"`
	FloorID       *string            `json:"floor_id,omitempty"`
	SpaceID       *string            `json:"space_id,omitempty"`
	IsActive      bool               `json:"is_active"`
	gDto.Metadata
}

func (r *SeatResponse) FromModel(model model.Seat) {
	r.ID = model.ID
	r.SeatNumber = model.SeatNumber
	r.Description = model.Description
	r.PositionX = model.PositionX
	r.PositionY = model.PositionY
	r.RotationAngle = model.RotationAngle
	r.Width = model.Width
	r.Height = model.Height
	r.Shape = model.Shape
	r.Attributes = model.Attributes
	r.FloorID = model.FloorID
	r.SpaceID = model.SpaceID
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetSeatsResponse struct {
	Seats []SeatResponse `json:"seats"`
	Count int            `json:"count"`
}

func (r *GetSeatsResponse) FromModels(models []model.Seat) {
	r.Count = len(models)

	r.Seats = make([]SeatResponse, len(models))
	for i, mod := range models {
		r.Seats[i].FromModel(mod)
	}
}

type CreateSeatResponse struct {
	Message string       `json:"message"`
	Seat    SeatResponse `json:"seat"`
}

type UnassignedCountResponse struct {
	Count int `json:"count"`
}
