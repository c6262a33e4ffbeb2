package dto

import (
	"seatmap/internal/layout"

	seatDto "seatmap/internal/domains/seat/model/dto"
)

const (
	ZoomActionIn    = "in"
	ZoomActionOut   = "out"
	ZoomActionReset = "reset"
	ZoomActionFit   = "fit"
	ZoomActionSet   = "set"
)

// SessionStateResponse is the full editor state a client needs to render:
// the floor-scoped seat view, the selection and the current zoom.
type SessionStateResponse struct {
	SessionID string                 `json:"session_id"`
	Zoom      float64                `json:"zoom"`
	FloorID   *string                `json:"floor_id,omitempty"`
	Selection []string               `json:"selection"`
	Seats     []seatDto.SeatResponse `json:"seats"`
	Count     int                    `json:"count"`
}

type SelectSeatRequest struct {
	SeatID string `json:"seat_id" validate:"required,uuid"`
}

type SetFloorRequest struct {
	FloorID *string `json:"floor_id" validate:"omitempty,uuid"`
}

type ZoomRequest struct {
	Action          string   `json:"action"           validate:"required,oneof=in out reset fit set"`
	Zoom            *float64 `json:"zoom"             validate:"omitempty,gt=0"`
	ContainerWidth  *float64 `json:"container_width"  validate:"omitempty,gt=0"`
	ContainerHeight *float64 `json:"container_height" validate:"omitempty,gt=0"`
}

type ZoomResponse struct {
	Zoom float64 `json:"zoom"`
}

// DragRequest carries the pointer delta of a finished drag gesture in
// screen pixels. The service converts it to scene units by the session zoom.
type DragRequest struct {
	SeatID string  `json:"seat_id" validate:"required,uuid"`
	DeltaX float64 `json:"delta_x"`
	DeltaY float64 `json:"delta_y"`
}

type EditSeatRequest struct {
	Description   *string  `json:"description"    validate:"omitempty,max=500"`
	PositionX     *float64 `json:"position_x"     validate:"omitempty,gte=0"`
	PositionY     *float64 `json:"position_y"     validate:"omitempty,gte=0"`
	RotationAngle *float64 `json:"rotation_angle" validate:"omitempty"`
	Width         *float64 `json:"width"          validate:"omitempty,gt=0"`
	Height        *float64 `json:"height"         validate:"omitempty,gt=0"`
	Shape         *string  `json:"shape"          validate:"omitempty,oneof=rectangle circle square oval"`
	FloorID       *string  `json:"floor_id"       validate:"omitempty,uuid"`
	ClearFloor    bool     `json:"clear_floor"`
	SpaceID       *string  `json:"space_id"       validate:"omitempty,uuid"`
	IsActive      *bool    `json:"is_active"      validate:"omitempty"`
}

// ToPatch maps the request onto a session patch. Rotation is normalized to
// the 15 degree grid so the rotate control can send arbitrary angles.
func (e *EditSeatRequest) ToPatch() layout.SeatPatch {
	patch := layout.SeatPatch{
		Description: e.Description,
		PositionX:   e.PositionX,
		PositionY:   e.PositionY,
		Width:       e.Width,
		Height:      e.Height,
		Shape:       e.Shape,
		FloorID:     e.FloorID,
		ClearFloor:  e.ClearFloor,
		SpaceID:     e.SpaceID,
		IsActive:    e.IsActive,
	}

	if e.RotationAngle != nil {
		angle := layout.NormalizeRotation(*e.RotationAngle)
		patch.RotationAngle = &angle
	}

	return patch
}

type AddAttributeRequest struct {
	Attribute string `json:"attribute" validate:"required,max=100"`
}

type RemoveAttributeRequest struct {
	Index int `json:"index" validate:"gte=0"`
}

type DeleteSeatsRequest struct {
	SeatIDs []string `json:"seat_ids" validate:"required,min=1,dive,uuid"`
}

type SaveResponse struct {
	Message    string `json:"message"`
	Saved      int    `json:"saved"`
	Unassigned int    `json:"unassigned_count"`
}

// SearchSeatsResponse tags results with the search sequence that produced
// them. Stale marks a response that lost the race against a newer search;
// clients drop it instead of rendering outdated results.
type SearchSeatsResponse struct {
	Sequence uint64                 `json:"sequence"`
	Stale    bool                   `json:"stale"`
	Seats    []seatDto.SeatResponse `json:"seats"`
	Count    int                    `json:"count"`
}
