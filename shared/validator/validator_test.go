package validator_test

import (
	"strings"
	"testing"

	"seatmap/shared/validator"

	"github.com/stretchr/testify/assert"
)

type createSeatPayload struct {
	SeatNumber string  `json:"seat_number" validate:"required,max=50"`
	Width      float64 `json:"width"       validate:"required,gt=0"`
	Height     float64 `json:"height"      validate:"required,gt=0"`
	Shape      string  `json:"shape"       validate:"required,oneof=rectangle circle square oval"`
	Rotation   float64 `json:"rotation_angle" validate:"omitempty,gte=0,lte=345,multiple=15"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		payload createSeatPayload
		wantErr string
	}{
		{
			name: "valid rectangle",
			payload: createSeatPayload{
				SeatNumber: "A-101",
				Width:      100,
				Height:     60,
				Shape:      "rectangle",
				Rotation:   45,
			},
		},
		{
			name: "missing seat number",
			payload: createSeatPayload{
				Width:  100,
				Height: 60,
				Shape:  "circle",
			},
			wantErr: "SeatNumber is required",
		},
		{
			name: "unknown shape",
			payload: createSeatPayload{
				SeatNumber: "A-102",
				Width:      100,
				Height:     60,
				Shape:      "triangle",
			},
			wantErr: "Shape must be one of rectangle circle square oval",
		},
		{
			name: "rotation not on the 15 degree grid",
			payload: createSeatPayload{
				SeatNumber: "A-103",
				Width:      100,
				Height:     100,
				Shape:      "square",
				Rotation:   37,
			},
			wantErr: "Rotation must be a multiple of 15",
		},
		{
			name: "rotation beyond control range",
			payload: createSeatPayload{
				SeatNumber: "A-104",
				Width:      100,
				Height:     100,
				Shape:      "square",
				Rotation:   360,
			},
			wantErr: "Rotation must be less than or equal to 345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.payload)

			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDecodesBody(t *testing.T) {
	body := strings.NewReader(`{"seat_number":"B-1","width":80,"height":80,"shape":"square"}`)

	var payload createSeatPayload
	err := validator.Validate(body, &payload)

	assert.NoError(t, err)
	assert.Equal(t, "B-1", payload.SeatNumber)
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	body := strings.NewReader(`{"seat_number":`)

	var payload createSeatPayload
	err := validator.Validate(body, &payload)

	assert.Error(t, err)
}
