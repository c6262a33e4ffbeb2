package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/domains/seat/model"
	"seatmap/internal/layout"
)

func TestRenderSVGShapes(t *testing.T) {
	rect := seatFixture("r")

	circle := seatFixture("c")
	circle.Shape = model.ShapeCircle
	circle.PositionX = 300
	circle.PositionY = 300

	svg := layout.RenderSVG(testScene(), []model.Seat{rect, circle}, nil)

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
	assert.Contains(t, svg, `<rect x="100" y="100" width="100" height="100"`)
	assert.Contains(t, svg, `<ellipse cx="350" cy="350" rx="50" ry="50"`)
}

func TestRenderSVGRotationAroundCenter(t *testing.T) {
	seat := seatFixture("a")
	seat.RotationAngle = 45

	svg := layout.RenderSVG(testScene(), []model.Seat{seat}, nil)

	assert.Contains(t, svg, `transform="rotate(45 150 150)"`)
}

func TestRenderSVGStatePrecedence(t *testing.T) {
	active := seatFixture("active")

	inactive := seatFixture("inactive")
	inactive.IsActive = false

	// Selection styling overrides the active/inactive treatment.
	svg := layout.RenderSVG(testScene(), []model.Seat{active, inactive}, []string{"active"})

	assert.Contains(t, svg, `fill="#fde68a"`)
	assert.Contains(t, svg, `fill="#d1d5db"`)
	assert.NotContains(t, svg, `fill="#86efac"`)

	// Without selection the active seat gets the active fill.
	svg = layout.RenderSVG(testScene(), []model.Seat{active}, nil)
	assert.Contains(t, svg, `fill="#86efac"`)
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	seat := seatFixture("a")
	seat.SeatNumber = `<A&B>`

	svg := layout.RenderSVG(testScene(), []model.Seat{seat}, nil)

	assert.Contains(t, svg, "&lt;A&amp;B&gt;")
	assert.NotContains(t, svg, "<A&B>")
}

func TestRenderSVGGrid(t *testing.T) {
	svg := layout.RenderSVG(layout.Scene{Width: 100, Height: 100, GridSize: 50}, nil, nil)
	assert.Contains(t, svg, `<line x1="50" y1="0" x2="50" y2="100"`)

	svg = layout.RenderSVG(layout.Scene{Width: 100, Height: 100}, nil, nil)
	assert.NotContains(t, svg, "<line")
}
