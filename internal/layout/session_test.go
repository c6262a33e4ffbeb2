package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/domains/seat/model"
	"seatmap/internal/layout"
)

func testScene() layout.Scene {
	return layout.Scene{Width: 1500, Height: 1500, GridSize: 50}
}

func newTestSession(seats ...model.Seat) *layout.Session {
	session := layout.NewSession("test-session", testScene())
	session.SetSeats(seats)

	return session
}

func seatFixture(id string) model.Seat {
	return model.Seat{
		ID:         id,
		SeatNumber: "S-" + id,
		PositionX:  100,
		PositionY:  100,
		Width:      100,
		Height:     100,
		Shape:      model.ShapeRectangle,
		IsActive:   true,
	}
}

func TestSessionSetSeatsRoundTrip(t *testing.T) {
	seats := []model.Seat{seatFixture("a"), seatFixture("b"), seatFixture("c")}

	session := newTestSession(seats...)

	assert.Equal(t, seats, session.Seats())
}

func TestSessionSetSeatsPrunesVanishedSelection(t *testing.T) {
	session := newTestSession(seatFixture("a"), seatFixture("b"))
	session.SelectSeat("a")

	session.SetSeats([]model.Seat{seatFixture("b")})

	assert.Empty(t, session.Selection())
}

func TestSessionSelectToggle(t *testing.T) {
	session := newTestSession(seatFixture("a"), seatFixture("b"))

	session.SelectSeat("a")
	assert.Equal(t, []string{"a"}, session.Selection())

	// Selecting again toggles to empty.
	session.SelectSeat("a")
	assert.Empty(t, session.Selection())

	// Selecting another seat replaces, never accumulates.
	session.SelectSeat("a")
	session.SelectSeat("b")
	assert.Equal(t, []string{"b"}, session.Selection())

	session.DeselectAll()
	assert.Empty(t, session.Selection())
}

func TestSessionUpdateSeat(t *testing.T) {
	session := newTestSession(seatFixture("a"), seatFixture("b"))

	x := float64(250)
	assert.True(t, session.UpdateSeat("a", layout.SeatPatch{PositionX: &x}))

	seats := session.Seats()
	assert.Equal(t, float64(250), seats[0].PositionX)

	// Untouched fields and the other seat survive.
	assert.Equal(t, float64(100), seats[0].PositionY)
	assert.Equal(t, seatFixture("b"), seats[1])

	// Missing id is a no-op.
	assert.False(t, session.UpdateSeat("missing", layout.SeatPatch{PositionX: &x}))
}

func TestSessionUpdateSeatShapeCoupling(t *testing.T) {
	seat := seatFixture("a")
	seat.Width = 120
	seat.Height = 80

	session := newTestSession(seat)

	// Changing shape to circle snaps both dimensions to the smaller one.
	shape := model.ShapeCircle
	session.UpdateSeat("a", layout.SeatPatch{Shape: &shape})

	got := session.Seats()[0]
	assert.Equal(t, float64(80), got.Width)
	assert.Equal(t, float64(80), got.Height)

	// Any later edit to one dimension propagates to the other, growing
	// included.
	width := float64(150)
	session.UpdateSeat("a", layout.SeatPatch{Width: &width})

	got = session.Seats()[0]
	assert.Equal(t, float64(150), got.Width)
	assert.Equal(t, float64(150), got.Height)

	height := float64(90)
	session.UpdateSeat("a", layout.SeatPatch{Height: &height})

	got = session.Seats()[0]
	assert.Equal(t, float64(90), got.Width)
	assert.Equal(t, float64(90), got.Height)
}

func TestSessionUpdateSeatFloorAssignment(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	floorID := "floor-1"
	session.UpdateSeat("a", layout.SeatPatch{FloorID: &floorID})
	assert.Equal(t, "floor-1", *session.Seats()[0].FloorID)

	session.UpdateSeat("a", layout.SeatPatch{ClearFloor: true})
	assert.Nil(t, session.Seats()[0].FloorID)
}

func TestSessionDeleteSeatsPrunesSelection(t *testing.T) {
	session := newTestSession(seatFixture("a"), seatFixture("b"), seatFixture("c"))

	session.SelectSeat("b")
	session.DeleteSeats("b", "c")

	assert.Empty(t, session.Selection())

	seats := session.Seats()
	assert.Len(t, seats, 1)
	assert.Equal(t, "a", seats[0].ID)
}

func TestSessionVisibleFloorFilter(t *testing.T) {
	floorA := "A"

	onFloor := seatFixture("1")
	onFloor.FloorID = &floorA

	unassigned := seatFixture("2")

	session := newTestSession(onFloor, unassigned)

	// Active floor shows exactly the seats on it.
	session.SetCurrentFloor(&floorA)

	visible := session.Visible()
	assert.Len(t, visible, 1)
	assert.Equal(t, "1", visible[0].ID)

	// No floor scopes the editor view to unassigned seats.
	session.SetCurrentFloor(nil)

	visible = session.Visible()
	assert.Len(t, visible, 1)
	assert.Equal(t, "2", visible[0].ID)
}

func TestSessionCommitDrag(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	seat, err := session.CommitDrag("a", 50, 0)
	assert.NoError(t, err)
	assert.Equal(t, float64(150), seat.PositionX)
	assert.Equal(t, float64(100), seat.PositionY)

	// The dragged seat becomes the sole selection.
	assert.Equal(t, []string{"a"}, session.Selection())
}

func TestSessionCommitDragZoomScaling(t *testing.T) {
	session := newTestSession(seatFixture("a"))
	session.SetZoom(0.5)

	// 50 screen pixels at zoom 0.5 is 100 scene units.
	seat, err := session.CommitDrag("a", 50, 50)
	assert.NoError(t, err)
	assert.Equal(t, float64(200), seat.PositionX)
	assert.Equal(t, float64(200), seat.PositionY)
}

func TestSessionCommitDragClampsToScene(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	seat, err := session.CommitDrag("a", 5000, -5000)
	assert.NoError(t, err)
	assert.Equal(t, float64(1400), seat.PositionX)
	assert.Equal(t, float64(0), seat.PositionY)

	_, err = session.CommitDrag("missing", 10, 10)
	assert.Error(t, err)
}

func TestSessionZoomBounds(t *testing.T) {
	session := newTestSession()

	assert.Equal(t, 1.0, session.Zoom())

	for range 30 {
		session.ZoomIn()
	}
	assert.Equal(t, layout.ZoomMax, session.Zoom())

	for range 30 {
		session.ZoomOut()
	}
	assert.Equal(t, layout.ZoomMin, session.Zoom())

	assert.Equal(t, 1.0, session.ResetZoom())

	assert.InDelta(t, 0.5, session.FitToContainer(750, 1500), 1e-9)
}

func TestSessionAttributes(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	assert.NoError(t, session.AddAttribute("a", "  window  "))
	assert.Equal(t, []string{"window"}, session.Seats()[0].Attributes.FreeAttributes)

	// Empty after trim is rejected.
	assert.Error(t, session.AddAttribute("a", "   "))

	// Exact duplicates are rejected and the list is unchanged.
	assert.Error(t, session.AddAttribute("a", "window"))
	assert.Len(t, session.Seats()[0].Attributes.FreeAttributes, 1)

	// Different case is a different attribute.
	assert.NoError(t, session.AddAttribute("a", "Window"))
}

func TestSessionAttributeCap(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	for i := range 10 {
		assert.NoError(t, session.AddAttribute("a", string(rune('a'+i))))
	}

	// The 11th distinct attribute is rejected and the list stays at 10.
	assert.Error(t, session.AddAttribute("a", "overflow"))
	assert.Len(t, session.Seats()[0].Attributes.FreeAttributes, 10)
}

func TestSessionRemoveAttribute(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	assert.NoError(t, session.AddAttribute("a", "one"))
	assert.NoError(t, session.AddAttribute("a", "two"))
	assert.NoError(t, session.AddAttribute("a", "three"))

	assert.NoError(t, session.RemoveAttribute("a", 1))
	assert.Equal(t, []string{"one", "three"}, session.Seats()[0].Attributes.FreeAttributes)

	assert.Error(t, session.RemoveAttribute("a", 5))
	assert.Error(t, session.RemoveAttribute("a", -1))
	assert.Error(t, session.RemoveAttribute("missing", 0))
}

func TestSessionPrimarySelection(t *testing.T) {
	session := newTestSession(seatFixture("a"))

	_, ok := session.PrimarySelection()
	assert.False(t, ok)

	session.SelectSeat("a")

	primary, ok := session.PrimarySelection()
	assert.True(t, ok)
	assert.Equal(t, "a", primary.ID)
}
