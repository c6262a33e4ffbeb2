package layout

import (
	"slices"
	"strings"
	"sync"
	"time"

	"seatmap/internal/domains/seat/model"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
	"seatmap/shared/timezone"
)

// SeatPatch carries a partial seat edit. Nil fields are left untouched.
// ClearFloor unassigns the seat; it wins over FloorID when both are set.
type SeatPatch struct {
	Description   *string
	PositionX     *float64
	PositionY     *float64
	RotationAngle *float64
	Width         *float64
	Height        *float64
	Shape         *string
	FloorID       *string
	ClearFloor    bool
	SpaceID       *string
	IsActive      *bool
}

// Session is the authoritative in-memory seat collection for one editing
// session, plus the transient selection, floor filter and zoom state every
// consumer reads from and writes through. All mutation goes through the
// method set; callers never touch returned seats directly.
type Session struct {
	mu sync.RWMutex

	id         string
	scene      Scene
	seats      []model.Seat
	selection  []string
	floor      *string
	zoom       float64
	lastAccess time.Time
}

func NewSession(id string, scene Scene) *Session {
	return &Session{
		id:         id,
		scene:      scene,
		zoom:       1.0,
		lastAccess: timezone.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Scene() Scene {
	return s.scene
}

func (s *Session) touch() {
	s.lastAccess = timezone.Now()
}

// LastAccess reports when the session was last read or mutated.
func (s *Session) LastAccess() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastAccess
}

// SetSeats replaces the full collection, preserving the given order.
// Selected ids that no longer exist are pruned so the selection never
// references a missing seat.
func (s *Session) SetSeats(seats []model.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.seats = slices.Clone(seats)
	s.pruneSelection()
}

// Seats returns a copy of the collection in insertion order.
func (s *Session) Seats() []model.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.seats)
}

// AddSeat appends a fully-formed seat. No dedup by id is performed.
func (s *Session) AddSeat(seat model.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.seats = append(s.seats, seat)
}

// UpdateSeat merges the patch into the seat matching id, leaving every
// other field and every other seat untouched. A missing id is a no-op.
// Circles and squares keep width == height: editing one dimension copies
// the new value to the other, and switching a seat to a uniform shape
// snaps both to the smaller dimension.
func (s *Session) UpdateSeat(id string, patch SeatPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	seat := &s.seats[idx]
	wasUniform := isUniformShape(seat.Shape)

	if patch.Description != nil {
		seat.Description = *patch.Description
	}

	if patch.PositionX != nil {
		seat.PositionX = *patch.PositionX
	}

	if patch.PositionY != nil {
		seat.PositionY = *patch.PositionY
	}

	if patch.RotationAngle != nil {
		seat.RotationAngle = *patch.RotationAngle
	}

	if patch.Width != nil {
		seat.Width = *patch.Width
	}

	if patch.Height != nil {
		seat.Height = *patch.Height
	}

	if patch.Shape != nil {
		seat.Shape = *patch.Shape
	}

	switch {
	case patch.ClearFloor:
		seat.FloorID = nil
	case patch.FloorID != nil:
		floorID := *patch.FloorID
		seat.FloorID = &floorID
	}

	if patch.SpaceID != nil {
		spaceID := *patch.SpaceID
		seat.SpaceID = &spaceID
	}

	if patch.IsActive != nil {
		seat.IsActive = *patch.IsActive
	}

	if isUniformShape(seat.Shape) {
		switch {
		case wasUniform && patch.Width != nil && patch.Height == nil:
			seat.Height = seat.Width
		case wasUniform && patch.Height != nil && patch.Width == nil:
			seat.Width = seat.Height
		default:
			side := min(seat.Width, seat.Height)
			seat.Width = side
			seat.Height = side
		}
	}

	return true
}

func isUniformShape(shape string) bool {
	return shape == model.ShapeCircle || shape == model.ShapeSquare
}

// DeleteSeats removes the matching seats and drops their ids from the
// selection, so a deleted seat can never remain selected.
func (s *Session) DeleteSeats(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.seats = slices.DeleteFunc(s.seats, func(seat model.Seat) bool {
		return slices.Contains(ids, seat.ID)
	})

	s.selection = slices.DeleteFunc(s.selection, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

// SelectSeat toggles: selecting an already-selected seat empties the
// selection, anything else makes it exactly [id].
func (s *Session) SelectSeat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if slices.Contains(s.selection, id) {
		s.selection = nil

		return
	}

	s.selection = []string{id}
}

func (s *Session) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.selection = nil
}

func (s *Session) Selection() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.selection)
}

// PrimarySelection returns the seat the properties panel binds to.
func (s *Session) PrimarySelection() (model.Seat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.selection) == 0 {
		return model.Seat{}, false
	}

	idx := s.indexOf(s.selection[0])
	if idx < 0 {
		return model.Seat{}, false
	}

	return s.seats[idx], true
}

// SetCurrentFloor sets the active floor filter. Nil scopes the editor view
// to unassigned seats.
func (s *Session) SetCurrentFloor(floorID *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	if floorID == nil {
		s.floor = nil

		return
	}

	id := *floorID
	s.floor = &id
}

func (s *Session) CurrentFloor() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.floor == nil {
		return nil
	}

	id := *s.floor
	return &id
}

// Visible returns the seats the floor-scoped editor view renders: seats on
// the active floor, or unassigned seats when no floor is chosen.
func (s *Session) Visible() []model.Seat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := []model.Seat{}

	for _, seat := range s.seats {
		switch {
		case s.floor == nil && seat.FloorID == nil:
			visible = append(visible, seat)
		case s.floor != nil && seat.FloorID != nil && *seat.FloorID == *s.floor:
			visible = append(visible, seat)
		}
	}

	return visible
}

func (s *Session) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.zoom
}

func (s *Session) SetZoom(zoom float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.zoom = ClampZoom(zoom)

	return s.zoom
}

func (s *Session) ZoomIn() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.zoom = StepZoom(s.zoom, 1)

	return s.zoom
}

func (s *Session) ZoomOut() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.zoom = StepZoom(s.zoom, -1)

	return s.zoom
}

func (s *Session) ResetZoom() float64 {
	return s.SetZoom(1.0)
}

// FitToContainer sets the zoom that fits the scene into the given viewport.
func (s *Session) FitToContainer(containerWidth, containerHeight float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.zoom = s.scene.FitZoom(containerWidth, containerHeight)

	return s.zoom
}

// CommitDrag applies a drag gesture that ended with the given pointer
// delta in screen pixels. The dragged seat becomes the sole selection, the
// delta is converted to scene units by the current zoom, and the result is
// clamped so the bounding box stays inside the scene.
func (s *Session) CommitDrag(id string, deltaXPx, deltaYPx float64) (model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := s.indexOf(id)
	if idx < 0 {
		return model.Seat{}, failure.NotFound("seat not found") // nolint:wrapcheck
	}

	s.selection = []string{id}

	seat := &s.seats[idx]

	newX := seat.PositionX + deltaXPx/s.zoom
	newY := seat.PositionY + deltaYPx/s.zoom

	seat.PositionX, seat.PositionY = s.scene.ClampToScene(newX, newY, seat.Width, seat.Height)

	return *seat, nil
}

// AddAttribute appends a free attribute tag to the seat. The input is
// trimmed; empty strings, exact duplicates and growth past the cap are
// rejected with user-facing messages.
func (s *Session) AddAttribute(id, attribute string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := s.indexOf(id)
	if idx < 0 {
		return failure.NotFound("seat not found") // nolint:wrapcheck
	}

	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return failure.BadRequestFromString("attribute cannot be empty") // nolint:wrapcheck
	}

	seat := &s.seats[idx]

	if slices.Contains(seat.Attributes.FreeAttributes, attribute) {
		return failure.BadRequestFromString("attribute already exists") // nolint:wrapcheck
	}

	if len(seat.Attributes.FreeAttributes) >= constant.MaxFreeAttributes {
		return failure.BadRequestFromString("maximum number of attributes reached") // nolint:wrapcheck
	}

	seat.Attributes.FreeAttributes = append(seat.Attributes.FreeAttributes, attribute)

	return nil
}

// RemoveAttribute removes the free attribute at the given index.
func (s *Session) RemoveAttribute(id string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	idx := s.indexOf(id)
	if idx < 0 {
		return failure.NotFound("seat not found") // nolint:wrapcheck
	}

	seat := &s.seats[idx]

	if index < 0 || index >= len(seat.Attributes.FreeAttributes) {
		return failure.BadRequestFromString("attribute index out of range") // nolint:wrapcheck
	}

	seat.Attributes.FreeAttributes = slices.Delete(seat.Attributes.FreeAttributes, index, index+1)

	return nil
}

func (s *Session) indexOf(id string) int {
	return slices.IndexFunc(s.seats, func(seat model.Seat) bool {
		return seat.ID == id
	})
}

func (s *Session) pruneSelection() {
	s.selection = slices.DeleteFunc(s.selection, func(id string) bool {
		return s.indexOf(id) < 0
	})
}
