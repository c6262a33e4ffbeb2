package service

import (
	"context"
	"fmt"
	"sync"

	"seatmap/config"
	"seatmap/infras/otel"
	"seatmap/internal/domains/layout/model/dto"
	seatModel "seatmap/internal/domains/seat/model"
	seatDto "seatmap/internal/domains/seat/model/dto"
	seatRepo "seatmap/internal/domains/seat/repository"
	"seatmap/internal/layout"
	"seatmap/shared"
	"seatmap/shared/cache"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"
	"seatmap/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSeat    = "seat:get"
	cacheGetAllSeat = "seat:gets"
	cacheCountSeat  = "seat:count"
)

// Editor drives one seat-layout editing session: a server-side working copy
// of the seat collection plus the selection, floor filter and zoom state.
// Edits stay in the session until Save writes them back to the database.
type Editor interface {
	Open(ctx context.Context) (dto.SessionStateResponse, error)
	Close(ctx context.Context, sessionID string) error
	State(ctx context.Context, sessionID string) (dto.SessionStateResponse, error)
	Select(ctx context.Context, sessionID string, req dto.SelectSeatRequest) (dto.SessionStateResponse, error)
	Deselect(ctx context.Context, sessionID string) (dto.SessionStateResponse, error)
	SetFloor(ctx context.Context, sessionID string, req dto.SetFloorRequest) (dto.SessionStateResponse, error)
	Zoom(ctx context.Context, sessionID string, req dto.ZoomRequest) (dto.ZoomResponse, error)
	Drag(ctx context.Context, sessionID string, req dto.DragRequest) (seatDto.SeatResponse, error)
	Edit(ctx context.Context, sessionID, seatID string, req dto.EditSeatRequest) (seatDto.SeatResponse, error)
	AddSeat(ctx context.Context, sessionID string, req seatDto.CreateSeatRequest) (seatDto.SeatResponse, error)
	DeleteSeats(ctx context.Context, sessionID string, req dto.DeleteSeatsRequest) error
	AddAttribute(ctx context.Context, sessionID, seatID string, req dto.AddAttributeRequest) (seatDto.SeatResponse, error)
	RemoveAttribute(ctx context.Context, sessionID, seatID string, req dto.RemoveAttributeRequest) (seatDto.SeatResponse, error)
	Save(ctx context.Context, sessionID string) (dto.SaveResponse, error)
	Render(ctx context.Context, sessionID string) (string, error)
	Search(ctx context.Context, sessionID, name string) (dto.SearchSeatsResponse, error)
}

type serviceImpl struct {
	manager *layout.Manager
	repo    seatRepo.Seat
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel

	gates sync.Map // session id -> *layout.SearchGate
}

func New(manager *layout.Manager, repo seatRepo.Seat, cfg *config.Config, redisCache cache.RedisCache, otl otel.Otel) Editor {
	return &serviceImpl{
		manager: manager,
		repo:    repo,
		cfg:     cfg,
		cache:   redisCache,
		otel:    otl,
	}
}

func stateOf(session *layout.Session) dto.SessionStateResponse {
	visible := session.Visible()

	res := dto.SessionStateResponse{
		SessionID: session.ID(),
		Zoom:      session.Zoom(),
		FloorID:   session.CurrentFloor(),
		Selection: session.Selection(),
		Seats:     make([]seatDto.SeatResponse, len(visible)),
		Count:     len(visible),
	}

	for i, seat := range visible {
		res.Seats[i].FromModel(seat)
	}

	return res
}

func (s *serviceImpl) seatOf(session *layout.Session, seatID string) (seatDto.SeatResponse, error) {
	for _, seat := range session.Seats() {
		if seat.ID == seatID {
			res := seatDto.SeatResponse{}
			res.FromModel(seat)

			return res, nil
		}
	}

	return seatDto.SeatResponse{}, failure.NotFound("seat not found") // nolint:wrapcheck
}

func (s *serviceImpl) Open(ctx context.Context) (res dto.SessionStateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Open")
	defer scope.End()
	defer scope.TraceIfError(err)

	seats, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: seatModel.FieldSeatNumber, SortDir: "ASC"}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to load seats for layout session")

		return res, fmt.Errorf("failed to load seats for layout session: %w", err)
	}

	session := s.manager.Open()
	session.SetSeats(seats)

	log.Info().Str("sessionID", session.ID()).Int("seats", len(seats)).Msg("Opened layout session")

	return stateOf(session), nil
}

func (s *serviceImpl) Close(ctx context.Context, sessionID string) error {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Close")
	defer scope.End()

	s.manager.Close(sessionID)
	s.gates.Delete(sessionID)

	return nil
}

func (s *serviceImpl) State(ctx context.Context, sessionID string) (res dto.SessionStateResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".State")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	return stateOf(session), nil
}

func (s *serviceImpl) Select(ctx context.Context, sessionID string, req dto.SelectSeatRequest) (res dto.SessionStateResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Select")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	session.SelectSeat(req.SeatID)

	return stateOf(session), nil
}

func (s *serviceImpl) Deselect(ctx context.Context, sessionID string) (res dto.SessionStateResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Deselect")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	session.DeselectAll()

	return stateOf(session), nil
}

func (s *serviceImpl) SetFloor(ctx context.Context, sessionID string, req dto.SetFloorRequest) (res dto.SessionStateResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".SetFloor")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	session.SetCurrentFloor(req.FloorID)

	return stateOf(session), nil
}

func (s *serviceImpl) Zoom(ctx context.Context, sessionID string, req dto.ZoomRequest) (res dto.ZoomResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Zoom")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	switch req.Action {
	case dto.ZoomActionIn:
		res.Zoom = session.ZoomIn()
	case dto.ZoomActionOut:
		res.Zoom = session.ZoomOut()
	case dto.ZoomActionReset:
		res.Zoom = session.ResetZoom()
	case dto.ZoomActionFit:
		if req.ContainerWidth == nil || req.ContainerHeight == nil {
			return res, failure.BadRequestFromString("container dimensions are required to fit") // nolint:wrapcheck
		}

		res.Zoom = session.FitToContainer(*req.ContainerWidth, *req.ContainerHeight)
	case dto.ZoomActionSet:
		if req.Zoom == nil {
			return res, failure.BadRequestFromString("zoom value is required") // nolint:wrapcheck
		}

		res.Zoom = session.SetZoom(*req.Zoom)
	default:
		return res, failure.BadRequestFromString("unknown zoom action") // nolint:wrapcheck
	}

	return res, nil
}

func (s *serviceImpl) Drag(ctx context.Context, sessionID string, req dto.DragRequest) (res seatDto.SeatResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Drag")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	seat, err := session.CommitDrag(req.SeatID, req.DeltaX, req.DeltaY)
	if err != nil {
		return res, err
	}

	res.FromModel(seat)

	return res, nil
}

func (s *serviceImpl) Edit(ctx context.Context, sessionID, seatID string, req dto.EditSeatRequest) (res seatDto.SeatResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Edit")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	if !session.UpdateSeat(seatID, req.ToPatch()) {
		return res, failure.NotFound("seat not found") // nolint:wrapcheck
	}

	return s.seatOf(session, seatID)
}

// AddSeat creates the seat in the database immediately and drops it into the
// session as the new selection. Structural changes are not deferred to Save;
// only field edits are.
func (s *serviceImpl) AddSeat(ctx context.Context, sessionID string, req seatDto.CreateSeatRequest) (res seatDto.SeatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".AddSeat")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	duplicate, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: seatModel.FieldSeatNumber, Table: seatModel.TableName, Value: req.SeatNumber, Operator: gDto.FilterOperatorEq},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check seat number uniqueness")

		return res, fmt.Errorf("failed to check seat number uniqueness: %w", err)
	}

	if duplicate {
		return res, failure.Conflict("seat number already exists") // nolint:wrapcheck
	}

	seat := req.ToModel(user)

	// New seats land on the floor the session is looking at unless the
	// request pins one explicitly.
	if req.FloorID == nil {
		seat.FloorID = session.CurrentFloor()
	}

	if err = s.repo.Insert(ctx, seat); err != nil {
		return res, err
	}

	session.AddSeat(seat)
	session.SelectSeat(seat.ID)

	s.invalidateSeatCaches(ctx)

	res.FromModel(seat)

	return res, nil
}

// DeleteSeats removes the seats from the database and the session in one
// step, pruning them from the selection.
func (s *serviceImpl) DeleteSeats(ctx context.Context, sessionID string, req dto.DeleteSeatsRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".DeleteSeats")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: seatModel.FieldID, Table: seatModel.TableName, Value: req.SeatIDs, Operator: gDto.FilterOperatorIn},
		},
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete seats")

		return fmt.Errorf("failed to delete seats: %w", err)
	}

	session.DeleteSeats(req.SeatIDs...)

	s.invalidateSeatCaches(ctx)

	return nil
}

func (s *serviceImpl) AddAttribute(ctx context.Context, sessionID, seatID string, req dto.AddAttributeRequest) (res seatDto.SeatResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".AddAttribute")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	if err = session.AddAttribute(seatID, req.Attribute); err != nil {
		return res, err
	}

	return s.seatOf(session, seatID)
}

func (s *serviceImpl) RemoveAttribute(ctx context.Context, sessionID, seatID string, req dto.RemoveAttributeRequest) (res seatDto.SeatResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".RemoveAttribute")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	if err = session.RemoveAttribute(seatID, req.Index); err != nil {
		return res, err
	}

	return s.seatOf(session, seatID)
}

// Save writes every session seat back to the database one by one. Seats are
// committed in order; the first failure aborts the pass and already-saved
// seats stay committed, so the response reports how far the save got.
func (s *serviceImpl) Save(ctx context.Context, sessionID string) (res dto.SaveResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	for _, seat := range session.Seats() {
		fields := map[string]any{
			seatModel.FieldDescription:   seat.Description,
			seatModel.FieldPositionX:     seat.PositionX,
			seatModel.FieldPositionY:     seat.PositionY,
			seatModel.FieldRotationAngle: seat.RotationAngle,
			seatModel.FieldWidth:         seat.Width,
			seatModel.FieldHeight:        seat.Height,
			seatModel.FieldShape:         seat.Shape,
			seatModel.FieldAttributes:    seat.Attributes,
			seatModel.FieldFloorID:       seat.FloorID,
			seatModel.FieldSpaceID:       seat.SpaceID,
			seatModel.FieldIsActive:      seat.IsActive,
			constant.FieldModifiedAt:     timezone.Now(),
			constant.FieldModifiedBy:     user,
		}

		if err = s.repo.Update(ctx, fields, shared.FilterByID(seat.ID, seatModel.FieldID, seatModel.TableName)); err != nil {
			log.Error().Err(err).Str("seatID", seat.ID).Int("saved", res.Saved).Msg("layout save aborted")

			return res, fmt.Errorf("failed to save seat %s: %w", seat.ID, err)
		}

		res.Saved++
	}

	s.invalidateSeatCaches(ctx)

	unassigned, err := s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: seatModel.FieldFloorID, Table: seatModel.TableName, Operator: gDto.FilterIsNull},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count unassigned seats")

		return res, fmt.Errorf("failed to count unassigned seats: %w", err)
	}

	res.Unassigned = unassigned
	res.Message = "layout saved"

	return res, nil
}

func (s *serviceImpl) Render(ctx context.Context, sessionID string) (string, error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Render")
	defer scope.End()

	session, err := s.manager.Get(sessionID)
	if err != nil {
		return "", err
	}

	return layout.RenderSVG(session.Scene(), session.Visible(), session.Selection()), nil
}

// Search looks seats up by seat number. Each call takes a fresh sequence
// number from the session's gate; a response that lost the race against a
// newer search comes back marked stale with no results.
func (s *serviceImpl) Search(ctx context.Context, sessionID, name string) (res dto.SearchSeatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelLayoutScopeName, constant.OtelLayoutScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	if name == constant.Empty {
		return res, failure.BadRequestFromString("search term cannot be empty") // nolint:wrapcheck
	}

	if _, err = s.manager.Get(sessionID); err != nil {
		return res, err
	}

	gateAny, _ := s.gates.LoadOrStore(sessionID, &layout.SearchGate{})
	gate, _ := gateAny.(*layout.SearchGate)

	res.Sequence = gate.Begin()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: seatModel.FieldSeatNumber, Table: seatModel.TableName, Value: name, Operator: gDto.FilterOperatorLike},
		},
	}

	seats, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: seatModel.FieldSeatNumber, SortDir: "ASC"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search seats")

		return res, fmt.Errorf("failed to search seats: %w", err)
	}

	if !gate.Accept(res.Sequence) {
		res.Stale = true

		return res, nil
	}

	res.Seats = make([]seatDto.SeatResponse, len(seats))
	for i, seat := range seats {
		res.Seats[i].FromModel(seat)
	}

	res.Count = len(seats)

	return res, nil
}

func (s *serviceImpl) invalidateSeatCaches(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSeat)
		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()
}
