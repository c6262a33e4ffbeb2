package seat

import (
	"net/http"

	"seatmap/infras/otel"
	"seatmap/internal/domains/seat/model"
	"seatmap/internal/domains/seat/model/dto"
	"seatmap/internal/domains/seat/service"
	"seatmap/shared"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"
	"seatmap/shared/validator"
	"seatmap/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Seat
	otel    otel.Otel
}

func New(service service.Seat, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/seats", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetSeats)
		routerGroup.Get("/active", handler.GetActiveSeats)
		routerGroup.Get("/search", handler.SearchSeats)
		routerGroup.Get("/floor", handler.GetSeatsByFloor)
		routerGroup.Get("/space", handler.GetSeatsBySpace)
		routerGroup.Get("/{id}", handler.GetSeatByID)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/seats", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSeat)
		routerGroup.Get("/unassigned", handler.GetUnassignedSeats)
		routerGroup.Put("/{id}", handler.UpdateSeat)
		routerGroup.Delete("/{id}", handler.DeleteSeat)
	})
}

// GetSeats retrieves all seats based on query parameters.
// @Summary Get all seats
// @Description Retrieve all seats with optional filtering and pagination.
// @Tags Seat
// @Accept json
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Param floor_id query string false "Filter by floor"
// @Param space_id query string false "Filter by space"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetSeatsResponse "List of seats"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/seats [get]
// @Security BearerAuth
func (handler *Handler) GetSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeats")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if floorID := r.URL.Query().Get(constant.RequestParamFloorID); floorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFloorID,
			Operator: gDto.FilterOperatorEq,
			Value:    floorID,
			Table:    model.TableName,
		})
	}

	if spaceID := r.URL.Query().Get(constant.RequestParamSpaceID); spaceID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSpaceID,
			Operator: gDto.FilterOperatorEq,
			Value:    spaceID,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seats retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// GetActiveSeats retrieves all bookable seats.
// @Summary Get active seats
// @Description Retrieve all seats whose active flag is set.
// @Tags Seat
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetSeatsResponse "List of active seats"
// @Failure 500 {object} response.Error
// @Router /api/seats/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveSeats")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active seats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active seats retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// SearchSeats looks seats up by seat number.
// @Summary Search seats
// @Description Case-insensitive substring search on seat number.
// @Tags Seat
// @Accept json
// @Produce json
// @Param seat_number query string true "Seat number fragment"
// @Success 200 {object} dto.GetSeatsResponse "Matching seats"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/seats/search [get]
// @Security BearerAuth
func (handler *Handler) SearchSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchSeats")
	defer scope.End()

	seatNumber := r.URL.Query().Get(constant.RequestParamSeatNumber)
	if seatNumber == "" {
		err := failure.BadRequestFromString("seat_number query is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSeatNumber,
				Operator: gDto.FilterOperatorLike,
				Value:    seatNumber,
				Table:    model.TableName,
			},
		},
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search seats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seats searched successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// GetSeatsByFloor retrieves the seats of one floor.
// @Summary Get seats by floor
// @Description Retrieve the seats assigned to a floor. Without a floor_id the unassigned seats are returned.
// @Tags Seat
// @Accept json
// @Produce json
// @Param floor_id query string false "Floor ID"
// @Success 200 {object} dto.GetSeatsResponse "Seats on the floor"
// @Failure 500 {object} response.Error
// @Router /api/seats/floor [get]
// @Security BearerAuth
func (handler *Handler) GetSeatsByFloor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatsByFloor")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	// No floor means the unassigned pool, mirroring the editor's floor
	// filter semantics.
	filter := gDto.Filter{
		Field:    model.FieldFloorID,
		Operator: gDto.FilterIsNull,
		Table:    model.TableName,
	}

	if floorID := r.URL.Query().Get(constant.RequestParamFloorID); floorID != "" {
		filter.Operator = gDto.FilterOperatorEq
		filter.Value = floorID
	}

	seats, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{Filters: []any{filter}})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seats by floor")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seats by floor retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// GetSeatsBySpace retrieves the seats of one space.
// @Summary Get seats by space
// @Description Retrieve the seats assigned to a space.
// @Tags Seat
// @Accept json
// @Produce json
// @Param space_id query string true "Space ID"
// @Success 200 {object} dto.GetSeatsResponse "Seats in the space"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/seats/space [get]
// @Security BearerAuth
func (handler *Handler) GetSeatsBySpace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatsBySpace")
	defer scope.End()

	spaceID := r.URL.Query().Get(constant.RequestParamSpaceID)
	if spaceID == "" {
		err := failure.BadRequestFromString("space_id query is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSpaceID,
				Operator: gDto.FilterOperatorEq,
				Value:    spaceID,
				Table:    model.TableName,
			},
		},
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seats by space")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seats by space retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// GetSeatByID retrieves a seat by its ID.
// @Summary Get a seat by ID
// @Description Retrieve a seat by its unique identifier.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Success 200 {object} dto.SeatResponse "Seat details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/seats/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSeatByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSeatByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	seat, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get seat by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Seat retrieved successfully")

	response.WithJSON(w, http.StatusOK, seat)
}

// CreateSeat handles the creation of a new seat.
// @Summary Create a new seat
// @Description Create a new seat with the provided details. Omitted geometry falls back to the defaults.
// @Tags Seat
// @Accept json
// @Produce json
// @Param request body dto.CreateSeatRequest true "Create Seat Request"
// @Success 201 {object} dto.CreateSeatResponse "Seat created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/seats [post]
// @Security BearerAuth
func (handler *Handler) CreateSeat(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSeat")
	defer scope.End()

	req := dto.CreateSeatRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	seat, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create seat")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, dto.CreateSeatResponse{
		Message: "Seat created successfully",
		Seat:    seat,
	})
}

// GetUnassignedSeats retrieves the seats without a floor.
// @Summary Get unassigned seats
// @Description Retrieve the seats that are not assigned to any floor, with their count.
// @Tags Seat
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetSeatsResponse "Unassigned seats"
// @Failure 500 {object} response.Error
// @Router /api/admin/seats/unassigned [get]
// @Security BearerAuth
func (handler *Handler) GetUnassignedSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUnassignedSeats")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFloorID,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}

	seats, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get unassigned seats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Unassigned seats retrieved successfully")

	response.WithJSON(w, http.StatusOK, seats)
}

// UpdateSeat updates an existing seat by its ID.
// @Summary Update a seat by ID
// @Description Update the details of an existing seat. Circle and square seats keep equal dimensions.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Param request body dto.UpdateSeatRequest true "Update Seat Request"
// @Success 200 {object} response.Message "Seat updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/seats/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSeat")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateSeatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Seat updated successfully")
}

// DeleteSeat deletes a seat by its ID.
// @Summary Delete a seat by ID
// @Description Delete a seat using its unique identifier.
// @Tags Seat
// @Accept json
// @Produce json
// @Param id path string true "Seat ID"
// @Success 200 {object} response.Message "Seat deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/seats/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSeat")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Seat deleted successfully")
}
