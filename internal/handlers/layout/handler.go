package layout

import (
	"net/http"

	"seatmap/infras/otel"
	"seatmap/internal/domains/layout/model/dto"
	"seatmap/internal/domains/layout/service"
	seatDto "seatmap/internal/domains/seat/model/dto"
	"seatmap/shared/constant"
	"seatmap/shared/validator"
	"seatmap/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Editor
	otel    otel.Otel
}

func New(service service.Editor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/layout/sessions", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OpenSession)

		routerGroup.Route("/{id}", func(sessionGroup chi.Router) {
			sessionGroup.Get("/", handler.GetSessionState)
			sessionGroup.Delete("/", handler.CloseSession)
			sessionGroup.Post("/select", handler.SelectSeat)
			sessionGroup.Post("/deselect", handler.DeselectSeats)
			sessionGroup.Post("/floor", handler.SetFloor)
			sessionGroup.Post("/zoom", handler.Zoom)
			sessionGroup.Post("/drag", handler.DragSeat)
			sessionGroup.Post("/save", handler.SaveSession)
			sessionGroup.Get("/search", handler.SearchSeats)
			sessionGroup.Get("/scene.svg", handler.RenderScene)

			sessionGroup.Post("/seats", handler.AddSeat)
			sessionGroup.Delete("/seats", handler.DeleteSeats)
			sessionGroup.Patch("/seats/{seatID}", handler.EditSeat)
			sessionGroup.Post("/seats/{seatID}/attributes", handler.AddAttribute)
			sessionGroup.Delete("/seats/{seatID}/attributes", handler.RemoveAttribute)
		})
	})
}

// OpenSession opens a new layout editing session.
// @Summary Open a layout session
// @Description Open a new editing session loaded with the current seat collection.
// @Tags Layout
// @Accept json
// @Produce json
// @Success 201 {object} dto.SessionStateResponse "Session state"
// @Failure 500 {object} response.Error
// @Router /api/admin/layout/sessions [post]
// @Security BearerAuth
func (handler *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenSession")
	defer scope.End()

	state, err := handler.service.Open(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to open layout session")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Layout session opened by user " + user)

	response.WithJSON(w, http.StatusCreated, state)
}

// GetSessionState returns the current state of a session.
// @Summary Get session state
// @Description Retrieve the visible seats, selection, floor filter and zoom of a session.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse "Session state"
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetSessionState(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSessionState")
	defer scope.End()

	state, err := handler.service.State(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get session state")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, state)
}

// CloseSession discards a session and its unsaved edits.
// @Summary Close a layout session
// @Description Close an editing session. Unsaved edits are discarded.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Message "Session closed"
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseSession")
	defer scope.End()

	if err := handler.service.Close(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to close session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Layout session closed")

	response.WithMessage(w, http.StatusOK, "Session closed")
}

// SelectSeat toggles a seat in the session selection.
// @Summary Toggle seat selection
// @Description Toggle a seat in the session selection. Selecting a selected seat deselects it.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectSeatRequest true "Select Seat Request"
// @Success 200 {object} dto.SessionStateResponse "Session state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/select [post]
// @Security BearerAuth
func (handler *Handler) SelectSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectSeat")
	defer scope.End()

	req := dto.SelectSeatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	state, err := handler.service.Select(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle seat selection")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, state)
}

// DeselectSeats clears the session selection.
// @Summary Clear seat selection
// @Description Clear the session selection completely.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse "Session state"
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/deselect [post]
// @Security BearerAuth
func (handler *Handler) DeselectSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeselectSeats")
	defer scope.End()

	state, err := handler.service.Deselect(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear selection")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, state)
}

// SetFloor switches the session floor filter.
// @Summary Set the session floor filter
// @Description Scope the session view to a floor, or to the unassigned pool when floor_id is omitted.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SetFloorRequest true "Set Floor Request"
// @Success 200 {object} dto.SessionStateResponse "Session state"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/floor [post]
// @Security BearerAuth
func (handler *Handler) SetFloor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetFloor")
	defer scope.End()

	req := dto.SetFloorRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	state, err := handler.service.SetFloor(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set floor filter")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, state)
}

// Zoom applies a zoom action to the session.
// @Summary Apply a zoom action
// @Description Zoom in, out, reset, fit to container or set an explicit zoom level.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ZoomRequest true "Zoom Request"
// @Success 200 {object} dto.ZoomResponse "Resulting zoom level"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/zoom [post]
// @Security BearerAuth
func (handler *Handler) Zoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Zoom")
	defer scope.End()

	req := dto.ZoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	zoom, err := handler.service.Zoom(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply zoom action")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, zoom)
}

// DragSeat moves a seat by a screen-space delta.
// @Summary Drag a seat
// @Description Move a seat by a screen-space delta. The delta is scaled by the zoom level and the result clamped to the scene.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.DragRequest true "Drag Request"
// @Success 200 {object} seatDto.SeatResponse "Moved seat"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/drag [post]
// @Security BearerAuth
func (handler *Handler) DragSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DragSeat")
	defer scope.End()

	req := dto.DragRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	seat, err := handler.service.Drag(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to drag seat")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, seat)
}

// SaveSession persists the session edits.
// @Summary Save a layout session
// @Description Write the session edits back to the database seat by seat and report the refreshed unassigned count.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SaveResponse "Save result"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/save [post]
// @Security BearerAuth
func (handler *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SaveSession")
	defer scope.End()

	res, err := handler.service.Save(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save layout session")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Layout session saved by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// SearchSeats searches the seat collection from within a session.
// @Summary Search seats in a session
// @Description Search seats by seat number. Responses arriving out of order are marked stale and carry no seats.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param seat_number query string true "Seat number fragment"
// @Success 200 {object} dto.SearchSeatsResponse "Search result"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/search [get]
// @Security BearerAuth
func (handler *Handler) SearchSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchSeats")
	defer scope.End()

	res, err := handler.service.Search(ctx, chi.URLParam(r, constant.RequestParamID), r.URL.Query().Get(constant.RequestParamSeatNumber))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search seats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RenderScene renders the session scene as SVG.
// @Summary Render the session scene
// @Description Render the visible seats of the session as an SVG document.
// @Tags Layout
// @Accept json
// @Produce image/svg+xml
// @Param id path string true "Session ID"
// @Success 200 {string} string "SVG document"
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/scene.svg [get]
// @Security BearerAuth
func (handler *Handler) RenderScene(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RenderScene")
	defer scope.End()

	svg, err := handler.service.Render(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to render scene")

		response.WithError(w, err)

		return
	}

	response.WithSVG(w, svg)
}

// AddSeat creates a seat from within a session.
// @Summary Add a seat in a session
// @Description Create a seat immediately in the database and select it in the session. Without a floor the seat inherits the session floor filter.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body seatDto.CreateSeatRequest true "Create Seat Request"
// @Success 201 {object} seatDto.SeatResponse "Created seat"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/seats [post]
// @Security BearerAuth
func (handler *Handler) AddSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddSeat")
	defer scope.End()

	req := seatDto.CreateSeatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	seat, err := handler.service.AddSeat(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add seat")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seat added in session by user " + user)

	response.WithJSON(w, http.StatusCreated, seat)
}

// DeleteSeats removes seats from within a session.
// @Summary Delete seats in a session
// @Description Delete the given seats from the database and prune them from the session.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.DeleteSeatsRequest true "Delete Seats Request"
// @Success 200 {object} response.Message "Seats deleted"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/seats [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSeats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSeats")
	defer scope.End()

	req := dto.DeleteSeatsRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteSeats(ctx, chi.URLParam(r, constant.RequestParamID), req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete seats")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Seats deleted in session by user " + user)

	response.WithMessage(w, http.StatusOK, "Seats deleted")
}

// EditSeat applies field edits to a seat in the session.
// @Summary Edit a seat in a session
// @Description Apply field edits to the session working copy. Rotation snaps to the 15 degree grid and circle or square seats keep equal dimensions. Changes persist on save.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param seatID path string true "Seat ID"
// @Param request body dto.EditSeatRequest true "Edit Seat Request"
// @Success 200 {object} seatDto.SeatResponse "Edited seat"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/seats/{seatID} [patch]
// @Security BearerAuth
func (handler *Handler) EditSeat(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditSeat")
	defer scope.End()

	req := dto.EditSeatRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	seat, err := handler.service.Edit(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamSeatID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit seat")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, seat)
}

// AddAttribute adds a free attribute to a seat in the session.
// @Summary Add a seat attribute
// @Description Add a free attribute to the session working copy. A seat holds at most ten attributes.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param seatID path string true "Seat ID"
// @Param request body dto.AddAttributeRequest true "Add Attribute Request"
// @Success 200 {object} seatDto.SeatResponse "Updated seat"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/seats/{seatID}/attributes [post]
// @Security BearerAuth
func (handler *Handler) AddAttribute(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAttribute")
	defer scope.End()

	req := dto.AddAttributeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	seat, err := handler.service.AddAttribute(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamSeatID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add attribute")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, seat)
}

// RemoveAttribute removes a free attribute from a seat in the session.
// @Summary Remove a seat attribute
// @Description Remove the attribute at the given index from the session working copy.
// @Tags Layout
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param seatID path string true "Seat ID"
// @Param request body dto.RemoveAttributeRequest true "Remove Attribute Request"
// @Success 200 {object} seatDto.SeatResponse "Updated seat"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /api/admin/layout/sessions/{id}/seats/{seatID}/attributes [delete]
// @Security BearerAuth
func (handler *Handler) RemoveAttribute(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveAttribute")
	defer scope.End()

	req := dto.RemoveAttributeRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	seat, err := handler.service.RemoveAttribute(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamSeatID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove attribute")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, seat)
}
