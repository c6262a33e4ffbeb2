package floor

import (
	"net/http"
	"strconv"

	"seatmap/infras/otel"
	"seatmap/internal/domains/floor/model"
	"seatmap/internal/domains/floor/model/dto"
	"seatmap/internal/domains/floor/service"
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
	service service.Floor
	otel    otel.Otel
}

func New(service service.Floor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/floors", func(routerGroup chi.Router) {
		routerGroup.Get("/active", handler.GetActiveFloors)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/floors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFloors)
		routerGroup.Post("/", handler.CreateFloor)
		routerGroup.Get("/{id}", handler.GetFloorByID)
		routerGroup.Put("/{id}", handler.UpdateFloor)
		routerGroup.Delete("/{id}", handler.DeleteFloor)
	})
}

// GetActiveFloors retrieves all active floors ordered by sort order.
// @Summary Get active floors
// @Description Retrieve all floors whose active flag is set, ordered by sort order.
// @Tags Floor
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetFloorsResponse "List of active floors"
// @Failure 500 {object} response.Error
// @Router /api/floors/active [get]
// @Security BearerAuth
func (handler *Handler) GetActiveFloors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActiveFloors")
	defer scope.End()

	floors, err := handler.service.GetActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active floors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Active floors retrieved successfully")

	response.WithJSON(w, http.StatusOK, floors)
}

// GetFloors retrieves all floors based on query parameters.
// @Summary Get all floors
// @Description Retrieve all floors with optional filtering and pagination.
// @Tags Floor
// @Accept json
// @Produce json
// @Param name query string false "Filter by name"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetFloorsResponse "List of floors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/floors [get]
// @Security BearerAuth
func (handler *Handler) GetFloors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFloors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(constant.RequestParamName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
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

	floors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get floors")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Floors retrieved successfully")

	response.WithJSON(w, http.StatusOK, floors)
}

// GetFloorByID retrieves a floor by its ID.
// @Summary Get a floor by ID
// @Description Retrieve a floor by its unique identifier.
// @Tags Floor
// @Accept json
// @Produce json
// @Param id path string true "Floor ID"
// @Success 200 {object} dto.FloorResponse "Floor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/floors/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFloorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFloorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	floor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get floor by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Floor retrieved successfully")

	response.WithJSON(w, http.StatusOK, floor)
}

// CreateFloor handles the creation of a new floor.
// @Summary Create a new floor
// @Description Create a new floor from a multipart form, optionally with a plan image.
// @Tags Floor
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "Floor name"
// @Param display_name formData string false "Display name"
// @Param description formData string false "Description"
// @Param sort_order formData int false "Sort order"
// @Param is_active formData boolean false "Active flag"
// @Param plan_image formData file false "Plan image"
// @Success 201 {object} dto.FloorResponse "Floor created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/floors [post]
// @Security BearerAuth
func (handler *Handler) CreateFloor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateFloor")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.CreateFloorRequest{
		Name:        r.FormValue(model.FieldName),
		DisplayName: r.FormValue(model.FieldDisplayName),
		Description: r.FormValue(model.FieldDescription),
		IsActive:    shared.ConvertStringToBool(r.FormValue(model.FieldIsActive)),
	}

	if sortOrder := r.FormValue(model.FieldSortOrder); sortOrder != "" {
		order, err := strconv.Atoi(sortOrder)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("sort_order must be an integer"))

			return
		}

		req.SortOrder = order
	}

	file, fileHeader, err := r.FormFile(constant.FormPlanImage)
	if err == nil {
		defer file.Close()

		req.PlanImage = fileHeader
		req.PlanImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate form values")

		response.WithError(w, err)

		return
	}

	floor, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create floor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Floor created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, floor)
}

// UpdateFloor updates an existing floor by its ID.
// @Summary Update a floor by ID
// @Description Update the details of an existing floor, optionally replacing its plan image.
// @Tags Floor
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Floor ID"
// @Param name formData string false "Floor name"
// @Param display_name formData string false "Display name"
// @Param description formData string false "Description"
// @Param sort_order formData int false "Sort order"
// @Param is_active formData boolean false "Active flag"
// @Param plan_image formData file false "Plan image"
// @Success 200 {object} response.Message "Floor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/floors/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateFloor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateFloor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequestFromString("invalid multipart form"))

		return
	}

	req := dto.UpdateFloorRequest{
		Name:     r.FormValue(model.FieldName),
		IsActive: shared.ConvertStringToBool(r.FormValue(model.FieldIsActive)),
	}

	if _, ok := r.Form[model.FieldDisplayName]; ok {
		displayName := r.FormValue(model.FieldDisplayName)
		req.DisplayName = &displayName
	}

	if _, ok := r.Form[model.FieldDescription]; ok {
		description := r.FormValue(model.FieldDescription)
		req.Description = &description
	}

	if sortOrder := r.FormValue(model.FieldSortOrder); sortOrder != "" {
		order, err := strconv.Atoi(sortOrder)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("sort_order must be an integer"))

			return
		}

		req.SortOrder = &order
	}

	file, fileHeader, err := r.FormFile(constant.FormPlanImage)
	if err == nil {
		defer file.Close()

		req.PlanImage = fileHeader
		req.PlanImageFile = file
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate form values")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update floor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Floor updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Floor updated successfully")
}

// DeleteFloor deletes a floor by its ID.
// @Summary Delete a floor by ID
// @Description Delete a floor. Seats assigned to it move back to the unassigned pool.
// @Tags Floor
// @Accept json
// @Produce json
// @Param id path string true "Floor ID"
// @Success 200 {object} response.Message "Floor deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/admin/floors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteFloor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteFloor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete floor")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Floor deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Floor deleted successfully")
}
