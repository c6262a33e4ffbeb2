package service

import (
	"context"
	"fmt"

	"seatmap/config"
	"seatmap/infras/otel"
	"seatmap/internal/domains/seat/model"
	"seatmap/internal/domains/seat/model/dto"
	"seatmap/internal/domains/seat/repository"
	"seatmap/shared"
	"seatmap/shared/cache"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSeat    = "seat:get"
	cacheGetAllSeat = "seat:gets"
	cacheCountSeat  = "seat:count"
)

type Seat interface {
	Create(ctx context.Context, req dto.CreateSeatRequest) (dto.SeatResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSeatsResponse, error)
	Get(ctx context.Context, id string) (dto.SeatResponse, error)
	Update(ctx context.Context, req dto.UpdateSeatRequest, id string) error
	Delete(ctx context.Context, id string) error
	CountUnassigned(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo  repository.Seat
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Seat, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Seat {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSeatRequest) (res dto.SeatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	duplicate, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldSeatNumber, Table: model.TableName, Value: req.SeatNumber, Operator: gDto.FilterOperatorEq},
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

	if err = s.repo.Insert(ctx, seat); err != nil {
		return res, err
	}

	res.FromModel(seat)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSeatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSeat, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seats")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seats")

		return res, fmt.Errorf("failed to get seats: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SeatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSeat, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for seat")

		return res, nil
	}

	seat, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get seat")

		return res, fmt.Errorf("failed to get seat: %w", err)
	}

	if seat.ID == constant.Empty {
		return res, failure.NotFound("seat not found") // nolint:wrapcheck
	}

	res.FromModel(seat)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save seat to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSeatRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check seat existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("seat not found")

		return failure.NotFound("seat not found")
	}

	applyShapeCoupling(&req, current)

	updatedFields := shared.TransformFields(req, user)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update seat")

		return fmt.Errorf("failed to update seat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSeat, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete seat cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return nil
}

// applyShapeCoupling keeps width == height for circles and squares. An
// edit to one dimension copies the new value to the other; switching a
// seat to a uniform shape snaps both to the smaller effective dimension.
func applyShapeCoupling(req *dto.UpdateSeatRequest, current model.Seat) {
	shape := current.Shape
	if req.Shape != nil {
		shape = *req.Shape
	}

	if shape != model.ShapeCircle && shape != model.ShapeSquare {
		return
	}

	wasUniform := current.Shape == model.ShapeCircle || current.Shape == model.ShapeSquare

	switch {
	case wasUniform && req.Width != nil && req.Height == nil:
		side := *req.Width
		req.Height = &side
	case wasUniform && req.Height != nil && req.Width == nil:
		side := *req.Height
		req.Width = &side
	default:
		width := current.Width
		if req.Width != nil {
			width = *req.Width
		}

		height := current.Height
		if req.Height != nil {
			height = *req.Height
		}

		side := min(width, height)
		req.Width = &side
		req.Height = &side
	}
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if seat exists")

		return fmt.Errorf("failed to check if seat exists: %w", err)
	}

	if !exist {
		log.Error().Msg("seat not found")

		return failure.NotFound("seat not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete seat")

		return fmt.Errorf("failed to delete seat: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSeat, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete seat from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSeat)
		shared.InvalidateCaches(c, s.cache, cacheCountSeat)
	}()

	return nil
}

func (s *serviceImpl) CountUnassigned(ctx context.Context) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountUnassigned")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheCountSeat, "unassigned")

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for unassigned seat count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldFloorID, Table: model.TableName, Operator: gDto.FilterIsNull},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count unassigned seats")

		return res, fmt.Errorf("failed to count unassigned seats: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save unassigned seat count to cache")
		}
	}()

	return res, nil
}
