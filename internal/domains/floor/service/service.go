package service

import (
	"context"
	"fmt"
	"strings"

	"seatmap/config"
	"seatmap/infras/otel"
	"seatmap/infras/s3"
	"seatmap/internal/domains/floor/model"
	"seatmap/internal/domains/floor/model/dto"
	"seatmap/internal/domains/floor/repository"
	"seatmap/shared"
	"seatmap/shared/cache"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetFloor    = "floor:get"
	cacheGetAllFloor = "floor:gets"
)

type Floor interface {
	Create(ctx context.Context, req dto.CreateFloorRequest) (dto.FloorResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFloorsResponse, error)
	GetActive(ctx context.Context) (dto.GetFloorsResponse, error)
	Get(ctx context.Context, id string) (dto.FloorResponse, error)
	Update(ctx context.Context, req dto.UpdateFloorRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Floor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Floor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Floor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFloorRequest) (res dto.FloorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	planImageURL := constant.Empty
	var uploadedObjectName string
	if req.PlanImage != nil {
		bucketName := s.cfg.External.S3.BucketName
		filename := uuid.NewString()

		// Keep the original extension
		parts := strings.Split(req.PlanImage.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PlanImageFile, req.PlanImage, filename)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload floor plan image to S3")

			return res, fmt.Errorf("failed to upload floor plan image: %w", err)
		}
		planImageURL = url
		uploadedObjectName = filename
	}

	floor := req.ToModel(user, planImageURL)

	if err = s.repo.Insert(ctx, floor); err != nil {
		if uploadedObjectName != constant.Empty {
			bucketName := s.cfg.External.S3.BucketName
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return res, err
	}

	res.FromModel(floor)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllFloor)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFloorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllFloor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for floors")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get floors")

		return res, fmt.Errorf("failed to get floors: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save floors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetActive(ctx context.Context) (dto.GetFloorsResponse, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()

	params := gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: "ASC"}
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIsActive, Table: model.TableName, Value: true, Operator: gDto.FilterOperatorEq},
		},
	}

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FloorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetFloor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for floor")

		return res, nil
	}

	floor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get floor")

		return res, fmt.Errorf("failed to get floor: %w", err)
	}

	if floor.ID == constant.Empty {
		return res, failure.NotFound("floor not found") // nolint:wrapcheck
	}

	res.FromModel(floor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save floor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFloorRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check floor existence")

		return err
	}

	if current.ID == constant.Empty {
		log.Error().Msg("floor not found")

		return failure.NotFound("floor not found")
	}

	return s.updateInternal(ctx, req, current, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateFloorRequest, current model.Floor, user string, filter gDto.FilterGroup) error {
	planImageURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.PlanImage != nil {
		filename := uuid.NewString()

		parts := strings.Split(req.PlanImage.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.PlanImageFile, req.PlanImage, filename)
		if err != nil {
			return fmt.Errorf("failed to upload floor plan image: %w", err)
		}
		planImageURL = url
		uploadedObjectName = filename
	}

	updatedFields := shared.TransformFields(req, user)
	if planImageURL != constant.Empty {
		updatedFields[model.FieldPlanImage] = planImageURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update floor")

		// Cleanup: delete newly uploaded image if DB update fails
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update floor: %w", err)
	}

	// Delete the old plan image once the replacement is in place
	if planImageURL != constant.Empty && current.PlanImage != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.PlanImage)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFloor, current.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete floor cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFloor)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	current, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if floor exists")

		return fmt.Errorf("failed to check if floor exists: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("floor not found")

		return failure.NotFound("floor not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete floor")

		return fmt.Errorf("failed to delete floor: %w", err)
	}

	if current.PlanImage != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, current.PlanImage)
		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetFloor, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete floor from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllFloor)
	}()

	return nil
}
