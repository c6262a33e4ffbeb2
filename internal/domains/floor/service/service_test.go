package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatmap/config"
	"seatmap/infras/otel/mocks"
	s3Mocks "seatmap/infras/s3/mocks"
	floorMocks "seatmap/internal/domains/floor/mocks"
	"seatmap/internal/domains/floor/model"
	"seatmap/internal/domains/floor/model/dto"
	"seatmap/internal/domains/floor/service"
	cacheMocks "seatmap/shared/cache/mocks"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
)

func newFloorService(t *testing.T) (service.Floor, *floorMocks.MockFloor, *cacheMocks.MockRedisCache, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := floorMocks.NewMockFloor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = "seatmap-assets"

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel, mockS3), mockRepo, mockCache, mockS3
}

func TestFloorService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateFloorRequest
		setupMock func(repo *floorMocks.MockFloor)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateFloorRequest{
				Name:      "3F",
				SortOrder: 3,
			},
			setupMock: func(repo *floorMocks.MockFloor) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, floor model.Floor) error {
						assert.NotEmpty(t, floor.ID)
						assert.Equal(t, "3F", floor.Name)
						assert.True(t, floor.IsActive)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateFloorRequest{
				Name: "4F",
			},
			setupMock: func(repo *floorMocks.MockFloor) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _ := newFloorService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Name, res.Name)
			}
		})
	}
}

func TestFloorService_GetActive(t *testing.T) {
	svc, mockRepo, mockCache, _ := newFloorService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Floor{
			{ID: "floor-1", Name: "1F", SortOrder: 1, IsActive: true},
			{ID: "floor-2", Name: "2F", SortOrder: 2, IsActive: true},
		}, nil)

	res, err := svc.GetActive(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "1F", res.Floors[0].Name)
}

func TestFloorService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *floorMocks.MockFloor, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func(repo *floorMocks.MockFloor, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Floor{ID: "floor-1", Name: "1F"}, nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(repo *floorMocks.MockFloor, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Floor{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache, _ := newFloorService(t)
			tt.setupMock(mockRepo, mockCache)

			_, err := svc.Get(context.Background(), "floor-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFloorService_Update(t *testing.T) {
	svc, mockRepo, _, _ := newFloorService(t)

	name := "Renamed"

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Floor{ID: "floor-1", Name: "1F"}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
			assert.Equal(t, name, fields[model.FieldName])

			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateFloorRequest{Name: name}, "floor-1")
	assert.NoError(t, err)
}

func TestFloorService_DeleteRemovesPlanImage(t *testing.T) {
	svc, mockRepo, _, mockS3 := newFloorService(t)

	planImage := "https://assets.example.com/floor/plan.png"

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Floor{ID: "floor-1", PlanImage: planImage}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockS3.EXPECT().GetObjectNameFromURL("seatmap-assets", planImage).Return("plan.png")
	mockS3.EXPECT().DeleteFile(gomock.Any(), "seatmap-assets", model.EntityName, "plan.png").Return(nil)

	err := svc.Delete(context.Background(), "floor-1")
	assert.NoError(t, err)
}

func TestFloorService_DeleteNotFound(t *testing.T) {
	svc, mockRepo, _, _ := newFloorService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Floor{}, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}
