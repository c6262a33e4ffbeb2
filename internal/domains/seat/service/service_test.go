package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatmap/config"
	"seatmap/infras/otel/mocks"
	seatMocks "seatmap/internal/domains/seat/mocks"
	"seatmap/internal/domains/seat/model"
	"seatmap/internal/domains/seat/model/dto"
	"seatmap/internal/domains/seat/service"
	cacheMocks "seatmap/shared/cache/mocks"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
)

func newSeatService(t *testing.T) (service.Seat, *seatMocks.MockSeat, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := seatMocks.NewMockSeat(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func TestSeatService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateSeatRequest
		setupMock func(repo *seatMocks.MockSeat)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation with defaults",
			req: dto.CreateSeatRequest{
				SeatNumber: "A-01",
			},
			setupMock: func(repo *seatMocks.MockSeat) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, seat model.Seat) error {
						assert.NotEmpty(t, seat.ID)
						assert.Equal(t, float64(100), seat.PositionX)
						assert.Equal(t, float64(100), seat.PositionY)
						assert.Equal(t, float64(100), seat.Width)
						assert.Equal(t, float64(100), seat.Height)
						assert.Equal(t, model.ShapeRectangle, seat.Shape)
						assert.True(t, seat.IsActive)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "duplicate seat number",
			req: dto.CreateSeatRequest{
				SeatNumber: "A-01",
			},
			setupMock: func(repo *seatMocks.MockSeat) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.CreateSeatRequest{
				SeatNumber: "A-02",
			},
			setupMock: func(repo *seatMocks.MockSeat) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newSeatService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, tt.req.SeatNumber, res.SeatNumber)
			}
		})
	}
}

func TestSeatService_CreateCircleKeepsEqualSides(t *testing.T) {
	svc, mockRepo, _ := newSeatService(t)

	width := float64(120)
	height := float64(80)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, seat model.Seat) error {
			assert.Equal(t, float64(80), seat.Width)
			assert.Equal(t, float64(80), seat.Height)

			return nil
		})

	res, err := svc.Create(context.Background(), dto.CreateSeatRequest{
		SeatNumber: "C-01",
		Shape:      model.ShapeCircle,
		Width:      &width,
		Height:     &height,
	})

	assert.NoError(t, err)
	assert.Equal(t, res.Width, res.Height)
}

func TestSeatService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *seatMocks.MockSeat, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			id:   "seat-1",
			setupMock: func(repo *seatMocks.MockSeat, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Seat{ID: "seat-1", SeatNumber: "A-01"}, nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(repo *seatMocks.MockSeat, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Seat{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newSeatService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)
			}
		})
	}
}

func TestSeatService_UpdateShapeCoupling(t *testing.T) {
	svc, mockRepo, _ := newSeatService(t)

	newShape := model.ShapeSquare

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Seat{ID: "seat-1", Shape: model.ShapeRectangle, Width: 120, Height: 80}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
			width, ok := fields[model.FieldWidth].(*float64)
			assert.True(t, ok)
			height, ok := fields[model.FieldHeight].(*float64)
			assert.True(t, ok)
			assert.Equal(t, float64(80), *width)
			assert.Equal(t, float64(80), *height)

			return nil
		})

	err := svc.Update(context.Background(), dto.UpdateSeatRequest{Shape: &newShape}, "seat-1")
	assert.NoError(t, err)
}

func TestSeatService_UpdateCircleDimensionPropagates(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.UpdateSeatRequest
		wantSide float64
	}{
		{
			name: "width edit grows both sides",
			req: func() dto.UpdateSeatRequest {
				width := float64(150)
				return dto.UpdateSeatRequest{Width: &width}
			}(),
			wantSide: 150,
		},
		{
			name: "height edit shrinks both sides",
			req: func() dto.UpdateSeatRequest {
				height := float64(60)
				return dto.UpdateSeatRequest{Height: &height}
			}(),
			wantSide: 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newSeatService(t)

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(model.Seat{ID: "seat-1", Shape: model.ShapeCircle, Width: 100, Height: 100}, nil)
			mockRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
					width, ok := fields[model.FieldWidth].(*float64)
					assert.True(t, ok)
					height, ok := fields[model.FieldHeight].(*float64)
					assert.True(t, ok)
					assert.Equal(t, tt.wantSide, *width)
					assert.Equal(t, tt.wantSide, *height)

					return nil
				})

			err := svc.Update(context.Background(), tt.req, "seat-1")
			assert.NoError(t, err)
		})
	}
}

func TestSeatService_UpdateNotFound(t *testing.T) {
	svc, mockRepo, _ := newSeatService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Seat{}, nil)

	err := svc.Update(context.Background(), dto.UpdateSeatRequest{}, "missing")
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestSeatService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *seatMocks.MockSeat)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(repo *seatMocks.MockSeat) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "seat not found",
			setupMock: func(repo *seatMocks.MockSeat) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newSeatService(t)
			tt.setupMock(mockRepo)

			err := svc.Delete(context.Background(), "seat-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeatService_CountUnassigned(t *testing.T) {
	svc, mockRepo, mockCache := newSeatService(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(7, nil)

	count, err := svc.CountUnassigned(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, count)
}
