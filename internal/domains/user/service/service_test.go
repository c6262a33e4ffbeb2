package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatmap/config"
	"seatmap/infras/otel/mocks"
	userMocks "seatmap/internal/domains/user/mocks"
	"seatmap/internal/domains/user/model"
	"seatmap/internal/domains/user/model/dto"
	"seatmap/internal/domains/user/service"
	cacheMocks "seatmap/shared/cache/mocks"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"
)

func newUserService(t *testing.T) (service.User, *userMocks.MockUser, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockCache, mockOtel), mockRepo, mockCache
}

func authedCtx(userID, externalID string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserExternalID, externalID)
}

func TestUserService_SyncInsertsNewUser(t *testing.T) {
	svc, mockRepo, _ := newUserService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
	mockRepo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user model.User) error {
			assert.NotEmpty(t, user.ID)
			assert.Equal(t, "ext-1", user.ExternalID)
			assert.Equal(t, constant.RoleMember, user.Role)
			assert.True(t, user.Active)

			return nil
		})

	err := svc.Sync(context.Background(), dto.SyncUserRequest{
		ExternalID: "ext-1",
		Email:      "taro@example.com",
		Name:       "Taro",
	})
	assert.NoError(t, err)
}

func TestUserService_SyncUpdatesExistingUser(t *testing.T) {
	svc, mockRepo, _ := newUserService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.User{ID: "user-1", ExternalID: "ext-1", Role: constant.RoleAdmin}, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
			assert.Equal(t, "new@example.com", fields[model.FieldEmail])

			// Locally-managed fields are never overwritten by a sync.
			assert.NotContains(t, fields, model.FieldRole)
			assert.NotContains(t, fields, model.FieldActive)

			return nil
		})

	err := svc.Sync(context.Background(), dto.SyncUserRequest{
		ExternalID: "ext-1",
		Email:      "new@example.com",
		Name:       "Taro",
	})
	assert.NoError(t, err)
}

func TestUserService_RemoveUnknownIsNoop(t *testing.T) {
	svc, mockRepo, _ := newUserService(t)

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	assert.NoError(t, svc.Remove(context.Background(), "ext-gone"))
}

func TestUserService_GetMe(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			ctx:  authedCtx("user-1", "ext-1"),
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "user-1", ExternalID: "ext-1", Email: "taro@example.com"}, nil)
			},
			wantErr: false,
		},
		{
			name:      "missing subject claim",
			ctx:       context.Background(),
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  401,
		},
		{
			name: "not mirrored yet",
			ctx:  authedCtx("user-1", "ext-unknown"),
			setupMock: func(repo *userMocks.MockUser, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newUserService(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.GetMe(tt.ctx)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "user-1", res.ID)
			}
		})
	}
}

func TestUserService_Search(t *testing.T) {
	svc, mockRepo, _ := newUserService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.User{{ID: "user-1", Name: "Taro"}}, nil)

	res, err := svc.Search(context.Background(), "tar", gDto.QueryParams{Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	_, err = svc.Search(context.Background(), "", gDto.QueryParams{})
	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}

func TestUserService_UpdateRole(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		id        string
		role      string
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful role change",
			ctx:  authedCtx("admin-1", "ext-admin"),
			id:   "user-2",
			role: constant.RoleAdmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.User{ID: "user-2", ExternalID: "ext-2"}, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
						assert.Equal(t, constant.RoleAdmin, fields[model.FieldRole])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "own role is off limits",
			ctx:       authedCtx("admin-1", "ext-admin"),
			id:        "admin-1",
			role:      constant.RoleMember,
			setupMock: func(repo *userMocks.MockUser) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "target not found",
			ctx:  authedCtx("admin-1", "ext-admin"),
			id:   "missing",
			role: constant.RoleAdmin,
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newUserService(t)
			tt.setupMock(mockRepo)

			err := svc.UpdateRole(tt.ctx, tt.id, tt.role)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_DeleteOwnAccountRejected(t *testing.T) {
	svc, _, _ := newUserService(t)

	err := svc.Delete(authedCtx("admin-1", "ext-admin"), "admin-1")
	assert.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
}
