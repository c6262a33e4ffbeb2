package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seatmap/config"
	kafkaMocks "seatmap/infras/kafka/mocks"
	"seatmap/infras/otel/mocks"
	friendMocks "seatmap/internal/domains/friend/mocks"
	"seatmap/internal/domains/friend/model"
	"seatmap/internal/domains/friend/model/dto"
	"seatmap/internal/domains/friend/service"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
)

func newFriendService(t *testing.T) (service.Friend, *friendMocks.MockFriendRequest, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := friendMocks.NewMockFriendRequest(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.External.Kafka.FriendEventTopic = "seatmap.friend-events"

	mockKafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, cfg, mockOtel, mockKafka), mockRepo, mockKafka
}

func asUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestFriendService_Send(t *testing.T) {
	tests := []struct {
		name      string
		actor     string
		req       dto.SendFriendRequestRequest
		setupMock func(repo *friendMocks.MockFriendRequest)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "successful send",
			actor: "user-1",
			req:   dto.SendFriendRequestRequest{AddresseeID: "user-2", Message: "hi"},
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, request model.FriendRequest) error {
						assert.NotEmpty(t, request.ID)
						assert.Equal(t, "user-1", request.RequesterID)
						assert.Equal(t, model.StatusPending, request.Status)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "self request",
			actor:     "user-1",
			req:       dto.SendFriendRequestRequest{AddresseeID: "user-1"},
			setupMock: func(repo *friendMocks.MockFriendRequest) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name:  "already pending or friends",
			actor: "user-1",
			req:   dto.SendFriendRequestRequest{AddresseeID: "user-2"},
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newFriendService(t)
			tt.setupMock(mockRepo)

			res, err := svc.Send(asUser(tt.actor), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusPending, res.Status)
			}
		})
	}
}

func TestFriendService_Accept(t *testing.T) {
	pending := model.FriendRequest{
		ID:          "req-1",
		RequesterID: "user-1",
		AddresseeID: "user-2",
		Status:      model.StatusPending,
	}

	tests := []struct {
		name      string
		actor     string
		setupMock func(repo *friendMocks.MockFriendRequest)
		wantErr   bool
		wantCode  int
	}{
		{
			name:  "addressee accepts",
			actor: "user-2",
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
						assert.Equal(t, model.StatusAccepted, fields[model.FieldStatus])

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:  "requester cannot accept",
			actor: "user-1",
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:  "already resolved",
			actor: "user-2",
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				resolved := pending
				resolved.Status = model.StatusAccepted

				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(resolved, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name:  "not found",
			actor: "user-2",
			setupMock: func(repo *friendMocks.MockFriendRequest) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.FriendRequest{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newFriendService(t)
			tt.setupMock(mockRepo)

			err := svc.Accept(asUser(tt.actor), "req-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFriendService_CancelIsRequesterOnly(t *testing.T) {
	pending := model.FriendRequest{
		ID:          "req-1",
		RequesterID: "user-1",
		AddresseeID: "user-2",
		Status:      model.StatusPending,
	}

	svc, mockRepo, _ := newFriendService(t)

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)

	err := svc.Cancel(asUser("user-2"), "req-1")
	assert.Error(t, err)
	assert.Equal(t, 403, failure.GetCode(err))

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pending, nil)
	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ interface{}) error {
			assert.Equal(t, model.StatusCancelled, fields[model.FieldStatus])

			return nil
		})

	assert.NoError(t, svc.Cancel(asUser("user-1"), "req-1"))
}

func TestFriendService_List(t *testing.T) {
	svc, mockRepo, _ := newFriendService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.FriendRequest{
			{ID: "req-1", RequesterID: "user-1", AddresseeID: "user-2", Status: model.StatusAccepted},
			{ID: "req-2", RequesterID: "user-3", AddresseeID: "user-1", Status: model.StatusAccepted},
		}, nil)

	res, err := svc.List(asUser("user-1"))
	assert.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, []string{"user-2", "user-3"}, res.FriendIDs)
}

func TestFriendService_Remove(t *testing.T) {
	svc, mockRepo, _ := newFriendService(t)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.FriendRequest{ID: "req-1", RequesterID: "user-1", AddresseeID: "user-2", Status: model.StatusAccepted}, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Remove(asUser("user-1"), "user-2"))

	mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.FriendRequest{}, nil)

	err := svc.Remove(asUser("user-1"), "user-3")
	assert.Error(t, err)
	assert.Equal(t, 404, failure.GetCode(err))
}

func TestFriendService_Status(t *testing.T) {
	tests := []struct {
		name    string
		request model.FriendRequest
		want    string
	}{
		{name: "no relation", request: model.FriendRequest{}, want: dto.FriendStatusNone},
		{
			name:    "friends",
			request: model.FriendRequest{ID: "req-1", RequesterID: "user-1", AddresseeID: "user-2", Status: model.StatusAccepted},
			want:    dto.FriendStatusFriends,
		},
		{
			name:    "pending sent",
			request: model.FriendRequest{ID: "req-1", RequesterID: "user-1", AddresseeID: "user-2", Status: model.StatusPending},
			want:    dto.FriendStatusPendingSent,
		},
		{
			name:    "pending received",
			request: model.FriendRequest{ID: "req-1", RequesterID: "user-2", AddresseeID: "user-1", Status: model.StatusPending},
			want:    dto.FriendStatusPendingReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := newFriendService(t)

			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.request, nil)

			res, err := svc.Status(asUser("user-1"), "user-2")
			assert.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
		})
	}
}
