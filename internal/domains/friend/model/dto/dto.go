package dto

import (
	"seatmap/internal/domains/friend/model"
	gDto "seatmap/shared/dto"
	gModel "seatmap/shared/model"
	"seatmap/shared/timezone"

	"github.com/google/uuid"
)

type SendFriendRequestRequest struct {
	AddresseeID string `json:"addressee_id" validate:"required,uuid"`
	Message     string `json:"message"      validate:"omitempty,max=500"`
}

func (c *SendFriendRequestRequest) ToModel(requesterID string) model.FriendRequest {
	return model.FriendRequest{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		AddresseeID: c.AddresseeID,
		Status:      model.StatusPending,
		Message:     c.Message,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			UpdatedAt:  timezone.Now(),
			CreatedBy:  requesterID,
			ModifiedBy: requesterID,
		},
	}
}

type FriendRequestResponse struct {
	ID          string `json:"id"`
	RequesterID string `json:"requester_id"`
	AddresseeID string `json:"addressee_id"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	gDto.Metadata
}

func (r *FriendRequestResponse) FromModel(model model.FriendRequest) {
	r.ID = model.ID
	r.RequesterID = model.RequesterID
	r.AddresseeID = model.AddresseeID
	r.Status = model.Status
	r.Message = model.Message
	r.Metadata.FromModel(model.Metadata)
}

type GetFriendRequestsResponse struct {
	Requests []FriendRequestResponse `json:"requests"`
	Count    int                     `json:"count"`
}

func (r *GetFriendRequestsResponse) FromModels(models []model.FriendRequest) {
	r.Count = len(models)

	r.Requests = make([]FriendRequestResponse, len(models))
	for i, mod := range models {
		r.Requests[i].FromModel(mod)
	}
}

type GetFriendsResponse struct {
	FriendIDs []string `json:"friend_ids"`
	Count     int      `json:"count"`
}

const (
	FriendStatusNone            = "none"
	FriendStatusPendingSent     = "pending_sent"
	FriendStatusPendingReceived = "pending_received"
	FriendStatusFriends         = "friends"
)

type FriendStatusResponse struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// FriendEvent is published to Kafka on every request lifecycle transition.
type FriendEvent struct {
	Event       string `json:"event"`
	RequestID   string `json:"request_id"`
	RequesterID string `json:"requester_id"`
	AddresseeID string `json:"addressee_id"`
	Status      string `json:"status"`
	OccurredAt  string `json:"occurred_at"`
}
