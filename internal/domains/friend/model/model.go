package model

import "seatmap/shared/model"

const (
	TableName  = "friend_requests"
	EntityName = "friend_request"

	FieldID          = "id"
	FieldRequesterID = "requester_id"
	FieldAddresseeID = "addressee_id"
	FieldStatus      = "status"
	FieldMessage     = "message"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

type FriendRequest struct {
	ID          string `db:"id"`
	RequesterID string `db:"requester_id"`
	AddresseeID string `db:"addressee_id"`
	Status      string `db:"status"`
	Message     string `db:"message"`
	model.Metadata
}
