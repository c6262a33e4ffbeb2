package dto

import (
	"seatmap/internal/domains/user/model"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	gModel "seatmap/shared/model"
	"seatmap/shared/timezone"

	"github.com/google/uuid"
)

// SyncUserRequest is the payload of the identity provider's user webhook.
// Users are never created through the API directly; the provider owns
// account lifecycle and this service mirrors it.
type SyncUserRequest struct {
	ExternalID  string  `json:"external_id" validate:"required,max=100"`
	Email       string  `json:"email"       validate:"required,email"`
	Name        string  `json:"name"        validate:"required,max=100"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	AvatarURL   *string `json:"avatar_url"  validate:"omitempty,url"`
}

func (c *SyncUserRequest) ToModel() model.User {
	return model.User{
		ID:          uuid.NewString(),
		ExternalID:  c.ExternalID,
		Email:       c.Email,
		Name:        c.Name,
		DisplayName: c.DisplayName,
		AvatarURL:   c.AvatarURL,
		Role:        constant.RoleMember,
		Privacy:     model.PrivacyPublic,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			UpdatedAt:  timezone.Now(),
			CreatedBy:  c.ExternalID,
			ModifiedBy: c.ExternalID,
		},
	}
}

const (
	WebhookEventUserCreated = "user.created"
	WebhookEventUserUpdated = "user.updated"
	WebhookEventUserDeleted = "user.deleted"
)

// IdentityWebhookRequest is the envelope of a provider webhook delivery.
// The nested user payload is validated per event: deletions carry only the
// external id.
type IdentityWebhookRequest struct {
	Event string          `json:"event" validate:"required,oneof=user.created user.updated user.deleted"`
	User  SyncUserRequest `json:"user"  validate:"-"`
}

type UpdateProfileRequest struct {
	Name        string  `db:"name"                    json:"name"                    validate:"omitempty,max=100"`
	DisplayName *string `db:"display_name"            json:"display_name"            validate:"omitempty,max=100"`
	AvatarURL   *string `db:"avatar_url"              json:"avatar_url"              validate:"omitempty,url"`
	Privacy     string  `db:"default_privacy_setting" json:"default_privacy_setting" validate:"omitempty,oneof=public private"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin member"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	ExternalID  string  `json:"external_id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	DisplayName *string `json:"display_name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Role        string  `json:"role"`
	Privacy     string  `json:"default_privacy_setting"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.ExternalID = model.ExternalID
	r.Email = model.Email
	r.Name = model.Name
	r.DisplayName = model.DisplayName
	r.AvatarURL = model.AvatarURL
	r.Role = model.Role
	r.Privacy = model.Privacy
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

func (r *GetUsersResponse) FromModels(models []model.User) {
	r.Count = len(models)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
