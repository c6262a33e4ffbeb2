package model

import "seatmap/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID          = "id"
	FieldExternalID  = "external_id"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldDisplayName = "display_name"
	FieldAvatarURL   = "avatar_url"
	FieldRole        = "role"
	FieldPrivacy     = "default_privacy_setting"
	FieldActive      = "active"
)

const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

type User struct {
	ID          string  `db:"id"`
	ExternalID  string  `db:"external_id"`
	Email       string  `db:"email"`
	Name        string  `db:"name"`
	DisplayName *string `db:"display_name"`
	AvatarURL   *string `db:"avatar_url"`
	Role        string  `db:"role"`
	Privacy     string  `db:"default_privacy_setting"`
	Active      bool    `db:"active"`
	model.Metadata
}
