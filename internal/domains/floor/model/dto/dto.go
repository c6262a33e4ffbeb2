package dto

import (
	"mime/multipart"

	"seatmap/internal/domains/floor/model"
	gDto "seatmap/shared/dto"
	gModel "seatmap/shared/model"
	"seatmap/shared/timezone"

	"github.com/google/uuid"
)

type CreateFloorRequest struct {
	Name          string                `json:"name"         validate:"required,max=100"`
	DisplayName   string                `json:"display_name" validate:"omitempty,max=100"`
	Description   string                `json:"description"  validate:"omitempty,max=500"`
	SortOrder     int                   `json:"sort_order"   validate:"omitempty,min=0"`
	PlanImage     *multipart.FileHeader `json:"plan_image"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/svg+xml,maxfilesize=2"`
	PlanImageFile multipart.File        `json:"-"`
	IsActive      *bool                 `json:"is_active"    validate:"omitempty"`
}

func (c *CreateFloorRequest) ToModel(user string, planImageURL string) model.Floor {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	return model.Floor{
		ID:          uuid.NewString(),
		Name:        c.Name,
		DisplayName: c.DisplayName,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		PlanImage:   planImageURL,
		IsActive:    active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			UpdatedAt:  timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateFloorRequest struct {
	Name          string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	DisplayName   *string               `db:"display_name" json:"display_name" validate:"omitempty,max=100"`
	Description   *string               `db:"description"  json:"description"  validate:"omitempty,max=500"`
	SortOrder     *int                  `db:"sort_order"   json:"sort_order"   validate:"omitempty,min=0"`
	PlanImage     *multipart.FileHeader `json:"plan_image" validate:"omitempty,mimetypes=image/png image/jpg image/jpeg image/svg+xml,maxfilesize=2"`
	PlanImageFile multipart.File        `json:"-"`
	IsActive      *bool                 `db:"is_active"    json:"is_active"    validate:"omitempty"`
}

type FloorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
	PlanImage   string `json:"plan_image,omitempty"`
	IsActive    bool   `json:"is_active"`
	gDto.Metadata
}

func (r *FloorResponse) FromModel(model model.Floor) {
	r.ID = model.ID
	r.Name = model.Name
	r.DisplayName = model.DisplayName
	r.Description = model.Description
	r.SortOrder = model.SortOrder
	r.PlanImage = model.PlanImage
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetFloorsResponse struct {
	Floors []FloorResponse `json:"floors"`
	Count  int             `json:"count"`
}

func (r *GetFloorsResponse) FromModels(models []model.Floor) {
	r.Count = len(models)

	r.Floors = make([]FloorResponse, len(models))
	for i, mod := range models {
		r.Floors[i].FromModel(mod)
	}
}
