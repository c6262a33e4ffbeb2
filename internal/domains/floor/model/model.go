package model

import "seatmap/shared/model"

const (
	TableName  = "floors"
	EntityName = "floor"

	FieldID          = "id"
	FieldName        = "name"
	FieldDisplayName = "display_name"
	FieldDescription = "description"
	FieldSortOrder   = "sort_order"
	FieldPlanImage   = "plan_image"
	FieldIsActive    = "is_active"
)

type Floor struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	DisplayName string `db:"display_name"`
	Description string `db:"description"`
	SortOrder   int    `db:"sort_order"`
	PlanImage   string `db:"plan_image"`
	IsActive    bool   `db:"is_active"`
	model.Metadata
}
