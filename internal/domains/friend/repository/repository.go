package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"seatmap/infras/otel"
	"seatmap/infras/postgres"
	"seatmap/internal/domains/friend/model"
	gDto "seatmap/shared/dto"
	gRepo "seatmap/shared/repository"
)

type FriendRequest interface {
	Insert(ctx context.Context, model model.FriendRequest) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.FriendRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.FriendRequest, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.FriendRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) FriendRequest {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.FriendRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
