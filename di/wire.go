//go:build wireinject
// +build wireinject

package di

import (
	"seatmap/config"
	"seatmap/infras/jwt"
	"seatmap/infras/kafka"
	"seatmap/infras/otel"
	"seatmap/infras/postgres"
	"seatmap/infras/redis"
	"seatmap/infras/s3"
	"seatmap/permissions"
	"seatmap/shared/cache"
	"seatmap/transport/http"
	"seatmap/transport/http/middleware"
	"seatmap/transport/http/router"

	floorRepository "seatmap/internal/domains/floor/repository"
	floorService "seatmap/internal/domains/floor/service"
	friendRepository "seatmap/internal/domains/friend/repository"
	friendService "seatmap/internal/domains/friend/service"
	layoutService "seatmap/internal/domains/layout/service"
	seatRepository "seatmap/internal/domains/seat/repository"
	seatService "seatmap/internal/domains/seat/service"
	userRepository "seatmap/internal/domains/user/repository"
	userService "seatmap/internal/domains/user/service"

	floorHandler "seatmap/internal/handlers/floor"
	friendHandler "seatmap/internal/handlers/friend"
	healthHandler "seatmap/internal/handlers/health"
	layoutHandler "seatmap/internal/handlers/layout"
	seatHandler "seatmap/internal/handlers/seat"
	userHandler "seatmap/internal/handlers/user"
	webhookHandler "seatmap/internal/handlers/webhook"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var seatDomain = wire.NewSet(
	seatRepository.New,
	seatService.New,
)

var floorDomain = wire.NewSet(
	floorRepository.New,
	floorService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var friendDomain = wire.NewSet(
	friendRepository.New,
	friendService.New,
)

var layoutDomain = wire.NewSet(
	provideLayoutManager,
	layoutService.New,
)

var domains = wire.NewSet(
	seatDomain,
	floorDomain,
	userDomain,
	friendDomain,
	layoutDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	webhookHandler.New,
	seatHandler.New,
	floorHandler.New,
	userHandler.New,
	friendHandler.New,
	layoutHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
