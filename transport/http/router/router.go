package router

import (
	"seatmap/internal/handlers/floor"
	"seatmap/internal/handlers/friend"
	"seatmap/internal/handlers/health"
	"seatmap/internal/handlers/layout"
	"seatmap/internal/handlers/seat"
	"seatmap/internal/handlers/user"
	"seatmap/internal/handlers/webhook"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health  health.Handler
	Webhook webhook.Handler
	Seat    seat.Handler
	Floor   floor.Handler
	User    user.Handler
	Friend  friend.Handler
	Layout  layout.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/api", func(routerGroup chi.Router) {
		r.DomainHandlers.Webhook.Router(routerGroup)
		r.DomainHandlers.Seat.Router(routerGroup)
		r.DomainHandlers.Floor.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Friend.Router(routerGroup)

		routerGroup.Route("/admin", func(adminGroup chi.Router) {
			r.DomainHandlers.Seat.AdminRouter(adminGroup)
			r.DomainHandlers.Floor.AdminRouter(adminGroup)
			r.DomainHandlers.User.AdminRouter(adminGroup)
			r.DomainHandlers.Layout.AdminRouter(adminGroup)
		})
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
