package friend

import (
	"net/http"

	"seatmap/infras/otel"
	"seatmap/internal/domains/friend/model/dto"
	"seatmap/internal/domains/friend/service"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
	"seatmap/shared/validator"
	"seatmap/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Friend
	otel    otel.Otel
}

func New(service service.Friend, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/friends", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetFriends)
		routerGroup.Get("/status", handler.GetFriendStatus)
		routerGroup.Delete("/{id}", handler.RemoveFriend)

		routerGroup.Route("/requests", func(requestGroup chi.Router) {
			requestGroup.Post("/", handler.SendFriendRequest)
			requestGroup.Get("/received", handler.GetReceivedRequests)
			requestGroup.Get("/sent", handler.GetSentRequests)
			requestGroup.Post("/{id}/accept", handler.AcceptFriendRequest)
			requestGroup.Post("/{id}/reject", handler.RejectFriendRequest)
			requestGroup.Post("/{id}/cancel", handler.CancelFriendRequest)
		})
	})
}

// GetFriends lists the friends of the authenticated user.
// @Summary Get friends
// @Description Retrieve the accepted friends of the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetFriendsResponse "List of friends"
// @Failure 500 {object} response.Error
// @Router /api/friends [get]
// @Security BearerAuth
func (handler *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFriends")
	defer scope.End()

	friends, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get friends")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friends retrieved successfully")

	response.WithJSON(w, http.StatusOK, friends)
}

// GetFriendStatus reports the relationship with another user.
// @Summary Get friend status
// @Description Report the relationship between the authenticated user and another user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param user_id query string true "Other user ID"
// @Success 200 {object} dto.FriendStatusResponse "Relationship status"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/status [get]
// @Security BearerAuth
func (handler *Handler) GetFriendStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFriendStatus")
	defer scope.End()

	otherID := r.URL.Query().Get(constant.RequestParamUserID)
	if otherID == "" {
		err := failure.BadRequestFromString("user_id query is required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	status, err := handler.service.Status(ctx, otherID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get friend status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend status retrieved successfully")

	response.WithJSON(w, http.StatusOK, status)
}

// RemoveFriend ends a friendship.
// @Summary Remove a friend
// @Description Remove the accepted friendship with another user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param id path string true "Friend user ID"
// @Success 200 {object} response.Message "Friend removed successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFriend")
	defer scope.End()

	friendID := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Remove(ctx, friendID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove friend")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend removed successfully")

	response.WithMessage(w, http.StatusOK, "Friend removed successfully")
}

// SendFriendRequest sends a friend request to another user.
// @Summary Send a friend request
// @Description Send a friend request from the authenticated user to another user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param request body dto.SendFriendRequestRequest true "Send Friend Request"
// @Success 201 {object} dto.FriendRequestResponse "Friend request sent"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/requests [post]
// @Security BearerAuth
func (handler *Handler) SendFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendFriendRequest")
	defer scope.End()

	req := dto.SendFriendRequestRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	request, err := handler.service.Send(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send friend request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend request sent successfully")

	response.WithJSON(w, http.StatusCreated, request)
}

// GetReceivedRequests lists the pending requests addressed to the user.
// @Summary Get received friend requests
// @Description Retrieve the pending friend requests addressed to the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetFriendRequestsResponse "Received requests"
// @Failure 500 {object} response.Error
// @Router /api/friends/requests/received [get]
// @Security BearerAuth
func (handler *Handler) GetReceivedRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceivedRequests")
	defer scope.End()

	requests, err := handler.service.Received(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get received requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Received requests retrieved successfully")

	response.WithJSON(w, http.StatusOK, requests)
}

// GetSentRequests lists the pending requests sent by the user.
// @Summary Get sent friend requests
// @Description Retrieve the pending friend requests sent by the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Success 200 {object} dto.GetFriendRequestsResponse "Sent requests"
// @Failure 500 {object} response.Error
// @Router /api/friends/requests/sent [get]
// @Security BearerAuth
func (handler *Handler) GetSentRequests(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSentRequests")
	defer scope.End()

	requests, err := handler.service.Sent(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get sent requests")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Sent requests retrieved successfully")

	response.WithJSON(w, http.StatusOK, requests)
}

// AcceptFriendRequest accepts a pending friend request.
// @Summary Accept a friend request
// @Description Accept a pending friend request addressed to the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param id path string true "Friend request ID"
// @Success 200 {object} response.Message "Friend request accepted"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/requests/{id}/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptFriendRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Accept(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept friend request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend request accepted successfully")

	response.WithMessage(w, http.StatusOK, "Friend request accepted")
}

// RejectFriendRequest rejects a pending friend request.
// @Summary Reject a friend request
// @Description Reject a pending friend request addressed to the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param id path string true "Friend request ID"
// @Success 200 {object} response.Message "Friend request rejected"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/requests/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectFriendRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Reject(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject friend request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend request rejected successfully")

	response.WithMessage(w, http.StatusOK, "Friend request rejected")
}

// CancelFriendRequest withdraws a pending friend request.
// @Summary Cancel a friend request
// @Description Withdraw a pending friend request sent by the authenticated user.
// @Tags Friend
// @Accept json
// @Produce json
// @Param id path string true "Friend request ID"
// @Success 200 {object} response.Message "Friend request cancelled"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/friends/requests/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelFriendRequest(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelFriendRequest")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel friend request")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Friend request cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Friend request cancelled")
}
