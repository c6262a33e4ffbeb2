package webhook

import (
	"encoding/json"
	"io"
	"net/http"

	"seatmap/infras/jwt"
	"seatmap/infras/otel"
	"seatmap/internal/domains/user/model/dto"
	"seatmap/internal/domains/user/service"
	"seatmap/shared/constant"
	"seatmap/shared/failure"
	"seatmap/shared/validator"
	"seatmap/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.User
	jwtService jwt.JWT
	otel       otel.Otel
}

func New(service service.User, jwtService jwt.JWT, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		jwtService: jwtService,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhooks/identity", handler.IdentitySync)
}

// IdentitySync ingests user lifecycle events from the identity provider.
// @Summary Identity provider user sync webhook
// @Description Mirror user create, update and delete events from the identity provider. Deliveries are authenticated with an HMAC signature header.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param X-Webhook-Signature header string true "HMAC-SHA256 signature of the raw body"
// @Param request body dto.IdentityWebhookRequest true "Webhook payload"
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/webhooks/identity [post]
func (handler *Handler) IdentitySync(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IdentitySync")
	defer scope.End()

	// The signature covers the raw body, so it has to be read before any
	// JSON decoding.
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(w, failure.InternalError(err))

		return
	}

	signature := r.Header.Get(constant.RequestHeaderWebhookSignature)
	if err := handler.jwtService.VerifyWebhookSignature(payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("webhook signature verification failed")

		response.WithError(w, failure.Unauthorized("invalid webhook signature"))

		return
	}

	req := dto.IdentityWebhookRequest{}
	if err := json.Unmarshal(payload, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode webhook payload")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate webhook payload")

		response.WithError(w, err)

		return
	}

	switch req.Event {
	case dto.WebhookEventUserCreated, dto.WebhookEventUserUpdated:
		if err := validator.ValidateStruct(&req.User); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate webhook user payload")

			response.WithError(w, err)

			return
		}

		if err := handler.service.Sync(ctx, req.User); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to sync user")

			response.WithError(w, err)

			return
		}
	case dto.WebhookEventUserDeleted:
		if req.User.ExternalID == constant.Empty {
			response.WithError(w, failure.BadRequestFromString("external_id is required"))

			return
		}

		if err := handler.service.Remove(ctx, req.User.ExternalID); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to remove user")

			response.WithError(w, err)

			return
		}
	}

	scope.AddEvent("Webhook event processed: " + req.Event)

	response.WithMessage(w, http.StatusOK, "Event processed")
}
