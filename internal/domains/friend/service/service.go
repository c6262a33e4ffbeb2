package service

import (
	"context"
	"fmt"
	"time"

	"seatmap/config"
	"seatmap/infras/kafka"
	"seatmap/infras/otel"
	"seatmap/internal/domains/friend/model"
	"seatmap/internal/domains/friend/model/dto"
	"seatmap/internal/domains/friend/repository"
	"seatmap/shared"
	"seatmap/shared/constant"
	gDto "seatmap/shared/dto"
	"seatmap/shared/failure"
	"seatmap/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	eventRequestSent      = "friend_request.sent"
	eventRequestAccepted  = "friend_request.accepted"
	eventRequestRejected  = "friend_request.rejected"
	eventRequestCancelled = "friend_request.cancelled"
	eventFriendRemoved    = "friend.removed"
)

type Friend interface {
	Send(ctx context.Context, req dto.SendFriendRequestRequest) (dto.FriendRequestResponse, error)
	Received(ctx context.Context) (dto.GetFriendRequestsResponse, error)
	Sent(ctx context.Context) (dto.GetFriendRequestsResponse, error)
	Accept(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	List(ctx context.Context) (dto.GetFriendsResponse, error)
	Remove(ctx context.Context, friendID string) error
	Status(ctx context.Context, otherID string) (dto.FriendStatusResponse, error)
}

type serviceImpl struct {
	repo  repository.FriendRequest
	cfg   *config.Config
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.FriendRequest, cfg *config.Config, otel otel.Otel, kafkaClient kafka.Client) Friend {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		otel:  otel,
		kafka: kafkaClient,
	}
}

func actorID(ctx context.Context) (string, error) {
	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == constant.Empty {
		return constant.Empty, failure.Unauthorized("missing user identity") // nolint:wrapcheck
	}

	return id, nil
}

// pairFilter matches requests between two users in either direction.
func pairFilter(a, b string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.FilterGroup{
				Filters: []any{
					gDto.Filter{Field: model.FieldRequesterID, Table: model.TableName, Value: a, Operator: gDto.FilterOperatorEq, ArgName: "requester_a"},
					gDto.Filter{Field: model.FieldAddresseeID, Table: model.TableName, Value: b, Operator: gDto.FilterOperatorEq, ArgName: "addressee_b"},
				},
			},
			gDto.FilterGroup{
				Filters: []any{
					gDto.Filter{Field: model.FieldRequesterID, Table: model.TableName, Value: b, Operator: gDto.FilterOperatorEq, ArgName: "requester_b"},
					gDto.Filter{Field: model.FieldAddresseeID, Table: model.TableName, Value: a, Operator: gDto.FilterOperatorEq, ArgName: "addressee_a"},
				},
			},
		},
	}
}

func pairStatusFilter(a, b string, statuses []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			pairFilter(a, b),
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Value: statuses, Operator: gDto.FilterOperatorIn},
		},
	}
}

func (s *serviceImpl) publish(ctx context.Context, event string, request model.FriendRequest) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key: request.ID,
			Value: dto.FriendEvent{
				Event:       event,
				RequestID:   request.ID,
				RequesterID: request.RequesterID,
				AddresseeID: request.AddresseeID,
				Status:      request.Status,
				OccurredAt:  timezone.Format(timezone.Now(), time.RFC3339),
			},
		}

		if err := s.kafka.SendMessages(c, s.cfg.External.Kafka.FriendEventTopic, message); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish friend event")
		}
	}()
}

func (s *serviceImpl) Send(ctx context.Context, req dto.SendFriendRequestRequest) (res dto.FriendRequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return res, err
	}

	if actor == req.AddresseeID {
		return res, failure.BadRequestFromString("cannot send a friend request to yourself") // nolint:wrapcheck
	}

	// An open request or an existing friendship blocks a new request in
	// either direction.
	blocked, err := s.repo.Exist(ctx, pairStatusFilter(actor, req.AddresseeID, []string{model.StatusPending, model.StatusAccepted}))
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing friend requests")

		return res, fmt.Errorf("failed to check existing friend requests: %w", err)
	}

	if blocked {
		return res, failure.Conflict("a pending request or friendship already exists") // nolint:wrapcheck
	}

	request := req.ToModel(actor)

	if err = s.repo.Insert(ctx, request); err != nil {
		return res, err
	}

	res.FromModel(request)
	s.publish(ctx, eventRequestSent, request)

	return res, nil
}

func (s *serviceImpl) Received(ctx context.Context) (res dto.GetFriendRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Received")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldAddresseeID, Table: model.TableName, Value: actor, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Value: model.StatusPending, Operator: gDto.FilterOperatorEq},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldModifiedAt, SortDir: "DESC"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get received friend requests")

		return res, fmt.Errorf("failed to get received friend requests: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

func (s *serviceImpl) Sent(ctx context.Context) (res dto.GetFriendRequestsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Sent")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRequesterID, Table: model.TableName, Value: actor, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Value: model.StatusPending, Operator: gDto.FilterOperatorEq},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldModifiedAt, SortDir: "DESC"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sent friend requests")

		return res, fmt.Errorf("failed to get sent friend requests: %w", err)
	}

	res.FromModels(models)

	return res, nil
}

// transition moves a pending request into a terminal status. Only the
// addressee may accept or reject; only the requester may cancel.
func (s *serviceImpl) transition(ctx context.Context, id, toStatus, event string, requesterMayAct bool) error {
	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get friend request")

		return fmt.Errorf("failed to get friend request: %w", err)
	}

	if request.ID == constant.Empty {
		return failure.NotFound("friend request not found") // nolint:wrapcheck
	}

	allowedActor := request.AddresseeID
	if requesterMayAct {
		allowedActor = request.RequesterID
	}

	if actor != allowedActor {
		return failure.ForbiddenError // nolint:wrapcheck
	}

	if request.Status != model.StatusPending {
		return failure.Conflict("friend request is no longer pending") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        toStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update friend request")

		return fmt.Errorf("failed to update friend request: %w", err)
	}

	request.Status = toStatus
	s.publish(ctx, event, request)

	return nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Accept")
	defer scope.End()

	return s.transition(ctx, id, model.StatusAccepted, eventRequestAccepted, false)
}

func (s *serviceImpl) Reject(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()

	return s.transition(ctx, id, model.StatusRejected, eventRequestRejected, false)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()

	return s.transition(ctx, id, model.StatusCancelled, eventRequestCancelled, true)
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetFriendsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{Field: model.FieldRequesterID, Table: model.TableName, Value: actor, Operator: gDto.FilterOperatorEq, ArgName: "requester_me"},
					gDto.Filter{Field: model.FieldAddresseeID, Table: model.TableName, Value: actor, Operator: gDto.FilterOperatorEq, ArgName: "addressee_me"},
				},
			},
			gDto.Filter{Field: model.FieldStatus, Table: model.TableName, Value: model.StatusAccepted, Operator: gDto.FilterOperatorEq},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get friends")

		return res, fmt.Errorf("failed to get friends: %w", err)
	}

	res.FriendIDs = make([]string, 0, len(models))

	for _, request := range models {
		friendID := request.RequesterID
		if friendID == actor {
			friendID = request.AddresseeID
		}

		res.FriendIDs = append(res.FriendIDs, friendID)
	}

	res.Count = len(res.FriendIDs)

	return res, nil
}

func (s *serviceImpl) Remove(ctx context.Context, friendID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Remove")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return err
	}

	filter := pairStatusFilter(actor, friendID, []string{model.StatusAccepted})

	request, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get friendship")

		return fmt.Errorf("failed to get friendship: %w", err)
	}

	if request.ID == constant.Empty {
		return failure.NotFound("friendship not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(request.ID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to remove friendship")

		return fmt.Errorf("failed to remove friendship: %w", err)
	}

	s.publish(ctx, eventFriendRemoved, request)

	return nil
}

func (s *serviceImpl) Status(ctx context.Context, otherID string) (res dto.FriendStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, err := actorID(ctx)
	if err != nil {
		return res, err
	}

	res.UserID = otherID
	res.Status = dto.FriendStatusNone

	request, err := s.repo.Get(ctx, pairStatusFilter(actor, otherID, []string{model.StatusPending, model.StatusAccepted}))
	if err != nil {
		log.Error().Err(err).Msg("failed to get friend status")

		return res, fmt.Errorf("failed to get friend status: %w", err)
	}

	switch {
	case request.ID == constant.Empty:
	case request.Status == model.StatusAccepted:
		res.Status = dto.FriendStatusFriends
	case request.RequesterID == actor:
		res.Status = dto.FriendStatusPendingSent
	default:
		res.Status = dto.FriendStatusPendingReceived
	}

	return res, nil
}
