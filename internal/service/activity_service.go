package service

import (
	"context"
	"encoding/json"
	"time"

	"virtual-lab-be/internal/dto"
	"virtual-lab-be/internal/entity"
	"virtual-lab-be/internal/pkg/logger"
	"virtual-lab-be/internal/repository/specification"
	"virtual-lab-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// IActivityService consumes the in-process activity topic and serves
// the timeline. Writes are asynchronous so session handlers never block
// on the database for timeline bookkeeping.
type IActivityService interface {
	Consume(ctx context.Context) error
	Feed(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ActivityFeedResponse, error)
}

type activityService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewActivityService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IActivityService {
	return &activityService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *activityService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *activityService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("ActivityService", "Failed to unmarshal activity message", map[string]interface{}{"error": err})
		msg.Ack() // malformed payloads would loop forever on Nack
		return
	}

	occurredAt := payload.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	entry := entity.ActivityEntry{
		Id:         uuid.New(),
		UserId:     payload.UserId,
		LabId:      payload.LabId,
		Kind:       entity.ActivityKind(payload.Kind),
		Detail:     payload.Detail,
		Metadata:   payload.Metadata,
		OccurredAt: occurredAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ActivityRepository().Create(ctx, &entry); err != nil {
		s.logger.Error("ActivityService", "Failed to persist activity entry", map[string]interface{}{
			"error": err, "user_id": payload.UserId, "kind": payload.Kind,
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (s *activityService) Feed(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ActivityFeedResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ActivityRepository()

	total, err := repo.Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	entries, err := repo.FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "occurred_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ActivityFeedResponse{
		Entries: make([]*dto.ActivityEntryResponse, len(entries)),
		Total:   total,
	}
	for i, e := range entries {
		res.Entries[i] = &dto.ActivityEntryResponse{
			Id:         e.Id,
			LabId:      e.LabId,
			Kind:       string(e.Kind),
			Detail:     e.Detail,
			Metadata:   e.Metadata,
			OccurredAt: e.OccurredAt,
		}
	}
	return res, nil
}
