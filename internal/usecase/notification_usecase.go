package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
)

// NotificationUseCase turns outbox events into per-user notifications and
// serves the notification list.
type NotificationUseCase struct {
	notificationRepo NotificationRepository
	pusher           NotificationPusher
	logger           zerolog.Logger
	metrics          *metrics.Metrics
}

// NewNotificationUseCase creates a new NotificationUseCase. pusher may be nil
// when live delivery is disabled.
func NewNotificationUseCase(
	notificationRepo NotificationRepository,
	pusher NotificationPusher,
	logger zerolog.Logger,
	metrics *metrics.Metrics,
) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
		metrics:          metrics,
	}
}

// Publish stores one notification per recipient of event and pushes the new
// ones to live connections. A storage error is returned so the event is
// retried; push errors are logged and dropped.
func (uc *NotificationUseCase) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	recipients := event.Recipients()
	if len(recipients) == 0 {
		return nil
	}

	payload := make(map[string]any, len(event.Payload))
	for k, v := range event.Payload {
		if k == domain.PayloadRecipients || k == domain.PayloadMessage {
			continue
		}
		payload[k] = v
	}

	now := time.Now().UTC()
	for _, userID := range recipients {
		n := &domain.Notification{
			ID:            domain.NotificationID(event.ID, userID),
			UserID:        userID,
			Type:          event.EventType,
			Message:       event.Message(),
			ReferenceType: event.AggregateType,
			ReferenceID:   event.AggregateID,
			Payload:       payload,
			CreatedAt:     now,
		}

		created, err := uc.notificationRepo.CreateIfAbsent(ctx, n)
		if err != nil {
			return err
		}
		if !created {
			continue
		}

		if uc.metrics != nil {
			uc.metrics.NotificationsDelivered.Inc()
		}

		if uc.pusher == nil {
			continue
		}

		if err := uc.pusher.Push(ctx, n); err != nil {
			if uc.metrics != nil {
				uc.metrics.NotificationPushErrors.Inc()
			}
			uc.logger.Warn().
				Err(err).
				Str("notification_id", n.ID).
				Str("user_id", userID).
				Msg("live push failed")
		}
	}

	return nil
}

// ListNotificationsInput represents input for listing notifications.
type ListNotificationsInput struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

// List lists the actor's notifications, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, actor domain.Actor, input ListNotificationsInput) ([]*domain.Notification, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.notificationRepo.ListByUser(ctx, actor.ID, input.UnreadOnly, limit, offset)
}

// MarkRead marks one of the actor's notifications as read.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, actor domain.Actor, id string) error {
	return uc.notificationRepo.MarkRead(ctx, actor.ID, id)
}
