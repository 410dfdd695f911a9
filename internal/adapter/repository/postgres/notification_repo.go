package postgres

import (
	"context"
	"encoding/json"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
)

// NotificationRepository implements usecase.NotificationRepository.
type NotificationRepository struct {
	queries *generated.Queries
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(db generated.DBTX) *NotificationRepository {
	return &NotificationRepository{queries: generated.New(db)}
}

// CreateIfAbsent inserts the notification unless its id is already taken.
func (r *NotificationRepository) CreateIfAbsent(ctx context.Context, n *domain.Notification) (bool, error) {
	var payload []byte
	if n.Payload != nil {
		var err error
		if payload, err = json.Marshal(n.Payload); err != nil {
			return false, err
		}
	}

	inserted, err := r.queries.CreateNotificationIfAbsent(ctx, generated.CreateNotificationIfAbsentParams{
		ID:            n.ID,
		UserID:        n.UserID,
		Type:          n.Type,
		Message:       n.Message,
		ReferenceType: n.ReferenceType,
		ReferenceID:   n.ReferenceID,
		Payload:       payload,
		Read:          n.Read,
		CreatedAt:     timeToPgTimestamptz(n.CreatedAt),
	})
	if err != nil {
		return false, err
	}

	return inserted == 1, nil
}

// ListByUser lists a user's notifications, newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	rows, err := r.queries.ListNotificationsByUser(ctx, generated.ListNotificationsByUserParams{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Lim:        clampInt32(limit),
		Off:        clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Notification, 0, len(rows))
	for _, row := range rows {
		n := &domain.Notification{
			ID:            row.ID,
			UserID:        row.UserID,
			Type:          row.Type,
			Message:       row.Message,
			ReferenceType: row.ReferenceType,
			ReferenceID:   row.ReferenceID,
			Read:          row.Read,
			CreatedAt:     row.CreatedAt.Time,
		}
		if row.Payload != nil {
			_ = json.Unmarshal(row.Payload, &n.Payload)
		}
		out = append(out, n)
	}

	return out, nil
}

// MarkRead marks one of userID's notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	n, err := r.queries.MarkNotificationRead(ctx, generated.MarkNotificationReadParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}

	return nil
}
