package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// NotificationService defines the behavior needed by NotificationHandler.
type NotificationService interface {
	List(ctx context.Context, actor domain.Actor, input usecase.ListNotificationsInput) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor domain.Actor, id string) error
}

// Streamer upgrades a request to a live notification connection.
type Streamer interface {
	ServeWS(w http.ResponseWriter, r *http.Request, userID string)
}

// NotificationHandler serves the caller's notifications.
type NotificationHandler struct {
	notificationUC NotificationService
	streamer       Streamer
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationUC NotificationService, streamer Streamer) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC, streamer: streamer}
}

// List lists notifications, newest first. ?unread=true filters read ones out.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationUC.List(r.Context(), actor, usecase.ListNotificationsInput{
		UnreadOnly: parseBoolQuery(r, "unread"),
		Limit:      parseIntQuery(r, "limit", 20),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationsFromDomain(notifications))
}

// MarkRead marks one notification as read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	if err := h.notificationUC.MarkRead(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stream upgrades to a websocket that receives new notifications.
func (h *NotificationHandler) Stream(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	h.streamer.ServeWS(w, r, actor.ID)
}
