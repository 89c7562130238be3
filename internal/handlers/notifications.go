package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"navix-backend/internal/models"
	"navix-backend/internal/supabase"
)

type NotificationsHandler struct {
	dbClient *supabase.DatabaseClient
}

func NewNotificationsHandler(dbClient *supabase.DatabaseClient) *NotificationsHandler {
	return &NotificationsHandler{dbClient: dbClient}
}

// List godoc
// @Summary     List notifications
// @Description Newest first.
// @Tags        notifications
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.NotificationListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /notifications [get]
func (h *NotificationsHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := h.dbClient.ListNotifications(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list notifications", Message: err.Error()})
		return
	}

	resp := models.NotificationListResponse{Notifications: make([]models.NotificationResponse, 0, len(notifications))}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, models.NotificationResponse{
			ID:        n.ID.String(),
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// MarkRead godoc
// @Summary     Mark a notification as read
// @Tags        notifications
// @Security    Bearer
// @Param       notification_id path string true "Notification ID (UUID)"
// @Success     204
// @Failure     400 {object} models.ErrorResponse
// @Router      /notifications/{notification_id}/read [patch]
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("notification_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid notification id"})
		return
	}

	if err := h.dbClient.MarkNotificationRead(notificationID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to mark notification read", Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
