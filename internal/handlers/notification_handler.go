package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nestegg/internal/ledger"
	"nestegg/internal/notify"
)

// NotificationHandler handles notification-related requests.
type NotificationHandler struct {
	center *notify.Center
	store  *ledger.Store
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(center *notify.Center, store *ledger.Store) *NotificationHandler {
	return &NotificationHandler{center: center, store: store}
}

// GetNotifications lists active notifications, newest first
// @Summary     List notifications
// @Description List active notifications with the unread count
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} notify.Notification "Notifications"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [get]
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"notifications": h.center.Notifications(),
		"unread":        h.center.Unread(),
	})
}

// Scan re-evaluates advisory rules against the current ledger
// @Summary     Scan for notifications
// @Description Run the advisory rules against the current ledger snapshot
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]int "Number of notifications added"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications/scan [post]
func (h *NotificationHandler) Scan(c *gin.Context) {
	added := h.center.Scan(h.store.Investments(), h.store.Transactions())
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// MarkRead flags one notification as read
// @Summary     Mark notification read
// @Description Mark a single notification as read
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Notification ID"
// @Success     204 "Marked read"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Notification not found"
// @Router      /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.center.MarkRead(c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear empties the notification set
// @Summary     Clear notifications
// @Description Remove every notification from the active set
// @Tags        notifications
// @Produce     json
// @Security    BearerAuth
// @Success     204 "Cleared"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /notifications [delete]
func (h *NotificationHandler) Clear(c *gin.Context) {
	h.center.Clear()
	c.Status(http.StatusNoContent)
}
