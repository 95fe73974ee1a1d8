package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List returns the caller's notifications, newest first. Actor identity
// stays server-side; only the verb is exposed.
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, n := range list {
		out = append(out, gin.H{
			"id":         n.ID,
			"verb":       n.Verb,
			"is_read":    n.IsRead,
			"created_at": n.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}
