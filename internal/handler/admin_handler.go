package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/model"
	"campusanon/internal/service"
)

type AdminHandler struct {
	svc *service.ModerationService
}

func NewAdminHandler(svc *service.ModerationService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) UnhidePost(c *gin.Context) {
	h.unhide(c, model.KindPost, "post_id")
}

func (h *AdminHandler) UnhideComment(c *gin.Context) {
	h.unhide(c, model.KindComment, "comment_id")
}

func (h *AdminHandler) unhide(c *gin.Context, kind model.ContentKind, param string) {
	itemID, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Unhide(c.Request.Context(), middleware.UserID(c), itemID, kind); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item unhidden"})
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.svc.BanUser(c.Request.Context(), middleware.UserID(c), userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User banned"})
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || userID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.svc.UnbanUser(c.Request.Context(), middleware.UserID(c), userID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unbanned"})
}
