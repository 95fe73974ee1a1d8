package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/service"
)

type PostLikeHandler struct {
	svc *service.PostLikeService
}

func NewPostLikeHandler(svc *service.PostLikeService) *PostLikeHandler {
	return &PostLikeHandler{svc: svc}
}

func (h *PostLikeHandler) Toggle(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	liked, count, err := h.svc.Toggle(c.Request.Context(), middleware.UserID(c), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"liked":       liked,
		"likes_count": count,
	})
}
