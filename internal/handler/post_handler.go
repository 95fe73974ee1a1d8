package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostReq struct {
	CommunityID uint64 `json:"community_id" binding:"required"`
	Content     string `json:"content" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	post, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.CommunityID, req.Content)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         post.ID,
		"alias":      post.Alias,
		"content":    post.Content,
		"created_at": post.CreatedAt.Format(time.RFC3339),
	})
}

func (h *PostHandler) Feed(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("community_id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid community id"})
		return
	}

	items, err := h.svc.Feed(c.Request.Context(), communityID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(items))
	for _, it := range items {
		out = append(out, gin.H{
			"id":          it.ID,
			"alias":       it.Alias,
			"content":     it.Content,
			"likes_count": it.LikesCount,
			"created_at":  it.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"posts": out})
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), postID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
