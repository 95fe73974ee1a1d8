package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/model"
	"campusanon/internal/service"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

func communityView(cm model.Community) gin.H {
	return gin.H{
		"id":        cm.ID,
		"name":      cm.Name,
		"slug":      cm.Slug,
		"is_global": cm.IsGlobal,
	}
}

// Mine lists the caller's communities.
func (h *CommunityHandler) Mine(c *gin.Context) {
	list, err := h.svc.Mine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cm := range list {
		out = append(out, communityView(cm))
	}
	c.JSON(http.StatusOK, gin.H{"communities": out})
}

func (h *CommunityHandler) Search(c *gin.Context) {
	list, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, cm := range list {
		out = append(out, communityView(cm))
	}
	c.JSON(http.StatusOK, gin.H{"communities": out})
}
