package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/model"
	"campusanon/internal/service"
)

type ModerationHandler struct {
	svc *service.ModerationService
}

func NewModerationHandler(svc *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{svc: svc}
}

type ReportReq struct {
	Reason string `json:"reason"`
}

func (h *ModerationHandler) ReportPost(c *gin.Context) {
	h.report(c, model.KindPost, "post_id")
}

func (h *ModerationHandler) ReportComment(c *gin.Context) {
	h.report(c, model.KindComment, "comment_id")
}

func (h *ModerationHandler) report(c *gin.Context, kind model.ContentKind, param string) {
	itemID, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || itemID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req ReportReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
			return
		}
	}

	reporterID := middleware.UserID(c)
	var result *service.ReportResult
	if kind == model.KindPost {
		result, err = h.svc.ReportPost(c.Request.Context(), reporterID, itemID, req.Reason)
	} else {
		result, err = h.svc.ReportComment(c.Request.Context(), reporterID, itemID, req.Reason)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	switch result.Status {
	case service.StatusAlreadyHidden:
		c.JSON(http.StatusOK, gin.H{"message": "Item already hidden"})
	case service.StatusDuplicate:
		c.JSON(http.StatusOK, gin.H{"message": "Already reported"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":       "Reported successfully",
			"reports_count": result.Count,
			"hidden":        result.Hidden,
		})
	}
}
