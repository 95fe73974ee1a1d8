package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campusanon/internal/middleware"
	"campusanon/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type SendOTPReq struct {
	Email string `json:"email" binding:"required"`
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	if err := h.svc.SendOTP(c.Request.Context(), req.Email); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

type VerifyOTPReq struct {
	Email    string `json:"email" binding:"required"`
	OTP      string `json:"otp" binding:"required"`
	Year     int    `json:"year"`
	Branch   string `json:"branch"`
	Division string `json:"division"`
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	result, err := h.svc.VerifyOTP(c.Request.Context(), service.VerifyRequest{
		Email:    req.Email,
		OTP:      req.OTP,
		Year:     req.Year,
		Branch:   req.Branch,
		Division: req.Division,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":      result.Pair.AccessToken,
		"refresh":     result.Pair.RefreshToken,
		"user_id":     result.UserID,
		"username":    result.Username,
		"is_new_user": result.IsNewUser,
	})
}

type RefreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid params"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":           user.ID,
		"internal_username": user.Username,
		"year":              user.Year,
		"branch":            user.Branch,
	})
}
