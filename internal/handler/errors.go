package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"campusanon/internal/pkg"
	"campusanon/internal/service"
)

// writeError maps service sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body so internals never leak.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrOTPNotFound),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrTooManyAttempts),
		errors.Is(err, service.ErrInvalidOTP),
		errors.Is(err, service.ErrYearBranchRequired),
		errors.Is(err, service.ErrQueryRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, pkg.ErrRefreshExpired),
		errors.Is(err, pkg.ErrRefreshInvalid),
		errors.Is(err, pkg.ErrTokenExpired),
		errors.Is(err, pkg.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserBanned),
		errors.Is(err, service.ErrNotAuthor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCommunityNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
