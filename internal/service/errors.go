package service

import "errors"

// Domain errors. Handlers map these onto HTTP statuses; nothing internal
// leaks past them.
var (
	ErrInvalidEmail       = errors.New("invalid college email")
	ErrOTPNotFound        = errors.New("otp not found")
	ErrOTPExpired         = errors.New("otp expired")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrYearBranchRequired = errors.New("year and branch required")
	ErrUserBanned         = errors.New("user is banned")
	ErrUserNotFound       = errors.New("user not found")
	ErrCommunityNotFound  = errors.New("community not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotAuthor          = errors.New("not allowed to delete this post")
	ErrRateLimited        = errors.New("too many requests")
	ErrQueryRequired      = errors.New("query required")
)
