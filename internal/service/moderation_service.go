package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusanon/internal/model"
	"campusanon/internal/repository/mysql"
)

// ReportThreshold is the distinct-reporter count that auto-hides an item.
const ReportThreshold = 3

type ReportStatus int

const (
	// StatusReported: a fresh report was recorded.
	StatusReported ReportStatus = iota
	// StatusDuplicate: this reporter had already reported the item.
	StatusDuplicate
	// StatusAlreadyHidden: the item was hidden before the call; no-op.
	StatusAlreadyHidden
)

type ReportResult struct {
	Status ReportStatus
	Count  int64
	Hidden bool
}

type reportStore interface {
	Report(ctx context.Context, kind model.ContentKind, itemID, reporterID uint64, reason string, threshold int) (mysql.ReportOutcome, error)
	HideOverride(ctx context.Context, kind model.ContentKind, itemID, adminID uint64, hidden bool) error
	BanOverride(ctx context.Context, userID, adminID uint64, banned bool) error
}

type postFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Post, error)
}

type commentFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Comment, error)
}

// ModerationService runs the report-threshold engine and the admin
// overrides that bypass it.
type ModerationService struct {
	reports  reportStore
	posts    postFinder
	comments commentFinder
	users    userStore
	sessions sessionStore
	limiter  rateLimiter
	log      *zap.Logger
}

func NewModerationService(reports reportStore, posts postFinder, comments commentFinder, users userStore, sessions sessionStore, limiter rateLimiter, log *zap.Logger) *ModerationService {
	return &ModerationService{
		reports:  reports,
		posts:    posts,
		comments: comments,
		users:    users,
		sessions: sessions,
		limiter:  limiter,
		log:      log,
	}
}

func (s *ModerationService) ReportPost(ctx context.Context, reporterID, postID uint64, reason string) (*ReportResult, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.report(ctx, model.KindPost, postID, post.Hidden, reporterID, reason)
}

func (s *ModerationService) ReportComment(ctx context.Context, reporterID, commentID uint64, reason string) (*ReportResult, error) {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.report(ctx, model.KindComment, commentID, comment.Hidden, reporterID, reason)
}

func (s *ModerationService) report(ctx context.Context, kind model.ContentKind, itemID uint64, hidden bool, reporterID uint64, reason string) (*ReportResult, error) {
	reporter, err := s.users.FindByID(ctx, reporterID)
	if err != nil {
		return nil, err
	}
	if reporter.Banned {
		return nil, ErrUserBanned
	}
	if hidden {
		return &ReportResult{Status: StatusAlreadyHidden, Hidden: true}, nil
	}
	if err := s.limiter.Allow(ctx, reporterID, ActionReport); err != nil {
		return nil, err
	}
	if reason == "" {
		reason = "unspecified"
	}

	out, err := s.reports.Report(ctx, kind, itemID, reporterID, reason, ReportThreshold)
	if err != nil {
		return nil, err
	}
	if !out.Created {
		return &ReportResult{Status: StatusDuplicate, Count: out.Count, Hidden: out.Hidden}, nil
	}
	if out.Hidden {
		s.log.Info("content auto-hidden",
			zap.String("kind", string(kind)),
			zap.Uint64("item_id", itemID),
			zap.Int64("reports", out.Count),
		)
	}
	return &ReportResult{Status: StatusReported, Count: out.Count, Hidden: out.Hidden}, nil
}

// Unhide is the admin override; it never re-runs the threshold logic.
func (s *ModerationService) Unhide(ctx context.Context, adminID, itemID uint64, kind model.ContentKind) error {
	switch kind {
	case model.KindPost:
		if _, err := s.posts.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
	case model.KindComment:
		if _, err := s.comments.FindByID(ctx, itemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
	}
	return s.reports.HideOverride(ctx, kind, itemID, adminID, false)
}

// BanUser flips the flag and kills the target's live session so the ban
// applies on their next request, not at token expiry.
func (s *ModerationService) BanUser(ctx context.Context, adminID, userID uint64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.reports.BanOverride(ctx, userID, adminID, true); err != nil {
		return err
	}
	if err := s.sessions.DeleteToken(ctx, userID); err != nil {
		s.log.Warn("evict banned session failed", zap.Uint64("user_id", userID), zap.Error(err))
	}
	return nil
}

func (s *ModerationService) UnbanUser(ctx context.Context, adminID, userID uint64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.reports.BanOverride(ctx, userID, adminID, false)
}
