package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campusanon/internal/model"
	"campusanon/internal/pkg"
)

const (
	otpTTL         = 5 * time.Minute
	maxOTPAttempts = 3
)

// branchCodes maps long-form branch names to the short codes communities
// are keyed by. Unrecognized names pass through unchanged.
var branchCodes = map[string]string{
	"Computer":                        "COMP",
	"Computer Engineering":            "COMP",
	"Information Technology":          "IT",
	"Electronics & Telecommunication": "ENTC",
	"Mechanical":                      "MECH",
	"Civil":                           "CIVIL",
}

// BranchCode resolves a declared branch name to its short code.
func BranchCode(name string) string {
	name = strings.TrimSpace(name)
	if code, ok := branchCodes[name]; ok {
		return code
	}
	return name
}

// NormalizeDivision keeps only "A" or "B"; everything else means no
// division.
func NormalizeDivision(division string) string {
	division = strings.ToUpper(strings.TrimSpace(division))
	if division == "A" || division == "B" {
		return division
	}
	return ""
}

type otpStore interface {
	Upsert(ctx context.Context, email, code string, expiresAt time.Time) error
	Find(ctx context.Context, email string) (*model.EmailOTP, error)
	IncrementAttempts(ctx context.Context, id uint64) error
	Delete(ctx context.Context, id uint64) error
}

type userStore interface {
	FindByEmailHash(ctx context.Context, hash string) (*model.User, error)
	FindByID(ctx context.Context, id uint64) (*model.User, error)
	CreateWithMemberships(ctx context.Context, user *model.User, communityID, globalID uint64) error
}

type communityStore interface {
	FindExact(ctx context.Context, year int, branch, division string) (*model.Community, error)
	EnsureGlobal(ctx context.Context) (*model.Community, error)
}

type memberStore interface {
	Join(ctx context.Context, member *model.CommunityMember) error
}

type notificationCleaner interface {
	ClearForUser(ctx context.Context, userID uint64) error
}

type sessionStore interface {
	SaveToken(ctx context.Context, userID uint64, token string) error
	DeleteToken(ctx context.Context, userID uint64) error
}

type mailSender interface {
	Enqueue(to, subject, html string)
}

// AuthService owns OTP issuance/verification and the identity resolution
// that follows a successful verification.
type AuthService struct {
	otps          otpStore
	users         userStore
	communities   communityStore
	members       memberStore
	notifications notificationCleaner
	sessions      sessionStore
	mail          mailSender
	tokens        *pkg.JWTManager
	collegeDomain string
	log           *zap.Logger
	now           func() time.Time
}

func NewAuthService(
	otps otpStore,
	users userStore,
	communities communityStore,
	members memberStore,
	notifications notificationCleaner,
	sessions sessionStore,
	mail mailSender,
	tokens *pkg.JWTManager,
	collegeDomain string,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		otps:          otps,
		users:         users,
		communities:   communities,
		members:       members,
		notifications: notifications,
		sessions:      sessions,
		mail:          mail,
		tokens:        tokens,
		collegeDomain: collegeDomain,
		log:           log,
		now:           time.Now,
	}
}

// SendOTP issues a fresh 6-digit code for the email, replacing any prior
// pending code, and hands the mail to the async pool. The code stays
// valid even if the send later fails.
func (s *AuthService) SendOTP(ctx context.Context, email string) error {
	email = pkg.NormalizeEmail(email)
	if email == "" || !strings.HasSuffix(email, s.collegeDomain) {
		return ErrInvalidEmail
	}

	code, err := pkg.RandDigits(6)
	if err != nil {
		return err
	}
	if err := s.otps.Upsert(ctx, email, code, s.now().Add(otpTTL)); err != nil {
		return err
	}

	s.mail.Enqueue(email, "Your Verification Code", pkg.OTPEmailHTML(code, otpTTL))
	return nil
}

// VerifyRequest carries the verification payload; year/branch/division
// matter only on the registration branch.
type VerifyRequest struct {
	Email    string
	OTP      string
	Year     int
	Branch   string
	Division string
}

type AuthResult struct {
	Pair      *pkg.Pair
	UserID    uint64
	Username  string
	IsNewUser bool
}

// VerifyOTP walks the code state machine and, on a match, resolves the
// identity: unknown email hash registers, known email hash logs in.
func (s *AuthService) VerifyOTP(ctx context.Context, req VerifyRequest) (*AuthResult, error) {
	email := pkg.NormalizeEmail(req.Email)

	rec, err := s.otps.Find(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOTPNotFound
		}
		return nil, err
	}

	// lazy cleanup: a failed check after expiry removes the record
	if rec.Expired(s.now()) {
		_ = s.otps.Delete(ctx, rec.ID)
		return nil, ErrOTPExpired
	}
	// exhaustion is self-cleaning too
	if rec.Attempts >= maxOTPAttempts {
		_ = s.otps.Delete(ctx, rec.ID)
		return nil, ErrTooManyAttempts
	}
	if rec.Code != req.OTP {
		if err := s.otps.IncrementAttempts(ctx, rec.ID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidOTP
	}

	// one-time use: consumed on match, before identity resolution
	if err := s.otps.Delete(ctx, rec.ID); err != nil {
		return nil, err
	}

	hash := pkg.HashEmail(email)
	user, err := s.users.FindByEmailHash(ctx, hash)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.register(ctx, hash, req)
	case err != nil:
		return nil, err
	default:
		return s.login(ctx, user)
	}
}

// register requires the exact academic community to exist already; no
// fallback community is created on the fly.
func (s *AuthService) register(ctx context.Context, hash string, req VerifyRequest) (*AuthResult, error) {
	if req.Year == 0 || strings.TrimSpace(req.Branch) == "" {
		return nil, ErrYearBranchRequired
	}
	branch := BranchCode(req.Branch)
	division := NormalizeDivision(req.Division)

	community, err := s.communities.FindExact(ctx, req.Year, branch, division)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommunityNotFound
		}
		return nil, err
	}
	global, err := s.communities.EnsureGlobal(ctx)
	if err != nil {
		return nil, err
	}

	username, err := pkg.RandUsername()
	if err != nil {
		return nil, err
	}
	user := &model.User{
		EmailHash: hash,
		Username:  username,
		Year:      req.Year,
		Branch:    branch,
	}
	if err := s.users.CreateWithMemberships(ctx, user, community.ID, global.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, true)
}

// login trusts the memberships established at registration; division is
// not stored on the user, so there is nothing to re-derive. The global
// membership is re-joined (a no-op when it already exists) and pending
// notifications are cleared.
func (s *AuthService) login(ctx context.Context, user *model.User) (*AuthResult, error) {
	if user.Banned {
		return nil, ErrUserBanned
	}

	global, err := s.communities.EnsureGlobal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.members.Join(ctx, &model.CommunityMember{CommunityID: global.ID, UserID: user.ID}); err != nil {
		return nil, err
	}

	if err := s.notifications.ClearForUser(ctx, user.ID); err != nil {
		s.log.Warn("clear notifications failed", zap.Uint64("user_id", user.ID), zap.Error(err))
	}

	return s.issueTokens(ctx, user, false)
}

func (s *AuthService) issueTokens(ctx context.Context, user *model.User, isNew bool) (*AuthResult, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveToken(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return &AuthResult{
		Pair:      pair,
		UserID:    user.ID,
		Username:  user.Username,
		IsNewUser: isNew,
	}, nil
}

// Refresh rotates the token pair and re-pins the session to the new
// access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := s.tokens.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveToken(ctx, claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// Me returns the caller's own profile fields.
func (s *AuthService) Me(ctx context.Context, userID uint64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
