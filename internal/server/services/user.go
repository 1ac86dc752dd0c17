package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/edupilot/internal/common"
	"github.com/dmitrijs2005/edupilot/internal/cryptox"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/server/auth"
	"github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/models"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
)

// MinPasswordLength is the shortest password signup accepts.
const MinPasswordLength = 8

// SessionToken is the signed cookie value for a new session.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// UserService handles signup, login, logout and session lookups.
type UserService struct {
	repomanager repomanager.RepositoryManager
	secret      []byte
	sessionTTL  time.Duration
	log         logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *UserService {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = common.DefaultSessionTTL
	}
	return &UserService{
		repomanager: m,
		secret:      []byte(cfg.SecretKey),
		sessionTTL:  ttl,
		log:         log.With("module", "users"),
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeCredentials(email, password string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return "", common.NewValidationError("", "Email and password are required.")
	}
	return email, nil
}

// Signup creates the account and its first session in one transaction.
// A taken email yields common.ErrorConflict.
func (s *UserService) Signup(ctx context.Context, email, password string) (*SessionToken, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return nil, common.NewValidationError("password", "Password must be at least 8 characters.")
	}

	now := nowFn()
	salt := cryptox.NewSalt()
	user := &models.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: cryptox.HashPassword([]byte(password), salt),
		Salt:         salt,
		CreatedAt:    now,
	}

	var token *SessionToken
	err = s.repomanager.InTx(ctx, func(tx repomanager.RepositoryManager) error {
		if _, err := tx.Users().Create(ctx, user); err != nil {
			return err
		}
		var err error
		token, err = s.openSession(ctx, tx, user.ID, now)
		return err
	})
	if err != nil {
		return nil, storageError(ctx, s.log, "signup", err)
	}

	s.log.Info(ctx, "user signed up", "user_id", user.ID)
	return token, nil
}

// Login checks the password against the stored hash and opens a session.
// Unknown emails and wrong passwords both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*SessionToken, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, storageError(ctx, s.log, "login", err)
	}
	if !cryptox.VerifyPassword(user.PasswordHash, user.Salt, []byte(password)) {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.openSession(ctx, s.repomanager, user.ID, nowFn())
	if err != nil {
		return nil, storageError(ctx, s.log, "login", err)
	}
	return token, nil
}

// Logout deletes the server-side session behind token. Tokens that do not
// verify are ignored.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil
	}
	if err := s.repomanager.Sessions().Delete(ctx, claims.SessionID()); err != nil {
		return storageError(ctx, s.log, "logout", err)
	}
	return nil
}

// Authenticate resolves token to a live session and its user. Bad
// signatures, expired tokens and revoked sessions yield
// common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	session, err := s.repomanager.Sessions().Get(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, storageError(ctx, s.log, "authenticate", err)
	}
	if session.Expired(nowFn()) || session.UserID != claims.UserID() {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users().GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, storageError(ctx, s.log, "authenticate", err)
	}
	return user, nil
}

// PurgeExpiredSessions removes sessions that are past their expiry.
func (s *UserService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repomanager.Sessions().DeleteExpired(ctx, nowFn())
	if err != nil {
		return 0, storageError(ctx, s.log, "purge sessions", err)
	}
	return n, nil
}

func (s *UserService) openSession(ctx context.Context, m repomanager.RepositoryManager, userID string, now time.Time) (*SessionToken, error) {
	session := &models.Session{
		ID:        newID(),
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := m.Sessions().Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(session.ID, userID, s.secret, session.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &SessionToken{Token: token, ExpiresAt: session.ExpiresAt}, nil
}
