package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lucakurth/techfinder-backend/internal/users"
	pkgAuth "github.com/lucakurth/techfinder-backend/pkg/auth"
	"github.com/lucakurth/techfinder-backend/pkg/auth/session"
	"github.com/lucakurth/techfinder-backend/pkg/config"
	"github.com/lucakurth/techfinder-backend/pkg/db/models"
	pkgerrors "github.com/lucakurth/techfinder-backend/pkg/errors"
	"github.com/lucakurth/techfinder-backend/pkg/logger"
	"github.com/lucakurth/techfinder-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Status(ctx context.Context, userID uint) (*StatusResult, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
}

type sessionManager interface {
	Start(ctx context.Context, sessionID string, userID uint) error
	Revoke(ctx context.Context, sessionID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	Logger         *logger.Logger
}

type service struct {
	users       userRepository
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user repository is required")
	}
	if params.SessionManager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session manager is required")
	}
	if params.Logger == nil {
		params.Logger = logger.New(logger.Options{ServiceName: "auth"})
	}
	return &service{
		users:       params.UserRepo,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

// Register hashes the password and persists a new account. Uniqueness
// collisions surface as conflicts without revealing the hash.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username, email and password are required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUsernameTaken):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, users.ErrUsernameTaken.Error())
		case errors.Is(err, users.ErrEmailTaken):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, users.ErrEmailTaken.Error())
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
	}

	return &RegisterResult{UserID: user.ID, Username: user.Username}, nil
}

// Login authenticates by username, falling back to email when no username
// matches. All failure paths return the same message so callers cannot probe
// which accounts exist; the precise reason is only logged server-side.
func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	user, err := s.lookup(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Warn(s.logg.WithField(ctx, "identifier", identifier), "login failed: unknown identifier")
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		s.logg.Warn(s.logg.WithUserID(ctx, user.Username), "login failed: password mismatch")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	sessionID := session.NewSessionID()
	token, err := pkgAuth.MintSessionToken(s.jwtCfg, time.Now().UTC(), pkgAuth.SessionTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		JTI:      sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}
	if err := s.session.Start(ctx, sessionID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "start session")
	}

	return &LoginResult{Token: token, User: users.FromModel(user)}, nil
}

// Logout revokes the session. It succeeds even when no session exists.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.session.Revoke(ctx, sessionID); err != nil {
		s.logg.Warn(ctx, "logout: revoking session failed")
	}
	return nil
}

// Status resolves the current account for an already-verified session.
func (s *service) Status(ctx context.Context, userID uint) (*StatusResult, error) {
	if userID == 0 {
		return &StatusResult{Authenticated: false}, nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StatusResult{Authenticated: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return &StatusResult{Authenticated: true, User: users.FromModel(user)}, nil
}

func (s *service) lookup(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.users.FindByEmail(ctx, strings.ToLower(identifier))
}
