package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskstream/domain/apperrors"
	"taskstream/domain/dto"
	"taskstream/domain/models"
	"taskstream/domain/ports"
	"taskstream/domain/repositories"
	"taskstream/domain/services"
	redispkg "taskstream/infrastructure/redis"
	"taskstream/pkg/config"
	"taskstream/pkg/logger"
	"taskstream/pkg/utils"
)

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	limiter  *redispkg.LoginLimiter
	denylist *redispkg.TokenDenylist
	sessions ports.SessionTerminator
	jwtCfg   config.JWTConfig
	authCfg  config.AuthConfig
}

func NewUserService(
	userRepo repositories.UserRepository,
	limiter *redispkg.LoginLimiter,
	denylist *redispkg.TokenDenylist,
	sessions ports.SessionTerminator,
	jwtCfg config.JWTConfig,
	authCfg config.AuthConfig,
) services.UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		limiter:  limiter,
		denylist: denylist,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		authCfg:  authCfg,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", nil, apperrors.ErrInvalidIdentifier
	}

	if len(req.Password) < s.authCfg.MinPasswordLength {
		return "", nil, apperrors.ErrWeakCredential
	}

	existing, _ := s.userRepo.GetByEmail(ctx, req.Email)
	if existing != nil {
		logger.WarnContext(ctx, "Email already registered", "email", req.Email)
		return "", nil, apperrors.ErrAccountExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user", "email", req.Email, "error", err)
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtCfg.Secret, s.jwtCfg.TTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign session token", "user_id", user.ID, "error", err)
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", nil, apperrors.ErrInvalidIdentifier
	}

	if !s.limiter.Allow(ctx, req.Email) {
		logger.WarnContext(ctx, "Sign-in rate limited", "email", req.Email)
		return "", nil, apperrors.ErrRateLimited
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Sign-in failed, account not found", "email", req.Email)
			s.limiter.RecordFailure(ctx, req.Email)
			return "", nil, apperrors.ErrAccountNotFound
		}
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Sign-in failed, wrong password", "user_id", user.ID)
		s.limiter.RecordFailure(ctx, req.Email)
		return "", nil, apperrors.ErrWrongCredential
	}

	s.limiter.Reset(ctx, req.Email)

	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtCfg.Secret, s.jwtCfg.TTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign session token", "user_id", user.ID, "error", err)
		return "", nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}

	logger.InfoContext(ctx, "User signed in", "user_id", user.ID, "email", user.Email)

	return token, user, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	userCtx, err := utils.ValidateToken(token, s.jwtCfg.Secret)
	if err != nil {
		// An already-expired token still signs out cleanly.
		if !errors.Is(err, utils.ErrExpiredToken) {
			return fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
		}
	}

	if userCtx != nil {
		if err := s.denylist.Revoke(ctx, token, userCtx.ExpiresAt); err != nil {
			logger.ErrorContext(ctx, "Failed to revoke token", "user_id", userID, "error", err)
			return fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
		}
	}

	// Tear the live feed down before the session is considered gone so no
	// stale collection stays visible.
	if s.sessions != nil {
		s.sessions.EndSession(userID)
	}

	logger.InfoContext(ctx, "User signed out", "user_id", userID)
	return nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIdentityProvider, err)
	}
	return user, nil
}
