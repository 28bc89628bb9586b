package services

import (
	"context"

	"github.com/google/uuid"

	"taskstream/domain/dto"
	"taskstream/domain/models"
)

// UserService is the identity session boundary: register, sign in, sign out.
// Register and Login return a signed session token alongside the user.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error)
	// Logout revokes the presented token for its remaining lifetime and tears
	// down the user's live feed.
	Logout(ctx context.Context, userID uuid.UUID, token string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
