package services

import (
	"context"
	"errors"
	"time"

	"esports-tournament-system/apperrors"
	"esports-tournament-system/models"
	"esports-tournament-system/repository"
	"esports-tournament-system/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// AuthService is the authentication collaborator: signup, login and token
// issuance. The engines themselves only ever see a resolved Principal.
type AuthService struct {
	store     repository.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(store repository.Store, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a PLAYER account and returns it with a signed token.
// Roles are fixed at creation; organizer and admin accounts are
// provisioned out of band.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, string, error) {
	taken, err := s.store.Users().ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return models.User{}, "", err
	}
	if taken {
		return models.User{}, "", apperrors.Conflict("email or username already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RolePlayer,
	}
	if err := s.store.Users().Create(ctx, &user); err != nil {
		return models.User{}, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Me resolves an authenticated principal back to its stored account.
func (s *AuthService) Me(ctx context.Context, principal models.Principal) (models.User, error) {
	user, err := s.store.Users().GetByID(ctx, principal.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, apperrors.Unauthorized("account no longer exists")
	}
	return user, err
}

// Login verifies credentials and returns the user with a signed token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return models.User{}, "", apperrors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return models.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, "", apperrors.Unauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}
