package service

import (
	"context"
	"errors"
	"strconv"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
	"fleetrent-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
	identity security.IdentityProvider
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, identity security.IdentityProvider) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		identity: identity,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, *domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", "", nil, ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return "", "", nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", nil, err
	}
	return access, refresh, user, nil
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", security.ErrInvalidToken
	}
	if !user.IsActive {
		return "", "", ErrAccountDisabled
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return "", "", err
	}
	return access, newRefresh, nil
}

// Authenticate resolves a bearer token to an active user. The identity
// provider yields an opaque subject: an email or a numeric user id.
func (s *authService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	subject, err := s.identity.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	var user *domain.User
	if id, convErr := strconv.Atoi(subject); convErr == nil {
		user, err = s.userRepo.GetByID(ctx, int32(id))
	} else {
		user, err = s.userRepo.GetByEmail(ctx, subject)
	}
	if err != nil {
		return nil, security.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}
