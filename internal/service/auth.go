package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/bdmarket/storefront/internal/hash"
	"github.com/bdmarket/storefront/internal/models"
	"github.com/bdmarket/storefront/internal/repo"
	"github.com/bdmarket/storefront/internal/tokens"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	AccessToken  string
	AccessExp    time.Time
	RefreshToken string
	RefreshExp   time.Time
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, *TokenPair, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates both tokens from a valid, unrevoked refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid refresh token", ErrValidation)
	}

	stored, err := s.Repo.GetRefreshToken(ctx, refreshToken)
	if err != nil || stored.Revoked || stored.ExpiresAt.Before(time.Now()) {
		return nil, nil, fmt.Errorf("%w: refresh token expired or revoked", ErrValidation)
	}

	user, err := s.Repo.GetUserByUsername(ctx, claims.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown user", ErrValidation)
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	now := time.Now().UTC()
	pair := &TokenPair{
		AccessExp:  now.Add(accessTTL),
		RefreshExp: now.Add(refreshTTL),
	}

	userID := strconv.FormatUint(uint64(user.ID), 10)

	var err error
	pair.AccessToken, err = tokens.CreateAccessToken(s.JWTSecret, userID, user.Username, user.Role, pair.AccessExp)
	if err != nil {
		return nil, err
	}
	pair.RefreshToken, err = tokens.CreateRefreshToken(s.RefreshSecret, userID, user.Username, pair.RefreshExp)
	if err != nil {
		return nil, err
	}

	err = s.Repo.SaveRefreshToken(ctx, &models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    user.ID,
		ExpiresAt: pair.RefreshExp,
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}
