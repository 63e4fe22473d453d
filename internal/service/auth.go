package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vmakarenko/storefront-api/internal/hash"
	"github.com/vmakarenko/storefront-api/internal/models"
	"github.com/vmakarenko/storefront-api/internal/repo"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type TokenPair struct {
	Access  string
	Refresh string
	IsAdmin bool
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password required", ErrValidation)
	}

	if _, err := s.Repo.GetUserByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         "user",
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	return s.issueTokens(ctx, user.ID, user.Role)
}

// Rotate exchanges a usable refresh token for a fresh pair and revokes the
// old token.
func (s *AuthService) Rotate(ctx context.Context, rawRefresh string) (*TokenPair, error) {
	claims, err := s.parseRefresh(rawRefresh)
	if err != nil {
		return nil, err
	}

	usable, err := s.Repo.IsRefreshTokenUsable(ctx, rawRefresh, time.Now())
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !usable) {
		return nil, fmt.Errorf("%w: refresh token revoked or expired", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, rawRefresh); err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(float64)
	role, _ := claims["role"].(string)
	return s.issueTokens(ctx, uint(sub), role)
}

func (s *AuthService) Logout(ctx context.Context, rawRefresh string) error {
	if rawRefresh == "" {
		return fmt.Errorf("%w: refresh token required", ErrValidation)
	}
	return s.Repo.RevokeRefreshToken(ctx, rawRefresh)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint, role string) (*TokenPair, error) {
	access, err := SignAccessToken(userID, role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	// jti keeps tokens unique even when two are minted within the same
	// second for the same user.
	refreshExp := time.Now().Add(RefreshTokenTTL)
	refresh, err := signToken(jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  refreshExp.Unix(),
		"typ":  "refresh",
		"jti":  uuid.NewString(),
	}, s.RefreshSecret)
	if err != nil {
		return nil, err
	}

	record := models.RefreshToken{
		Token:     refresh,
		UserID:    userID,
		Role:      role,
		ExpiresAt: refreshExp,
	}
	if err := s.Repo.SaveRefreshToken(ctx, &record); err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh, IsAdmin: role == "admin"}, nil
}

func (s *AuthService) parseRefresh(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return nil, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	return claims, nil
}

func SignAccessToken(userID uint, role string, secret []byte) (string, error) {
	return signToken(jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	}, secret)
}

func signToken(claims jwt.MapClaims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
