package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"backend-trailbook/internal/domain"
	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service struct {
	secret   []byte
	store    store.RecordStore
	profiles *profile.Service
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, recordStore store.RecordStore, profiles *profile.Service) *Service {
	return &Service{
		secret:   []byte(secret),
		store:    recordStore,
		profiles: profiles,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, TokenResponse, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return User{}, TokenResponse{}, fmt.Errorf("%w: email, username, password required", domain.ErrValidation)
	}

	if _, err := s.profiles.FindByEmail(ctx, req.Email); err == nil {
		return User{}, TokenResponse{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return User{}, TokenResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	p := profile.Profile{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		return User{}, TokenResponse{}, err
	}

	tokens, err := s.GenerateTokens(ctx, p.ID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return userView(p), tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, TokenResponse, error) {
	p, err := s.profiles.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return User{}, TokenResponse{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return User{}, TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, TokenResponse{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	tokens, err := s.GenerateTokens(ctx, p.ID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return userView(p), tokens, nil
}

func (s *Service) GenerateTokens(ctx context.Context, userID string) (TokenResponse, error) {
	access, err := s.signToken(userID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := s.signToken(userID, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, userID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}

	stored, err := s.lookupRefreshToken(ctx, token)
	if err != nil || stored.UserID != claims.UserID || time.Now().After(stored.ExpiresAt) {
		return "", errors.New("refresh token invalid")
	}
	return claims.UserID, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (s *Service) signToken(userID string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func (s *Service) saveRefreshToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	rt := refreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
	doc, err := store.Encode(rt)
	if err != nil {
		return err
	}
	_, err = s.store.Put(ctx, store.RefreshTokens, store.SharedScope, rt.ID, doc)
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (refreshToken, error) {
	docs, err := s.store.Scan(ctx, store.RefreshTokens, store.SharedScope, store.Filter{Field: "token", Value: token})
	if err != nil {
		return refreshToken{}, err
	}
	if len(docs) == 0 {
		return refreshToken{}, domain.ErrNotFound
	}
	var rt refreshToken
	if err := store.Decode(docs[0], &rt); err != nil {
		return refreshToken{}, err
	}
	return rt, nil
}

func userView(p profile.Profile) User {
	return User{
		ID:        p.ID,
		Email:     p.Email,
		Username:  p.Username,
		CreatedAt: p.CreatedAt,
	}
}
