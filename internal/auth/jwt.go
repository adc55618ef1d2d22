package auth

import (
	"errors"
	"time"

	"jobvibes_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongType    = errors.New("wrong token type")
)

// Claims carried by both access and refresh tokens. Subject is the user ID
// and the token ID holds the session ID, so revoking a session invalidates
// its refresh chain.
type Claims struct {
	Type string `json:"type,omitempty"` // empty for access, "refresh" for refresh
	jwt.RegisteredClaims
}

// TokenPair is what the auth endpoints hand back to clients.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
}

// IssueTokens signs an access + refresh pair for (user, session).
func IssueTokens(userID, sessionID string) (*TokenPair, error) {
	cfg := config.GetConfig()
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWT.AccessTTLSec) * time.Second)),
		},
	})
	accessToken, err := access.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(cfg.JWT.RefreshTTLSec) * time.Second)),
		},
	})
	refreshToken, err := refresh.SignedString([]byte(cfg.JWT.RefreshSecret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    cfg.JWT.AccessTTLSec,
	}, nil
}

// ParseToken verifies an access token and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.Secret, "")
}

// ParseRefreshToken verifies a refresh token and returns its claims.
func ParseRefreshToken(tokenStr string) (*Claims, error) {
	return parse(tokenStr, config.GetConfig().JWT.RefreshSecret, "refresh")
}

func parse(tokenStr, secret, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != wantType {
		return nil, ErrWrongType
	}
	return claims, nil
}
