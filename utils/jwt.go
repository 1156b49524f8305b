package utils

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "RestaurantTables"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

type CustomClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs staff tokens and checks them against a store of revoked ones.
type TokenManager struct {
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
	revoked RevocationStore
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	m := &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	m.revoked = newMemoryRevocations(func() time.Time { return m.now() })
	return m
}

// UseRevocationStore replaces the in-process revocation list, e.g. with
// RedisRevocations when several instances share logins.
func (m *TokenManager) UseRevocationStore(store RevocationStore) {
	m.revoked = store
}

func (m *TokenManager) GenerateToken(userID uint, email, role string) (string, error) {
	now := m.now()
	claims := &CustomClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		ErrorLogger.Printf("Error generating token: %v", err)
		return "", err
	}
	return signed, nil
}

func (m *TokenManager) ParseToken(tokenString string) (*CustomClaims, error) {
	if m.IsBlacklisted(tokenString) {
		return nil, ErrTokenBlacklisted
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Blacklist revokes the token until it would have expired anyway.
func (m *TokenManager) Blacklist(tokenString string) error {
	ctx, cancel := context.WithTimeout(context.Background(), revocationTimeout)
	defer cancel()

	if err := m.revoked.Revoke(ctx, tokenString, m.ttl); err != nil {
		ErrorLogger.Printf("Error revoking token: %v", err)
		return err
	}
	return nil
}

// IsBlacklisted fails closed: a store error counts as revoked.
func (m *TokenManager) IsBlacklisted(tokenString string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), revocationTimeout)
	defer cancel()

	revoked, err := m.revoked.IsRevoked(ctx, tokenString)
	if err != nil {
		ErrorLogger.Printf("Error checking token revocation: %v", err)
		return true
	}
	return revoked
}
