package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pbx-admin/backend/internal/access"
)

type Claims struct {
	UserID    uuid.UUID  `json:"user_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	IsAdmin   bool       `json:"is_admin"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims into the request-scoped identity.
func (c *Claims) Identity() *access.Identity {
	return &access.Identity{
		ID:        c.UserID,
		Email:     c.Email,
		Name:      c.Name,
		IsAdmin:   c.IsAdmin,
		ProfileID: c.ProfileID,
	}
}

// GenerateJWT signs an HS256 token carrying the user's identity claims.
// expiration <= 0 falls back to 15 minutes.
func GenerateJWT(secret string, user Subject, expiration time.Duration) (string, error) {
	if expiration <= 0 {
		expiration = 15 * time.Minute
	}

	claims := Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		ProfileID: user.ProfileID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pbx-admin",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Subject is the minimal user shape needed to mint a token.
type Subject struct {
	ID        uuid.UUID
	Email     string
	Name      string
	IsAdmin   bool
	ProfileID *uuid.UUID
}

func ParseJWT(secret string, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// IsExpired distinguishes an expired token from an otherwise invalid one so
// the audit trail can record the precise rejection reason.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
