// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/javajoker/permit-portal/internal/models"
)

// JWTClaims is the token issued by the identity provider.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *JWTClaims) Actor() models.Actor {
	return models.Actor{
		ID:    c.UserID,
		Name:  c.Name,
		Email: c.Email,
		Role:  models.ActorRole(c.Role),
	}
}

var (
	jwtSecret = []byte("your-secret-key-change-in-production")
	jwtIssuer = "permit-portal"
)

func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

func SetJWTIssuer(issuer string) {
	jwtIssuer = issuer
}

func GenerateJWT(actor models.Actor, ttlHours int) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: actor.ID,
		Name:   actor.Name,
		Email:  actor.Email,
		Role:   string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    jwtIssuer,
			Subject:   actor.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateJWT(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" {
		return nil, errors.New("token has no user id")
	}
	if claims.Issuer != jwtIssuer {
		return nil, errors.New("unexpected token issuer")
	}

	return claims, nil
}
