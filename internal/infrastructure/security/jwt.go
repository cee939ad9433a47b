// Package security provides JWT token utilities
package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/blindcal/blindcal-go/internal/domain/entities/dating"
)

// SessionClaims is what a validated session token carries.
type SessionClaims struct {
	ProfileID string
	Role      dating.UserRole
	TenantID  string
}

// ValidateJWT validates a JWT token and returns the claims
func ValidateJWT(tokenString, jwtSecret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// GenerateSessionToken creates a signed session JWT for a profile.
func GenerateSessionToken(profile *dating.Profile, tenantID, jwtSecret string) (string, error) {
	claims := jwt.MapClaims{
		"sub":      profile.ID,
		"role":     string(profile.Role),
		"tenantId": tenantID,
		"iat":      time.Now().UTC().Unix(),
		"exp":      time.Now().UTC().Add(30 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

// SessionFromClaims extracts session identity from validated claims.
func SessionFromClaims(claims jwt.MapClaims) (*SessionClaims, error) {
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token missing subject")
	}
	role, _ := claims["role"].(string)
	tenantID, _ := claims["tenantId"].(string)
	return &SessionClaims{
		ProfileID: sub,
		Role:      dating.UserRole(role),
		TenantID:  tenantID,
	}, nil
}
