package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
)

// Token namespaces. Admin/user sessions and tenant sessions carry a
// distinct type claim so one token cannot be replayed against the other
// surface.
const (
	TokenTypeAdmin  = "admin"
	TokenTypeTenant = "tenant"
)

// Claims represents the JWT claims for console authentication
type Claims struct {
	Email     string `json:"email"`
	UserID    uint   `json:"user_id,omitempty"`
	TenantID  *uint  `json:"tenant_id,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// JWTUtil is a utility for JWT token operations
type JWTUtil struct {
	config *config.JWTConfig
}

// NewJWTUtil creates a new JWT utility with the given configuration
func NewJWTUtil(cfg *config.JWTConfig) *JWTUtil {
	return &JWTUtil{config: cfg}
}

// Expiry returns the lifetime applied to issued tokens.
func (j *JWTUtil) Expiry() time.Duration {
	return time.Duration(j.config.ExpirationHours) * time.Hour
}

// GenerateToken creates a JWT token for an admin console user
func (j *JWTUtil) GenerateToken(email string, userID uint, role string) (string, error) {
	return j.generate(Claims{
		Email:     email,
		UserID:    userID,
		Role:      role,
		TokenType: TokenTypeAdmin,
	})
}

// GenerateTenantToken creates a JWT token for a tenant login
func (j *JWTUtil) GenerateTenantToken(email string, tenantID uint) (string, error) {
	return j.generate(Claims{
		Email:     email,
		TenantID:  &tenantID,
		TokenType: TokenTypeTenant,
	})
}

func (j *JWTUtil) generate(claims Claims) (string, error) {
	if j.config == nil {
		return "", errors.New("JWT configuration not provided")
	}

	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(j.Expiry())),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.config.SigningKey))
}

// ValidateToken validates and parses the JWT token
func (j *JWTUtil) ValidateToken(tokenString string) (*Claims, error) {
	if j.config == nil {
		return nil, errors.New("JWT configuration not provided")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(j.config.SigningKey), nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
