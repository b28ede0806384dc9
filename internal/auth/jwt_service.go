package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"hevatrack/internal/model"
)

// DefaultTokenExpiry is the session token lifetime. Expiry forces
// re-authentication; there is no silent renewal.
const DefaultTokenExpiry = 24 * time.Hour

// Claims represents JWT claims carrying the actor identity and role.
type Claims struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	FullName string     `json:"full_name,omitempty"`
	Role     model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor converts the claims into an explicit workflow actor.
func (c *Claims) Actor() model.Actor {
	return model.Actor{
		ID:       c.UserID,
		FullName: c.FullName,
		Role:     c.Role,
	}
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateToken generates a signed session token for the user.
func (s *JWTService) GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
