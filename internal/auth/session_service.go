package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stockfolio/internal/model"
)

const (
	// SessionExpiry is the lifetime of a regular session token.
	SessionExpiry = 12 * time.Hour
	// RememberExpiry is the lifetime of a "remember me" session token.
	RememberExpiry = 30 * 24 * time.Hour

	// CookieName is the cookie carrying the session token.
	CookieName = "session"
)

// Claims represents session JWT claims.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionService issues and validates signed session tokens.
type SessionService struct {
	secret []byte
}

// NewSessionService creates a session service signing with the given secret.
func NewSessionService(secret string) *SessionService {
	return &SessionService{secret: []byte(secret)}
}

// Issue creates a session token for the user. The remember flag selects the
// long expiry used for persistent cookies.
func (s *SessionService) Issue(user *model.User, remember bool) (token string, expiresAt time.Time, err error) {
	ttl := SessionExpiry
	if remember {
		ttl = RememberExpiry
	}
	now := time.Now()
	expiresAt = now.Add(ttl)

	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	return token, expiresAt, err
}

// Validate parses and verifies a session token and returns its claims.
func (s *SessionService) Validate(tokenString string) (*Claims, error) {
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
