package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when a token's expiry is in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for malformed tokens, bad signatures, and
	// unexpected signing methods.
	ErrTokenInvalid = errors.New("invalid token")
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the payload carried by every bearer token: the admin's ID plus
// the token version current at issue time. The middleware rejects tokens
// whose version lags the stored one, which revokes them after any password
// change without keeping server-side session state.
type Claims struct {
	AdminID      int64 `json:"id"`
	TokenVersion int64 `json:"tv"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies signed bearer tokens. It is stateless and
// never consults the store; the middleware performs the follow-up lookup.
type AuthService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. A zero ttl falls back to
// DefaultTokenTTL.
func NewAuthService(jwtSecret string, ttl time.Duration) *AuthService {
	if ttl == 0 {
		ttl = DefaultTokenTTL
	}
	return &AuthService{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
	}
}

// TokenTTL returns the configured token validity window.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// IssueToken creates a new signed token for the given admin.
func (s *AuthService) IssueToken(adminID, tokenVersion int64) (string, error) {
	now := time.Now()
	claims := Claims{
		AdminID:      adminID,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			Issuer:    "aus-server",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken validates a bearer token and returns its claims. Expired
// tokens fail with ErrTokenExpired; every other failure maps to
// ErrTokenInvalid.
func (s *AuthService) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
