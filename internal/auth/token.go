package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Lparksi/vikunja-1/internal/models"
)

var (
	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for a malformed token, a bad signature or
	// an unexpected signing method.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the signed claims set carried by every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// TokenService issues and validates HS256-signed bearer tokens. Two TTL
// classes exist: the default and a long one for long_token logins, both
// signed with the same secret.
type TokenService struct {
	secret  []byte
	ttl     time.Duration
	ttlLong time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret string, ttl, ttlLong time.Duration) *TokenService {
	return &TokenService{
		secret:  []byte(secret),
		ttl:     ttl,
		ttlLong: ttlLong,
	}
}

// Issue signs a token for the user. When long is true the long TTL applies.
func (s *TokenService) Issue(user *models.User, long bool) (string, error) {
	ttl := s.ttl
	if long {
		ttl = s.ttlLong
	}
	return s.issueWithTTL(user, ttl)
}

func (s *TokenService) issueWithTTL(user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the claims.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
