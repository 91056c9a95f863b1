package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 12

	// Default token lifetimes
	DefaultAccessTokenExpiration  = 30 * time.Minute
	DefaultRefreshTokenExpiration = 3 * 24 * time.Hour
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims represents the JWT claims carried by both token kinds. Only
// the owning user's identifier is encoded; validity is determined by
// signature and expiry alone, no server-side token store exists.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies the signed session credentials and
// owns password hashing. It holds the process-wide signing secret,
// loaded once at startup.
type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewTokenService creates a TokenService with the given secret and
// token lifetimes. Zero durations fall back to the defaults.
func NewTokenService(secret string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	if accessExpiry <= 0 {
		accessExpiry = DefaultAccessTokenExpiration
	}
	if refreshExpiry <= 0 {
		refreshExpiry = DefaultRefreshTokenExpiration
	}

	return &TokenService{
		secret:        []byte(secret),
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// AccessExpiry returns the configured access token lifetime
func (s *TokenService) AccessExpiry() time.Duration {
	return s.accessExpiry
}

// RefreshExpiry returns the configured refresh token lifetime
func (s *TokenService) RefreshExpiry() time.Duration {
	return s.refreshExpiry
}

// HashPassword hashes a password using bcrypt with cost factor 12.
// Each call salts freshly, so hashing the same plaintext twice yields
// different outputs.
func (s *TokenService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword verifies a password against a bcrypt hash
func (s *TokenService) CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// IssueAccessToken signs a short-lived token for the given user
func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, s.accessExpiry)
}

// IssueRefreshToken signs a longer-lived token for the given user,
// used solely to mint new access tokens
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return s.sign(userID, s.refreshExpiry)
}

func (s *TokenService) sign(userID string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token's signature and expiry and returns its
// claims. Returns ErrTokenExpired for expired tokens and
// ErrInvalidToken for anything malformed or signed with the wrong key.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
