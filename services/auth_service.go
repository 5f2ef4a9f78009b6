package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"accident-risk-api/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid client credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const tokenIssuer = "accident-risk-api"

// AuthService issues and checks bearer tokens for API clients. Clients
// authenticate with an id and a secret whose bcrypt hash is configured.
type AuthService struct {
	jwtSecret []byte
	expiryH   int
	clients   map[string]string
	check     func(hash, plain string) bool
}

func NewAuthService(cfg config.JWTConfig, auth config.AuthConfig) *AuthService {
	return &AuthService{
		jwtSecret: []byte(cfg.Secret),
		expiryH:   cfg.ExpiryHours,
		clients:   auth.Clients,
		check:     CheckSecret,
	}
}

// Enabled reports whether any client is configured. Without clients the
// protected routes are open.
func (s *AuthService) Enabled() bool {
	return len(s.clients) > 0
}

func (s *AuthService) ExpiresIn() time.Duration {
	return time.Duration(s.expiryH) * time.Hour
}

func HashSecret(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckSecret(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

type Claims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// unknownClientHash is compared against when the client id is not
// configured, so unknown and known ids cost one bcrypt comparison each.
var unknownClientHash = sync.OnceValue(func() string {
	hash, _ := HashSecret(uuid.NewString())
	return hash
})

// Authenticate checks the client secret and returns a signed token.
func (s *AuthService) Authenticate(clientID, secret string) (string, error) {
	hash, ok := s.clients[clientID]
	if !ok {
		s.check(unknownClientHash(), secret)
		return "", ErrInvalidCredentials
	}
	if !s.check(hash, secret) {
		return "", ErrInvalidCredentials
	}
	return s.GenerateToken(clientID)
}

func (s *AuthService) GenerateToken(clientID string) (string, error) {
	now := time.Now()
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   clientID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ExpiresIn())),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.jwtSecret, nil
		},
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
