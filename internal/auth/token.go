package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by an access token. TenantID is present only when the
// subject account belongs to a tenant.
type Claims struct {
	TenantID *uint `json:"tenant_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens. The signing key and
// TTL are process-wide and read-only after startup; tokens are stateless and
// expire by time only.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a token for the subject email with the configured TTL.
func (s *TokenService) Issue(subject string, tenantID *uint) (string, error) {
	now := time.Now()
	claims := Claims{
		TenantID: tenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Subject parses and verifies the token in one step and returns the subject
// email. Any failure - bad signature, malformed structure, expired - yields
// ok=false; callers never learn the sub-reason.
func (s *TokenService) Subject(token string) (string, bool) {
	claims, err := s.parse(token)
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// TenantID extracts the tenant binding from a valid token. ok=false when the
// token is invalid or carries no tenant claim (legacy tokens).
func (s *TokenService) TenantID(token string) (uint, bool) {
	claims, err := s.parse(token)
	if err != nil || claims.TenantID == nil {
		return 0, false
	}
	return *claims.TenantID, true
}

func (s *TokenService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}
