package security

import (
	"errors"
	"fmt"
	"time"

	"opshub/internal/shared/apperrors"
	"opshub/internal/shared/config"

	"github.com/golang-jwt/jwt/v4"
)

type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

var (
	ErrSigningKeyTooShort = errors.New("token signing key must be at least 32 bytes")

	errMissingClaims = errors.New("token is missing required claims")
	errUnknownKind   = errors.New("token kind is not recognised")
	errWrongIssuer   = errors.New("token issuer mismatch")
)

// Subject is the identity a token is issued for.
type Subject struct {
	UserID  uint
	Email   string
	Name    string
	Role    string
	SiteIDs []uint
}

// Claims is the signed payload of both token kinds. Refresh tokens leave
// Name, Role and SiteIDs empty.
type Claims struct {
	UserID  uint      `json:"userId"`
	Email   string    `json:"email"`
	Name    string    `json:"name,omitempty"`
	Role    string    `json:"role,omitempty"`
	SiteIDs []uint    `json:"siteIds,omitempty"`
	Kind    TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// Valid satisfies jwt.Claims against the wall clock.
func (c *Claims) Valid() error {
	return c.validAt(time.Now())
}

func (c *Claims) validAt(now time.Time) error {
	if c.Subject == "" || c.UserID == 0 || c.ExpiresAt == nil {
		return errMissingClaims
	}
	if c.Kind != AccessToken && c.Kind != RefreshToken {
		return errUnknownKind
	}
	if !c.VerifyExpiresAt(now, true) {
		return jwt.ErrTokenExpired
	}
	if !c.VerifyIssuedAt(now, false) {
		return jwt.ErrTokenUsedBeforeIssued
	}
	return nil
}

// Principal is the authenticated caller derived from an access token.
func (c *Claims) Principal() *Principal {
	return &Principal{
		UserID:  c.UserID,
		Email:   c.Subject,
		Name:    c.Name,
		Role:    c.Role,
		SiteIDs: append([]uint(nil), c.SiteIDs...),
	}
}

// TokenService issues and validates HS256 session tokens. The key is fixed
// at construction.
type TokenService struct {
	key        []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	now        func() time.Time
	parser     *jwt.Parser
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(cfg config.JWTConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.Secret) < config.MinJWTSecretBytes {
		return nil, ErrSigningKeyTooShort
	}

	s := &TokenService{
		key:        []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		issuer:     cfg.Issuer,
		now:        time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *TokenService) IssueAccess(sub Subject) (string, error) {
	return s.sign(Claims{
		UserID:  sub.UserID,
		Email:   sub.Email,
		Name:    sub.Name,
		Role:    sub.Role,
		SiteIDs: sub.SiteIDs,
		Kind:    AccessToken,
	}, sub.Email, s.accessTTL)
}

func (s *TokenService) IssueRefresh(sub Subject) (string, error) {
	return s.sign(Claims{
		UserID: sub.UserID,
		Email:  sub.Email,
		Kind:   RefreshToken,
	}, sub.Email, s.refreshTTL)
}

func (s *TokenService) sign(claims Claims, subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", claims.Kind, err)
	}
	return signed, nil
}

// Parse verifies signature, structure, issuer and expiry. Every failure is
// reported as apperrors.KindTokenInvalid.
func (s *TokenService) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err == nil {
		err = claims.validAt(s.now())
	}
	if err == nil && claims.Issuer != s.issuer {
		err = errWrongIssuer
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTokenInvalid, "invalid token", err)
	}
	return claims, nil
}

func (s *TokenService) ValidateAccess(token string) bool {
	return s.validateKind(token, AccessToken)
}

func (s *TokenService) ValidateRefresh(token string) bool {
	return s.validateKind(token, RefreshToken)
}

func (s *TokenService) validateKind(token string, kind TokenKind) bool {
	claims, err := s.Parse(token)
	return err == nil && claims.Kind == kind
}

// IsExpired treats any token that cannot be parsed as expired.
func (s *TokenService) IsExpired(token string) bool {
	claims, err := s.Parse(token)
	if err != nil {
		return true
	}
	return !claims.ExpiresAt.Time.After(s.now())
}

func (s *TokenService) ExtractEmail(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *TokenService) ExtractUserID(token string) (uint, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *TokenService) ExtractName(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Name, nil
}

func (s *TokenService) ExtractRole(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Role, nil
}

func (s *TokenService) ExtractSiteIDs(token string) ([]uint, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return nil, err
	}
	return claims.SiteIDs, nil
}
