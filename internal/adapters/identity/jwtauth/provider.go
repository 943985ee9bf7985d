// Package jwtauth resolves HS256 bearer tokens into workflow actors.
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

// Claims are the registered claims plus the caller's roles.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Provider validates tokens signed with a shared secret.
type Provider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewProvider creates a Provider. An empty issuer accepts any issuer.
func NewProvider(secret, issuer string) *Provider {
	return &Provider{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Ensure Provider implements the portssvc.IdentityProvider interface
var _ portssvc.IdentityProvider = (*Provider)(nil)

// ResolveToken validates the signature and standard claims and maps the
// subject and roles onto an Actor. Unknown roles are dropped.
func (p *Provider) ResolveToken(_ context.Context, token string) (domain.Actor, error) {
	claims := &Claims{}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(p.now),
	}
	if p.issuer != "" {
		options = append(options, jwt.WithIssuer(p.issuer))
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Actor{}, apperrors.NewUnauthorizedError("Token has expired")
		}
		return domain.Actor{}, apperrors.New(apperrors.ErrUnauthorized, apperrors.CodeUnauthorized, "Invalid token", err)
	}
	if !parsed.Valid {
		return domain.Actor{}, apperrors.NewUnauthorizedError("Invalid token")
	}
	if claims.Subject == "" {
		return domain.Actor{}, apperrors.NewUnauthorizedError("Token has no subject")
	}

	actor := domain.Actor{UserID: claims.Subject}
	for _, raw := range claims.Roles {
		if role := domain.Role(raw); role.IsValid() {
			actor.Roles = append(actor.Roles, role)
		}
	}
	return actor, nil
}

// Issue signs a token for userID carrying roles, valid for ttl. It backs
// local tooling and tests; production tokens come from the identity provider.
func (p *Provider) Issue(userID string, roles []domain.Role, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	now := p.now()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	claims := Claims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
