package jwtauth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/identity/jwtauth"
	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

const secret = "test-secret-key-that-is-long-enough"

func TestIssueThenResolve(t *testing.T) {
	p := jwtauth.NewProvider(secret, "prt-test")

	token, err := p.Issue("fin-1", []domain.Role{domain.RoleFinance, domain.RoleAccounting}, time.Hour)
	require.NoError(t, err)

	actor, err := p.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "fin-1", actor.UserID)
	assert.Equal(t, []domain.Role{domain.RoleFinance, domain.RoleAccounting}, actor.Roles)
}

func TestResolveDropsUnknownRoles(t *testing.T) {
	claims := jwtauth.Claims{
		Roles: []string{"Requester", "Superuser"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "req-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	actor, err := jwtauth.NewProvider(secret, "").ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, []domain.Role{domain.RoleRequester}, actor.Roles)
}

func TestResolveRejects(t *testing.T) {
	p := jwtauth.NewProvider(secret, "prt-test")

	expired, err := p.Issue("req-1", nil, -time.Minute)
	require.NoError(t, err)
	otherIssuer, err := jwtauth.NewProvider(secret, "someone-else").Issue("req-1", nil, time.Hour)
	require.NoError(t, err)
	wrongKey, err := jwtauth.NewProvider("a-different-secret-of-decent-length", "prt-test").Issue("req-1", nil, time.Hour)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "req-1", Issuer: "prt-test"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		message string
	}{
		{"expired", expired, "Token has expired"},
		{"wrong issuer", otherIssuer, "Invalid token"},
		{"wrong key", wrongKey, "Invalid token"},
		{"unsigned", noneAlg, "Invalid token"},
		{"garbage", "not.a.token", "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ResolveToken(context.Background(), tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
		})
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	_, err := jwtauth.NewProvider(secret, "").Issue("", nil, time.Hour)
	assert.Error(t, err)
}
