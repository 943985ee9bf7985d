package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) ResolveToken(ctx context.Context, token string) (domain.Actor, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Actor), args.Error(1)
}

func setupAuthRouter(identity *MockIdentityProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(identity), func(c *gin.Context) {
		actor, ok := middleware.GetActorFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		ctxActor, _ := middleware.GetActorFromCtx(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"user": actor.UserID, "ctxUser": ctxActor.UserID})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	identity := new(MockIdentityProvider)
	identity.On("ResolveToken", mock.Anything, "good").
		Return(domain.Actor{UserID: "alice", Roles: []domain.Role{domain.RoleRequester}}, nil)
	identity.On("ResolveToken", mock.Anything, "expired").
		Return(domain.Actor{}, apperrors.NewUnauthorizedError("Token has expired"))

	r := setupAuthRouter(identity)

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"valid token", "Bearer good", http.StatusOK, `"ctxUser":"alice"`},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "Bearer {token}"},
		{"expired token", "Bearer expired", http.StatusUnauthorized, "Token has expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
