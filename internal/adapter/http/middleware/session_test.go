package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tallerpro/internal/adapter/http/handlers/mocks"
	"tallerpro/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestRouter(auth *mocks.MockIAuthUseCase, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireSession(auth, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": Actor(c)})
	})
	r.GET("/private", handlers...)
	return r
}

func TestRequireSession(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newTestRouter(mocks.NewMockIAuthUseCase(ctrl))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r := newTestRouter(mocks.NewMockIAuthUseCase(ctrl))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Basic abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().ValidateSession(gomock.Any(), "tok").Return(entities.Session{}, errors.New("expired"))
		r := newTestRouter(auth)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"ok":false`)
	})

	t.Run("valid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().ValidateSession(gomock.Any(), "tok").Return(entities.Session{UserID: "u-1", Name: "Luis", Role: entities.RoleTechnician}, nil)
		r := newTestRouter(auth)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "bearer tok")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"actor":"Luis"}`, w.Body.String())
	})
}

func TestRequireUserManager(t *testing.T) {
	cases := []struct {
		role entities.Role
		want int
	}{
		{entities.RoleAdmin, http.StatusOK},
		{entities.RoleManager, http.StatusOK},
		{entities.RoleTechnician, http.StatusForbidden},
		{entities.RoleCashier, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			auth := mocks.NewMockIAuthUseCase(ctrl)
			auth.EXPECT().ValidateSession(gomock.Any(), "tok").Return(entities.Session{UserID: "u-1", Role: tc.role}, nil)
			r := newTestRouter(auth, RequireUserManager())

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			req.Header.Set("Authorization", "Bearer tok")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
