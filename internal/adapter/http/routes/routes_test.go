package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tallerpro/internal/adapter/http/handlers/mocks"
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestNewRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockIAuthUseCase(ctrl)
	users := mocks.NewMockIUserUseCase(ctrl)
	orders := mocks.NewMockIOrderUseCase(ctrl)

	router := NewRouter(Dependencies{
		Orders:  orders,
		Ledger:  mocks.NewMockILedgerUseCase(ctrl),
		Auth:    auth,
		Users:   users,
		Email:   mocks.NewMockIEmailUseCase(ctrl),
		TaxRate: entities.DefaultTaxRate,
	}, zap.NewNop())

	do := func(method, path, token string) int {
		req := httptest.NewRequest(method, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	auth.EXPECT().ValidateSession(gomock.Any(), "tech").Return(entities.Session{ID: "s-1", Name: "Luis", Role: entities.RoleTechnician}, nil).AnyTimes()
	auth.EXPECT().ValidateSession(gomock.Any(), "stale").Return(entities.Session{}, usecase.ErrSessionInvalid).AnyTimes()
	orders.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	t.Run("public routes", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/ping", ""))
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/statuses", ""))
	})

	t.Run("session required", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/list-orders", ""))
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodGet, "/api/list-orders", "stale"))
		assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/api/send-email", ""))
		assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/list-orders", "tech"))
	})

	t.Run("user management needs a manager", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/api/create-user", "tech"))
		assert.Equal(t, http.StatusForbidden, do(http.MethodPatch, "/api/users/u-1/active", "tech"))
	})
}
