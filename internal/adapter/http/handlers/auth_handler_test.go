package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"tallerpro/internal/adapter/http/handlers/mocks"
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(t *testing.T) (*gin.Engine, *mocks.MockIAuthUseCase) {
		ctrl := gomock.NewController(t)
		uc := mocks.NewMockIAuthUseCase(ctrl)
		h := NewAuthHandler(uc)
		r := gin.New()
		r.POST("/api/login", h.Login)
		return r, uc
	}

	t.Run("empty pin", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Login(gomock.Any(), "").Return(entities.Session{}, usecase.ErrPINRequired)

		w := doJSON(r, http.MethodPost, "/api/login", `{}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "PIN requerido")
	})

	t.Run("malformed body", func(t *testing.T) {
		r, _ := newRouter(t)
		w := doJSON(r, http.MethodPost, "/api/login", `{`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "PIN requerido")
	})

	t.Run("wrong pin", func(t *testing.T) {
		r, uc := newRouter(t)
		uc.EXPECT().Login(gomock.Any(), "0000").Return(entities.Session{}, usecase.ErrInvalidCredentials)

		w := doJSON(r, http.MethodPost, "/api/login", `{"pin":"0000"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := newRouter(t)
		login := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
		uc.EXPECT().Login(gomock.Any(), "1234").Return(entities.Session{
			ID: "s-1", UserID: "u-1", Name: "Luis", Email: "luis@taller.pr", Role: entities.RoleTechnician,
			LoginTime: login, ExpiresAt: login.Add(12 * time.Hour), Token: "jwt",
		}, nil)

		w := doJSON(r, http.MethodPost, "/api/login", `{"pin":"1234"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			OK   bool `json:"ok"`
			User struct {
				ID   string `json:"id"`
				Name string `json:"name"`
				Role string `json:"role"`
			} `json:"user"`
			Session struct {
				Token     string    `json:"token"`
				LoginTime time.Time `json:"loginTime"`
			} `json:"session"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.OK)
		assert.Equal(t, "u-1", body.User.ID)
		assert.Equal(t, "Luis", body.User.Name)
		assert.Equal(t, "technician", body.User.Role)
		assert.Equal(t, "jwt", body.Session.Token)
		assert.True(t, body.Session.LoginTime.Equal(login))
	})
}

func TestAuthHandler_Session(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(nil)

	r := gin.New()
	r.GET("/anon", h.Session)
	r.GET("/api/session", withSession("Luis", entities.RoleTechnician), h.Session)

	w := doJSON(r, http.MethodGet, "/anon", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/session", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Luis"`)
}
