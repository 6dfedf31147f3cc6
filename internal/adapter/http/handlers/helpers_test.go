package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

func withSession(name string, role entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetSession(c, entities.Session{ID: "s-1", UserID: "u-1", Name: name, Role: role})
		c.Next()
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
