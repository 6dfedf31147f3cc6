package handlers

import (
	"errors"
	"net/http"

	request "tallerpro/internal/adapter/http/dto/request"
	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the PIN login screen and session checks.
type AuthHandler struct {
	usecase usecase.IAuthUseCase
}

func NewAuthHandler(uc usecase.IAuthUseCase) *AuthHandler {
	return &AuthHandler{usecase: uc}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := mapAuthError(usecase.ErrPINRequired)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	s, err := h.usecase.Login(c.Request.Context(), payload.PIN)
	if err != nil {
		appErr := mapAuthError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.LoginResponse{OK: true, User: sessionUser(s), Session: s})
}

// Session echoes the session validated by the middleware.
func (h *AuthHandler) Session(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		appErr := mapAuthError(usecase.ErrSessionInvalid)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.SessionResponse{OK: true, Session: s})
}

func sessionUser(s entities.Session) response.UserResponse {
	return response.UserResponse{
		ID:       s.UserID,
		FullName: s.Name,
		Name:     s.Name,
		Email:    s.Email,
		Role:     string(s.Role),
		Active:   true,
	}
}

func mapAuthError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrPINRequired):
		return pkg.NewDomainErrorSimple("PIN_REQUIRED", "PIN requerido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPINFormat):
		return pkg.NewDomainErrorSimple("INVALID_PIN_FORMAT", "El PIN debe tener 4 dígitos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "PIN inválido", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrSessionInvalid):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Sesión inválida o expirada", http.StatusUnauthorized)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
