package handlers

import (
	"errors"
	"net/http"

	request "tallerpro/internal/adapter/http/dto/request"
	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/usecase"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidUserPayload = pkg.NewDomainErrorSimple("INVALID_USER_INPUT", "Datos del usuario inválidos", http.StatusBadRequest)

type UserHandler struct {
	usecase usecase.IUserUseCase
}

func NewUserHandler(uc usecase.IUserUseCase) *UserHandler {
	return &UserHandler{usecase: uc}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var payload request.CreateUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	u, err := h.usecase.CreateUser(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.UserEnvelope{OK: true, User: response.FromUser(u)})
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromUsers(users))
}

func (h *UserHandler) SetActive(c *gin.Context) {
	var payload request.SetUserActiveRequest
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Active == nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	u, err := h.usecase.SetActive(c.Request.Context(), c.Param("id"), *payload.Active)
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.UserEnvelope{OK: true, User: response.FromUser(u)})
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidUserInput), errors.Is(err, usecase.ErrInvalidUserID):
		return pkg.NewDomainErrorSimple("INVALID_USER_INPUT", "Datos del usuario inválidos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_ROLE", "Rol inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPINRequired), errors.Is(err, usecase.ErrInvalidPINFormat):
		return mapAuthError(err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return pkg.NewDomainErrorSimple("USER_ALREADY_EXISTS", "Ya existe un usuario con ese correo o código", http.StatusConflict)
	case errors.Is(err, usecase.ErrPINInUse):
		return pkg.NewDomainErrorSimple("PIN_IN_USE", "El PIN ya está asignado a otro usuario activo", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
