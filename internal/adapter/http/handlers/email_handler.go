package handlers

import (
	"errors"
	"net/http"

	request "tallerpro/internal/adapter/http/dto/request"
	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/usecase"
	"tallerpro/internal/usecase/interfaces"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
)

// EmailHandler relays staff-composed emails to the provider.
type EmailHandler struct {
	usecase usecase.IEmailUseCase
}

func NewEmailHandler(uc usecase.IEmailUseCase) *EmailHandler {
	return &EmailHandler{usecase: uc}
}

func (h *EmailHandler) SendEmail(c *gin.Context) {
	var payload request.SendEmailRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		appErr := mapEmailError(usecase.ErrInvalidEmail)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	id, err := h.usecase.Send(c.Request.Context(), interfaces.EmailMessage{
		To:      payload.To,
		Subject: payload.Subject,
		HTML:    payload.HTML,
	}, middleware.Actor(c))
	if err != nil {
		appErr := mapEmailError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.SendEmailResponse{OK: true, Data: response.EmailSentData{ID: id}})
}

func mapEmailError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidEmail):
		return pkg.NewDomainErrorSimple("INVALID_EMAIL", "Faltan campos requeridos: to, subject, html", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEmailNotConfigured):
		return pkg.NewDomainError("EMAIL_NOT_CONFIGURED", "El servicio de correo no está configurado", err, http.StatusInternalServerError).WithKind(pkg.KindUpstreamFailure)
	case errors.Is(err, usecase.ErrEmailDeliveryFailed):
		return pkg.NewDomainError("EMAIL_SEND_FAILED", "No se pudo enviar el correo", err, http.StatusInternalServerError).WithKind(pkg.KindUpstreamFailure)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
