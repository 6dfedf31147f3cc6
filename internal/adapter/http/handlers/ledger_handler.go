package handlers

import (
	"errors"
	"fmt"
	"net/http"

	request "tallerpro/internal/adapter/http/dto/request"
	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"
	"tallerpro/internal/usecase/interfaces"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LedgerHandler handles deposits and the per-order ledger views.
type LedgerHandler struct {
	usecase usecase.ILedgerUseCase
	taxRate float64
	log     *zap.Logger
}

func NewLedgerHandler(uc usecase.ILedgerUseCase, taxRate float64, log *zap.Logger) *LedgerHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerHandler{usecase: uc, taxRate: taxRate, log: log}
}

func (h *LedgerHandler) RecordDeposit(c *gin.Context) {
	orderID := c.Param("id")
	var payload request.DepositRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Info("[deposit][handler] invalid payload", zap.String("order_id", orderID), zap.Error(err))
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	res, err := h.usecase.RecordDeposit(c.Request.Context(), orderID, usecase.DepositInput{
		Amount:        payload.Amount,
		PaymentMethod: payload.PaymentMethod,
		Notes:         payload.Notes,
		Actor:         middleware.Actor(c),
		CardPayload:   payload.CardPayload,
	})
	if err != nil {
		appErr := mapLedgerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromDeposit(res, h.taxRate))
}

func (h *LedgerHandler) ListEvents(c *gin.Context) {
	events, err := h.usecase.ListEvents(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapLedgerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if events == nil {
		events = []entities.WorkOrderEvent{}
	}
	c.JSON(http.StatusOK, response.EventsResponse{OK: true, Events: events})
}

func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	txs, err := h.usecase.ListTransactions(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapLedgerError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromTransactions(txs))
}

func mapLedgerError(err error) *pkg.AppError {
	var unrecorded *usecase.UnrecordedChargeError
	if errors.As(err, &unrecorded) {
		msg := fmt.Sprintf("El cobro con tarjeta fue aprobado (referencia %s) pero el depósito no se registró. No repita el cobro; contacte a un administrador.", unrecorded.ProviderPaymentID)
		return pkg.NewDomainError("CHARGE_NOT_RECORDED", msg, err, http.StatusInternalServerError)
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidAmount):
		return pkg.NewDomainErrorSimple("INVALID_AMOUNT", "El monto debe ser mayor que cero", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return pkg.NewDomainErrorSimple("INVALID_PAYMENT_METHOD", "Método de pago inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCardPayload):
		return pkg.NewDomainErrorSimple("INVALID_CARD_PAYLOAD", "Datos de tarjeta inválidos", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "El pago fue rechazado", http.StatusPaymentRequired).WithKind(pkg.KindUpstreamFailure)
	case errors.Is(err, usecase.ErrPaymentGatewayFailed):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "No se pudo procesar el pago con tarjeta", err, http.StatusBadGateway)
	case errors.Is(err, interfaces.ErrDuplicate):
		return pkg.NewDomainError("RECEIPT_NUMBER_TAKEN", "No se pudo asignar un número de recibo, intente de nuevo", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured), errors.Is(err, usecase.ErrLedgerRepositoryNotAvailable):
		return pkg.NewDomainError("SERVICE_UNAVAILABLE", "Servicio de pagos no disponible", err, http.StatusServiceUnavailable)
	default:
		return mapOrderError(err)
	}
}
