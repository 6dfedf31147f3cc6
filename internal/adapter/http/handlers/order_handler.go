package handlers

import (
	"errors"
	"net/http"
	"strconv"

	request "tallerpro/internal/adapter/http/dto/request"
	response "tallerpro/internal/adapter/http/dto/response"
	"tallerpro/internal/adapter/http/middleware"
	"tallerpro/internal/usecase"
	"tallerpro/internal/usecase/interfaces"
	"tallerpro/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidOrderPayload    = pkg.NewDomainErrorSimple("INVALID_ORDER_INPUT", "Datos de la orden inválidos", http.StatusBadRequest)
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Estimado inválido", http.StatusBadRequest)
)

// OrderHandler handles the work-order endpoints: intake, listing, status
// changes and re-pricing.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
	taxRate float64
}

func NewOrderHandler(uc usecase.IOrderUseCase, taxRate float64) *OrderHandler {
	return &OrderHandler{usecase: uc, taxRate: taxRate}
}

// CreateOrder handles the intake wizard submission.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput(middleware.Actor(c))
	if err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	order, err := h.usecase.CreateOrder(c.Request.Context(), in)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.OrderEnvelope{OK: true, Order: response.FromOrder(order, h.taxRate)})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := interfaces.OrderFilter{
		Status:     c.Query("status"),
		CompanyID:  c.Query("company_id"),
		CustomerID: c.Query("customer_id"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Parámetro limit inválido", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		filter.Limit = limit
	}

	orders, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromOrders(orders, h.taxRate))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{OK: true, Order: response.FromOrder(order, h.taxRate)})
}

// UpdateOrderStatus moves an order to another status. Legacy aliases
// ("ready", "completed", ...) are accepted and stored canonically.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var payload request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidOrderPayload.HTTPStatus, errInvalidOrderPayload.ToHTTPError())
		return
	}

	order, err := h.usecase.Transition(c.Request.Context(), payload.ResolveOrderID(), payload.Status, middleware.Actor(c))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{OK: true, Order: response.FromOrder(order, h.taxRate)})
}

func (h *OrderHandler) UpdateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	price, err := payload.ResolvePrice()
	if err != nil {
		c.JSON(errInvalidEstimatePayload.HTTPStatus, errInvalidEstimatePayload.ToHTTPError())
		return
	}

	order, err := h.usecase.UpdateCostEstimate(c.Request.Context(), c.Param("id"), price, middleware.Actor(c))
	if err != nil {
		appErr := mapOrderError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.OrderEnvelope{OK: true, Order: response.FromOrder(order, h.taxRate)})
}

func mapOrderError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidOrderID), errors.Is(err, usecase.ErrInvalidOrderInput):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Solicitud inválida", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidCostEstimate):
		return pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Estimado inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Estado inválido", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Orden no encontrada", http.StatusNotFound)
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "La orden fue modificada por otro usuario; intente de nuevo", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Ocurrió un error interno", err, http.StatusInternalServerError)
	}
}
