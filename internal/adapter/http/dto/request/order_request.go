package request

import (
	"errors"
	"strings"

	"tallerpro/internal/usecase"
)

// CustomerRequest is the customer block sent by the intake wizard.
type CustomerRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateOrderRequest accepts the customer either nested under "customer" or
// as flat customer_* fields.
type CreateOrderRequest struct {
	Customer      CustomerRequest `json:"customer"`
	CustomerID    string          `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	CompanyID     string          `json:"company_id"`

	DeviceType     string `json:"device_type"`
	DeviceBrand    string `json:"device_brand"`
	DeviceModel    string `json:"device_model"`
	DeviceSerial   string `json:"device_serial"`
	InitialProblem string `json:"initial_problem"`
	Status         string `json:"status"`

	EstimateRequest
}

// ToInput builds the use case input. An order without any estimate starts at 0.
func (r CreateOrderRequest) ToInput(actor string) (usecase.CreateOrderInput, error) {
	cost, err := r.ResolvePrice()
	if err != nil && !errors.Is(err, ErrMissingEstimateValue) {
		return usecase.CreateOrderInput{}, err
	}
	return usecase.CreateOrderInput{
		CustomerID:     firstNonBlank(r.Customer.ID, r.CustomerID),
		CustomerName:   firstNonBlank(r.Customer.Name, r.CustomerName),
		CustomerEmail:  firstNonBlank(r.Customer.Email, r.CustomerEmail),
		CustomerPhone:  firstNonBlank(r.Customer.Phone, r.CustomerPhone),
		CompanyID:      strings.TrimSpace(r.CompanyID),
		DeviceType:     r.DeviceType,
		DeviceBrand:    r.DeviceBrand,
		DeviceModel:    r.DeviceModel,
		DeviceSerial:   r.DeviceSerial,
		InitialProblem: r.InitialProblem,
		CostEstimate:   cost,
		Status:         r.Status,
		Actor:          actor,
	}, nil
}

// UpdateOrderStatusRequest is the body of POST /api/update-order-status.
type UpdateOrderStatusRequest struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

func (r UpdateOrderStatusRequest) ResolveOrderID() string {
	return firstNonBlank(r.ID, r.OrderID)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
