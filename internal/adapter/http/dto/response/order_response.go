package response

import (
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/domain/status"
)

type StatusHistoryResponse struct {
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	Timestamp   time.Time `json:"timestamp"`
	ChangedBy   string    `json:"changed_by,omitempty"`
}

type OrderResponse struct {
	ID            string                  `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	Status        string                  `json:"status"`
	StatusLabel   string                  `json:"status_label"`
	StatusColor   string                  `json:"status_color"`
	StatusHistory []StatusHistoryResponse `json:"status_history"`

	CostEstimate  float64 `json:"cost_estimate"`
	TotalWithTax  float64 `json:"total_with_tax"`
	AmountPaid    float64 `json:"amount_paid"`
	DepositAmount float64 `json:"deposit_amount"`
	BalanceDue    float64 `json:"balance_due"`

	CustomerID    string `json:"customer_id,omitempty"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CompanyID     string `json:"company_id,omitempty"`

	DeviceType     string `json:"device_type,omitempty"`
	DeviceBrand    string `json:"device_brand,omitempty"`
	DeviceModel    string `json:"device_model,omitempty"`
	DeviceSerial   string `json:"device_serial,omitempty"`
	InitialProblem string `json:"initial_problem"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// FromOrder renders an order for the UI. Stored statuses are normalized, so
// legacy values still get a label and color.
func FromOrder(o entities.Order, taxRate float64) OrderResponse {
	cfg := status.Config(o.Status)
	history := make([]StatusHistoryResponse, 0, len(o.StatusHistory))
	for _, h := range o.StatusHistory {
		history = append(history, StatusHistoryResponse{
			Status:      h.Status,
			StatusLabel: status.Config(h.Status).Label,
			Timestamp:   h.Timestamp,
			ChangedBy:   h.ChangedBy,
		})
	}
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Status:         string(cfg.ID),
		StatusLabel:    cfg.Label,
		StatusColor:    cfg.ColorClasses,
		StatusHistory:  history,
		CostEstimate:   o.CostEstimate,
		TotalWithTax:   o.TotalWithTax(taxRate),
		AmountPaid:     o.AmountPaid,
		DepositAmount:  o.DepositAmount,
		BalanceDue:     o.BalanceDue,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		CustomerEmail:  o.CustomerEmail,
		CustomerPhone:  o.CustomerPhone,
		CompanyID:      o.CompanyID,
		DeviceType:     o.DeviceType,
		DeviceBrand:    o.DeviceBrand,
		DeviceModel:    o.DeviceModel,
		DeviceSerial:   o.DeviceSerial,
		InitialProblem: o.InitialProblem,
		CreatedBy:      o.CreatedBy,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Version:        o.Version,
	}
}

type OrderEnvelope struct {
	OK    bool          `json:"ok"`
	Order OrderResponse `json:"order"`
}

type OrderListResponse struct {
	OK     bool            `json:"ok"`
	Orders []OrderResponse `json:"orders"`
	Count  int             `json:"count"`
}

func FromOrders(orders []entities.Order, taxRate float64) OrderListResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o, taxRate))
	}
	return OrderListResponse{OK: true, Orders: out, Count: len(out)}
}
