package entities

import (
	"math"
	"time"
)

// DefaultTaxRate is the sales tax applied on top of the pre-tax estimate (11.5%).
const DefaultTaxRate = 0.115

// StatusHistoryEntry is one append-only step of an order's status trail.
type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ChangedBy string    `json:"changed_by,omitempty"`
}

// Order is a repair work order tracked from intake to pickup.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Financial fields:
//   - CostEstimate is pre-tax.
//   - AmountPaid and DepositAmount are cumulative.
//   - BalanceDue is always derived from CostEstimate and AmountPaid, never
//     decremented on its own.
//
// Version increases by one on every write and backs the optimistic check used
// by status transitions and deposits.
type Order struct {
	ID            string               `json:"id"`
	OrderNumber   string               `json:"order_number"`
	Status        string               `json:"status"`
	StatusHistory []StatusHistoryEntry `json:"status_history"`

	CostEstimate  float64 `json:"cost_estimate"`
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

// TotalWithTax returns the tax-inclusive total owed for the order.
func (o Order) TotalWithTax(taxRate float64) float64 {
	return RoundCents(o.CostEstimate * (1 + taxRate))
}

// ComputeBalanceDue returns max(0, total_with_tax - amount_paid).
func ComputeBalanceDue(costEstimate, amountPaid, taxRate float64) float64 {
	due := RoundCents(costEstimate*(1+taxRate)) - amountPaid
	if due < 0 {
		return 0
	}
	return RoundCents(due)
}

// RoundCents rounds a monetary amount to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
