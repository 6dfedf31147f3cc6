package request

import (
	"errors"
	"math"
)

var (
	ErrInvalidEstimateValue = errors.New("invalid estimate value")
	ErrMissingEstimateValue = errors.New("missing estimate value")
)

type PartsSupplyRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

type ServiceRequest struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// EstimateRequest prices an order either with an explicit pre-tax
// cost_estimate or with the services and parts quoted at the counter.
type EstimateRequest struct {
	CostEstimate  *float64             `json:"cost_estimate"`
	Services      []ServiceRequest     `json:"services"`
	PartsSupplies []PartsSupplyRequest `json:"parts_supplies"`
}

// ResolvePrice prefers cost_estimate over line items. Items with a
// non-positive price or quantity are ignored.
func (r EstimateRequest) ResolvePrice() (float64, error) {
	if r.CostEstimate != nil {
		v := *r.CostEstimate
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrInvalidEstimateValue
		}
		return v, nil
	}
	if len(r.Services) == 0 && len(r.PartsSupplies) == 0 {
		return 0, ErrMissingEstimateValue
	}

	totalFromItems := 0.0
	for _, s := range r.Services {
		if s.Price > 0 {
			totalFromItems += s.Price
		}
	}
	for _, p := range r.PartsSupplies {
		if p.Price > 0 && p.Quantity > 0 {
			totalFromItems += p.Price * float64(p.Quantity)
		}
	}
	if totalFromItems > 0 {
		return math.Round(totalFromItems*100) / 100, nil
	}

	return 0, ErrInvalidEstimateValue
}
