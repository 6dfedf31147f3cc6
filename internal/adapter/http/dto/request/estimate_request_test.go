package request

import (
	"errors"
	"testing"
)

func TestEstimateRequest_ResolvePrice(t *testing.T) {
	r := EstimateRequest{
		Services: []ServiceRequest{{Price: 10}, {Price: 5}, {Price: -1}},
		PartsSupplies: []PartsSupplyRequest{
			{Price: 3, Quantity: 2},
			{Price: 4, Quantity: 0},
			{Price: -2, Quantity: 10},
		},
	}
	price, err := r.ResolvePrice()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 21 {
		t.Fatalf("expected 21, got %v", price)
	}

	r2 := EstimateRequest{}
	_, err = r2.ResolvePrice()
	if !errors.Is(err, ErrMissingEstimateValue) {
		t.Fatalf("expected ErrMissingEstimateValue, got %v", err)
	}

	r3 := EstimateRequest{Services: []ServiceRequest{{Price: 0}}}
	_, err = r3.ResolvePrice()
	if !errors.Is(err, ErrInvalidEstimateValue) {
		t.Fatalf("expected ErrInvalidEstimateValue, got %v", err)
	}
}

func TestEstimateRequest_ResolvePrice_ExplicitCost(t *testing.T) {
	cost := 85.0
	r := EstimateRequest{CostEstimate: &cost, Services: []ServiceRequest{{Price: 500}}}
	price, err := r.ResolvePrice()
	if err != nil || price != 85 {
		t.Fatalf("expected explicit 85, got %v (err %v)", price, err)
	}

	zero := 0.0
	if price, err := (EstimateRequest{CostEstimate: &zero}).ResolvePrice(); err != nil || price != 0 {
		t.Fatalf("expected 0 to be accepted, got %v (err %v)", price, err)
	}

	neg := -1.0
	if _, err := (EstimateRequest{CostEstimate: &neg}).ResolvePrice(); !errors.Is(err, ErrInvalidEstimateValue) {
		t.Fatalf("expected ErrInvalidEstimateValue, got %v", err)
	}
}

func TestCreateOrderRequest_ResolveCustomerAndInput(t *testing.T) {
	r := CreateOrderRequest{
		Customer:       CustomerRequest{Name: " Ana ", Email: "ana@example.com"},
		DeviceType:     "phone",
		InitialProblem: "Pantalla rota",
		EstimateRequest: EstimateRequest{
			Services: []ServiceRequest{{Price: 40}},
		},
	}
	in, err := r.ToInput("Luis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.CustomerName != "Ana" || in.CustomerEmail != "ana@example.com" || in.CostEstimate != 40 || in.Actor != "Luis" {
		t.Fatalf("unexpected input: %+v", in)
	}

	flat := CreateOrderRequest{CustomerName: "Beto", InitialProblem: "x", DeviceBrand: "HP"}
	in, err = flat.ToInput("")
	if err != nil || in.CustomerName != "Beto" || in.CostEstimate != 0 {
		t.Fatalf("unexpected flat input: %+v (err %v)", in, err)
	}
}
