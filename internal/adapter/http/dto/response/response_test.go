package response

import (
	"testing"
	"time"

	"tallerpro/internal/domain/entities"
	"tallerpro/internal/domain/status"
	"tallerpro/internal/usecase"
)

func TestFromOrder(t *testing.T) {
	now := time.Now().UTC()
	o := entities.Order{
		ID:           "ord-1",
		OrderNumber:  "WO-20240310-ABC123",
		Status:       "ready",
		CostEstimate: 100,
		AmountPaid:   50,
		BalanceDue:   61.5,
		StatusHistory: []entities.StatusHistoryEntry{
			{Status: "in_progress", Timestamp: now, ChangedBy: "Luis"},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   3,
	}

	res := FromOrder(o, entities.DefaultTaxRate)
	if res.Status != "ready_for_pickup" || res.StatusLabel != "Listo para recoger" || res.StatusColor == "" {
		t.Fatalf("unexpected status fields: %+v", res)
	}
	if res.TotalWithTax != 111.5 || res.BalanceDue != 61.5 || res.Version != 3 {
		t.Fatalf("unexpected money fields: %+v", res)
	}
	if len(res.StatusHistory) != 1 || res.StatusHistory[0].StatusLabel != "En reparación" {
		t.Fatalf("unexpected history: %+v", res.StatusHistory)
	}
}

func TestFromOrders_EmptyIsNotNull(t *testing.T) {
	res := FromOrders(nil, entities.DefaultTaxRate)
	if res.Orders == nil || res.Count != 0 || !res.OK {
		t.Fatalf("unexpected empty list: %+v", res)
	}
}

func TestFromDepositAndTransactions(t *testing.T) {
	res := FromDeposit(usecase.DepositResult{
		Order:         entities.Order{ID: "ord-1", CostEstimate: 100, AmountPaid: 50, BalanceDue: 61.5},
		BalanceDue:    61.5,
		ReceiptNumber: "REC-1",
		EmailSent:     true,
	}, entities.DefaultTaxRate)
	if !res.OK || res.ReceiptNumber != "REC-1" || res.Order.ID != "ord-1" || !res.EmailSent {
		t.Fatalf("unexpected deposit response: %+v", res)
	}

	txs := FromTransactions([]entities.Transaction{{Amount: 50}, {Amount: 61.5}})
	if txs.TotalPaid != 111.5 {
		t.Fatalf("expected 111.5, got %v", txs.TotalPaid)
	}
	if empty := FromTransactions(nil); empty.Transactions == nil {
		t.Fatalf("expected empty slice")
	}
}

func TestFromUser(t *testing.T) {
	res := FromUser(entities.User{ID: "u-1", FullName: "Marta Cruz", Role: entities.RoleAdmin, PINHash: "secret", Active: true})
	if res.Name != "Marta Cruz" || res.FullName != "Marta Cruz" || res.Role != "admin" {
		t.Fatalf("unexpected user response: %+v", res)
	}
}

func TestFromRegistry(t *testing.T) {
	res := FromRegistry(status.Default())
	if res.Default != "intake" || len(res.Statuses) != 8 {
		t.Fatalf("unexpected registry response: default=%s count=%d", res.Default, len(res.Statuses))
	}
}
