package response

import (
	"tallerpro/internal/domain/entities"
	"tallerpro/internal/usecase"
)

type DepositResponse struct {
	OK            bool          `json:"ok"`
	BalanceDue    float64       `json:"balance_due"`
	ReceiptNumber string        `json:"receipt_number"`
	TransactionID string        `json:"transaction_id"`
	SaleID        string        `json:"sale_id"`
	EmailSent     bool          `json:"email_sent"`
	Order         OrderResponse `json:"order"`
}

func FromDeposit(r usecase.DepositResult, taxRate float64) DepositResponse {
	return DepositResponse{
		OK:            true,
		BalanceDue:    r.BalanceDue,
		ReceiptNumber: r.ReceiptNumber,
		TransactionID: r.TransactionID,
		SaleID:        r.SaleID,
		EmailSent:     r.EmailSent,
		Order:         FromOrder(r.Order, taxRate),
	}
}

type EventsResponse struct {
	OK     bool                      `json:"ok"`
	Events []entities.WorkOrderEvent `json:"events"`
}

type TransactionsResponse struct {
	OK           bool                   `json:"ok"`
	Transactions []entities.Transaction `json:"transactions"`
	TotalPaid    float64                `json:"total_paid"`
}

func FromTransactions(txs []entities.Transaction) TransactionsResponse {
	if txs == nil {
		txs = []entities.Transaction{}
	}
	total := 0.0
	for _, tx := range txs {
		total += tx.Amount
	}
	return TransactionsResponse{OK: true, Transactions: txs, TotalPaid: entities.RoundCents(total)}
}
