package request

import "encoding/json"

// DepositRequest is the payload of POST /api/orders/:id/deposits.
//
// `card_payload` is forwarded as-is to Mercado Pago when the method is card;
// without it a card deposit is recorded as charged on an external terminal.
type DepositRequest struct {
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	CardPayload   json.RawMessage `json:"card_payload"`
}
