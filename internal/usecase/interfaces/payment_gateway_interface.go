package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the card processor (Mercado Pago).
//
// Card deposits that carry a processor payload are charged through it before
// anything is written to the ledger; the provider payment id ends up as the
// Transaction reference.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
