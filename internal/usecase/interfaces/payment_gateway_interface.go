package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts the external card/PIX payment provider (Mercado Pago).
//
// Checkouts paid by card or PIX are settled through it; commitment (empenho)
// checkouts never reach the gateway.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
