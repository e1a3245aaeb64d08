package request

import (
	"encoding/json"
	"strings"

	"eventos_inscricoes/internal/domain/entities"
)

// SettlePaymentRequest is the payload of the gateway settlement route.
//
// `mp_payload` is forwarded as raw JSON to support varying Mercado Pago schemas;
// a bare Mercado Pago body is accepted as well.
type SettlePaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}

type UpdateCommitmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateCommitmentStatusRequest) ResolveStatus() entities.PaymentStatus {
	return entities.PaymentStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}
