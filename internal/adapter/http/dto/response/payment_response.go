package response

import (
	"time"

	"eventos_inscricoes/internal/domain/entities"
)

type AttachmentResponse struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type PaymentResponse struct {
	Method            string              `json:"method"`
	Status            string              `json:"status"`
	Value             float64             `json:"value"`
	Commitment        *AttachmentResponse `json:"commitment,omitempty"`
	PaymentProof      *AttachmentResponse `json:"payment_proof,omitempty"`
	Invoice           *AttachmentResponse `json:"invoice,omitempty"`
	ProviderPaymentID string              `json:"provider_payment_id,omitempty"`
	ProviderStatus    string              `json:"provider_status,omitempty"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

func FromPayment(p *entities.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		Method:            string(p.Method),
		Status:            string(p.Status),
		Value:             p.Value,
		Commitment:        fromAttachment(p.Commitment),
		PaymentProof:      fromAttachment(p.PaymentProof),
		Invoice:           fromAttachment(p.Invoice),
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
		PaidAt:            p.PaidAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func fromAttachment(a *entities.Attachment) *AttachmentResponse {
	if a == nil {
		return nil
	}
	return &AttachmentResponse{
		FileName:    a.FileName,
		ContentType: a.ContentType,
		StoragePath: a.StoragePath,
		Size:        a.Size,
		UploadedAt:  a.UploadedAt,
	}
}
