package entities

import "time"

// PaymentMethod is the billing method chosen at purchase time.
type PaymentMethod string

const (
	// PaymentMethodCommitment is the public-sector "empenho" flow:
	// commitment receipt -> payment proof -> paid.
	PaymentMethodCommitment PaymentMethod = "empenho"
	PaymentMethodPix        PaymentMethod = "pix"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodBoleto     PaymentMethod = "boleto"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCommitment, PaymentMethodPix, PaymentMethodCreditCard, PaymentMethodBoleto:
		return true
	}
	return false
}

// PaymentStatus is the state of the payment embedded in a checkout.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCommitted PaymentStatus = "committed"
	PaymentStatusPaid      PaymentStatus = "paid"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCommitted, PaymentStatusPaid:
		return true
	}
	return false
}

// CanTransitionTo encodes the commitment flow: pending -> committed -> paid,
// with committed -> pending as the only step back. Nothing leaves paid.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusCommitted
	case PaymentStatusCommitted:
		return next == PaymentStatusPaid || next == PaymentStatusPending
	}
	return false
}

// AttachmentSlot names one of the three documents a commitment payment carries.
type AttachmentSlot string

const (
	AttachmentSlotCommitment AttachmentSlot = "commitment"
	AttachmentSlotPayment    AttachmentSlot = "payment"
	AttachmentSlotInvoice    AttachmentSlot = "invoice"
)

func (s AttachmentSlot) Valid() bool {
	switch s {
	case AttachmentSlotCommitment, AttachmentSlotPayment, AttachmentSlotInvoice:
		return true
	}
	return false
}

// StoragePath is the deterministic object key for a checkout attachment.
func (s AttachmentSlot) StoragePath(checkoutID string) string {
	return "checkouts/" + checkoutID + "/" + string(s)
}

type Attachment struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	StoragePath string    `json:"storage_path"`
	Size        int64     `json:"size,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Payment is embedded in its checkout and shares its lifecycle.
type Payment struct {
	Method            PaymentMethod `json:"method"`
	Status            PaymentStatus `json:"status"`
	Value             float64       `json:"value"`
	Commitment        *Attachment   `json:"commitment,omitempty"`
	PaymentProof      *Attachment   `json:"payment_proof,omitempty"`
	Invoice           *Attachment   `json:"invoice,omitempty"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	ProviderStatus    string        `json:"provider_status,omitempty"`
	PaidAt            *time.Time    `json:"paid_at,omitempty"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

func (p *Payment) Attachment(slot AttachmentSlot) *Attachment {
	if p == nil {
		return nil
	}
	switch slot {
	case AttachmentSlotCommitment:
		return p.Commitment
	case AttachmentSlotPayment:
		return p.PaymentProof
	case AttachmentSlotInvoice:
		return p.Invoice
	}
	return nil
}

func (p *Payment) SetAttachment(slot AttachmentSlot, a *Attachment) {
	switch slot {
	case AttachmentSlotCommitment:
		p.Commitment = a
	case AttachmentSlotPayment:
		p.PaymentProof = a
	case AttachmentSlotInvoice:
		p.Invoice = a
	}
}

// CanUpload applies the per-slot upload guard against the current payment status.
func (s AttachmentSlot) CanUpload(status PaymentStatus) bool {
	switch s {
	case AttachmentSlotCommitment:
		return status == PaymentStatusPending
	case AttachmentSlotPayment:
		return status != PaymentStatusPaid
	case AttachmentSlotInvoice:
		return status == PaymentStatusPaid
	}
	return false
}

// CanDelete applies the per-slot delete guard. Invoices are never deleted.
func (s AttachmentSlot) CanDelete(status PaymentStatus) bool {
	switch s {
	case AttachmentSlotCommitment:
		return status == PaymentStatusPending
	case AttachmentSlotPayment:
		return status != PaymentStatusPaid
	}
	return false
}
