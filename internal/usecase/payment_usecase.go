package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase/interfaces"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidAttachmentSlot          = errors.New("invalid attachment slot")
	ErrAttachmentRequired             = errors.New("file is required")
	ErrAttachmentNotFound             = errors.New("attachment not found")
	ErrAttachmentLocked               = errors.New("attachment can no longer be changed at this payment status")
	ErrInvoiceNotDeletable            = errors.New("invoice cannot be deleted")
	ErrNotCommitmentCheckout          = errors.New("checkout is not paid by commitment")
	ErrInvalidPaymentStatus           = errors.New("invalid payment status")
	ErrPaymentStatusTransition        = errors.New("payment status transition not allowed")
	ErrCommitmentNotSettleable        = errors.New("commitment checkouts are settled through attachments")
	ErrCheckoutNotPending             = errors.New("checkout is not awaiting payment")
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentNotApproved             = errors.New("payment was not approved")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// AttachmentUpload is a file received for one of the payment slots.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// PaymentOptions tunes the gateway settlement flow.
type PaymentOptions struct {
	// GatewayMock relaxes payload validation; the gateway answers "approved".
	GatewayMock bool
	// Sandbox is set when the gateway access token is a test token.
	Sandbox            bool
	SandboxPayerEmail  string
	SandboxPayerUserID string
}

// IPaymentUseCase covers the payment embedded in a checkout.
//
//   - PUT    /checkouts/{id}/payment/{slot}    => UploadAttachment()
//   - DELETE /checkouts/{id}/payment/{slot}    => DeleteAttachment()
//   - PUT    /checkouts/{id}/commitment/status => UpdateCommitmentStatus() (admin)
//   - POST   /checkouts/{id}/payment           => SettleWithGateway()

type IPaymentUseCase interface {
	UploadAttachment(ctx context.Context, p entities.Principal, checkoutID string, slot entities.AttachmentSlot, file AttachmentUpload) (entities.Checkout, error)
	DeleteAttachment(ctx context.Context, p entities.Principal, checkoutID string, slot entities.AttachmentSlot) error
	UpdateCommitmentStatus(ctx context.Context, p entities.Principal, checkoutID string, status entities.PaymentStatus) (entities.Checkout, error)
	SettleWithGateway(ctx context.Context, p entities.Principal, checkoutID string, mpPayload json.RawMessage) (entities.Checkout, error)
}

type PaymentUseCase struct {
	checkouts interfaces.ICheckoutRepository
	events    interfaces.IEventRepository
	storage   interfaces.IAttachmentStorage
	gateway   interfaces.IPaymentGateway
	lifecycle *checkoutLifecycle
	opts      PaymentOptions
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	checkouts interfaces.ICheckoutRepository,
	registrations interfaces.IRegistrationRepository,
	vouchers interfaces.IVoucherRepository,
	events interfaces.IEventRepository,
	storage interfaces.IAttachmentStorage,
	gateway interfaces.IPaymentGateway,
	publisher interfaces.IEventPublisher,
	opts PaymentOptions,
) *PaymentUseCase {
	return &PaymentUseCase{
		checkouts: checkouts,
		events:    events,
		storage:   storage,
		gateway:   gateway,
		opts:      opts,
		lifecycle: &checkoutLifecycle{
			checkouts:     checkouts,
			registrations: registrations,
			vouchers:      vouchers,
			publisher:     publisher,
		},
	}
}

func (u *PaymentUseCase) UploadAttachment(ctx context.Context, p entities.Principal, checkoutID string, slot entities.AttachmentSlot, file AttachmentUpload) (entities.Checkout, error) {
	if !slot.Valid() {
		return entities.Checkout{}, ErrInvalidAttachmentSlot
	}
	if file.Body == nil || file.Size <= 0 {
		return entities.Checkout{}, ErrAttachmentRequired
	}
	c, payment, err := u.loadForAttachment(ctx, p, checkoutID, slot)
	if err != nil {
		return entities.Checkout{}, err
	}
	logger := log.WithFields(log.Fields{"checkout_id": c.ID, "slot": slot, "payment_status": payment.Status})

	if !slot.CanUpload(payment.Status) {
		logger.Info("[payment][usecase] upload rejected by state guard")
		return entities.Checkout{}, ErrAttachmentLocked
	}

	value, err := u.paymentValue(ctx, c)
	if err != nil {
		return entities.Checkout{}, err
	}

	path := slot.StoragePath(c.ID)
	contentType := strings.TrimSpace(file.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	metadata := map[string]string{
		"checkout_id": c.ID,
		"slot":        string(slot),
		"uploaded_by": p.ID,
		"file_name":   file.FileName,
	}
	if err := u.storage.Save(ctx, path, file.Body, file.Size, contentType, metadata); err != nil {
		logger.WithError(err).Error("[payment][usecase] attachment store failed")
		return entities.Checkout{}, err
	}

	hadPrevious := payment.Attachment(slot) != nil
	now := time.Now().UTC()
	payment.SetAttachment(slot, &entities.Attachment{
		FileName:    file.FileName,
		ContentType: contentType,
		StoragePath: path,
		Size:        file.Size,
		UploadedAt:  now,
	})
	payment.Value = value
	payment.UpdatedAt = now

	updated, err := u.checkouts.UpdatePayment(ctx, c.ID, payment)
	if err == nil && updated.ID == "" {
		err = ErrCheckoutNotFound
	}
	if err != nil {
		logger.WithError(err).Error("[payment][usecase] attachment metadata write failed")
		// A replaced object still backs the previous metadata; only a new one is orphaned.
		if !hadPrevious {
			if delErr := u.storage.Delete(ctx, path); delErr != nil {
				logger.WithError(delErr).Warn("[payment][usecase] orphaned attachment left in storage")
			}
		}
		return entities.Checkout{}, err
	}

	logger.WithField("size", file.Size).Info("[payment][usecase] attachment uploaded")
	return updated, nil
}

func (u *PaymentUseCase) DeleteAttachment(ctx context.Context, p entities.Principal, checkoutID string, slot entities.AttachmentSlot) error {
	if !slot.Valid() {
		return ErrInvalidAttachmentSlot
	}
	if slot == entities.AttachmentSlotInvoice {
		return ErrInvoiceNotDeletable
	}
	c, payment, err := u.loadForAttachment(ctx, p, checkoutID, slot)
	if err != nil {
		return err
	}
	logger := log.WithFields(log.Fields{"checkout_id": c.ID, "slot": slot, "payment_status": payment.Status})

	if !slot.CanDelete(payment.Status) {
		logger.Info("[payment][usecase] delete rejected by state guard")
		return ErrAttachmentLocked
	}
	current := payment.Attachment(slot)
	if current == nil {
		return ErrAttachmentNotFound
	}

	payment.SetAttachment(slot, nil)
	payment.UpdatedAt = time.Now().UTC()
	if _, err := u.checkouts.UpdatePayment(ctx, c.ID, payment); err != nil {
		logger.WithError(err).Error("[payment][usecase] attachment metadata clear failed")
		return err
	}

	path := current.StoragePath
	if path == "" {
		path = slot.StoragePath(c.ID)
	}
	if err := u.storage.Delete(ctx, path); err != nil {
		logger.WithError(err).WithField("path", path).Warn("[payment][usecase] orphaned attachment left in storage")
	}
	logger.Info("[payment][usecase] attachment deleted")
	return nil
}

// UpdateCommitmentStatus moves a commitment payment along
// pending -> committed -> paid (committed -> pending being the only step back).
// Reaching paid completes the checkout.
func (u *PaymentUseCase) UpdateCommitmentStatus(ctx context.Context, p entities.Principal, checkoutID string, status entities.PaymentStatus) (entities.Checkout, error) {
	if !p.IsAdmin {
		return entities.Checkout{}, ErrAdminOnly
	}
	if !status.Valid() {
		return entities.Checkout{}, ErrInvalidPaymentStatus
	}
	c, err := u.load(ctx, checkoutID)
	if err != nil {
		return entities.Checkout{}, err
	}
	if !c.IsCommitment() {
		return entities.Checkout{}, ErrNotCommitmentCheckout
	}
	if c.Status == entities.CheckoutStatusRefunded {
		return entities.Checkout{}, ErrCheckoutCancelled
	}

	payment := currentPayment(c)
	logger := log.WithFields(log.Fields{"checkout_id": c.ID, "from": payment.Status, "to": status})
	if payment.Status == status {
		if status == entities.PaymentStatusPaid && c.Status == entities.CheckoutStatusPending {
			logger.Info("[payment][usecase] resuming checkout completion")
			return u.lifecycle.transition(ctx, c, entities.CheckoutStatusCompleted)
		}
		return c, nil
	}
	if !payment.Status.CanTransitionTo(status) {
		logger.Info("[payment][usecase] commitment transition rejected")
		return entities.Checkout{}, ErrPaymentStatusTransition
	}

	now := time.Now().UTC()
	payment.Status = status
	payment.UpdatedAt = now
	if status == entities.PaymentStatusPaid {
		payment.PaidAt = &now
	}
	updated, err := u.checkouts.UpdatePayment(ctx, c.ID, payment)
	if err != nil {
		logger.WithError(err).Error("[payment][usecase] commitment status write failed")
		return entities.Checkout{}, err
	}
	if updated.ID == "" {
		return entities.Checkout{}, ErrCheckoutNotFound
	}
	logger.Info("[payment][usecase] commitment status updated")

	if status == entities.PaymentStatusPaid {
		return u.lifecycle.transition(ctx, updated, entities.CheckoutStatusCompleted)
	}
	return updated, nil
}

// SettleWithGateway charges a card/PIX/boleto checkout through the payment
// gateway. The amount always comes from the stored checkout.
func (u *PaymentUseCase) SettleWithGateway(ctx context.Context, p entities.Principal, checkoutID string, mpPayload json.RawMessage) (entities.Checkout, error) {
	log.WithFields(log.Fields{"checkout_id": checkoutID, "payload_len": len(mpPayload)}).Info("[payment][usecase] settle start")
	mockMode := u.opts.GatewayMock

	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !mockMode {
			log.WithField("checkout_id", checkoutID).Info("[payment][usecase] invalid payload")
			return entities.Checkout{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return entities.Checkout{}, ErrPaymentGatewayNotConfigured
	}

	c, err := u.load(ctx, checkoutID)
	if err != nil {
		return entities.Checkout{}, err
	}
	if !p.IsAdmin && !c.IsOwnedBy(p.ID) {
		return entities.Checkout{}, ErrForbidden
	}
	if c.IsCommitment() {
		return entities.Checkout{}, ErrCommitmentNotSettleable
	}
	payment := currentPayment(c)
	if c.Status != entities.CheckoutStatusPending {
		return entities.Checkout{}, ErrCheckoutNotPending
	}
	// Already charged: finish the completion a previous call left behind.
	if payment.Status == entities.PaymentStatusPaid {
		log.WithField("checkout_id", c.ID).Info("[payment][usecase] resuming checkout completion")
		return u.lifecycle.transition(ctx, c, entities.CheckoutStatusCompleted)
	}

	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err == nil {
		if !mockMode && !hasNonEmptyString(reqMap, "payment_method_id") {
			log.WithField("checkout_id", c.ID).Info("[payment][usecase] missing payment_method_id")
			return entities.Checkout{}, ErrInvalidMPPayload
		}
		if !mockMode {
			u.normalizeSandboxPayerFromUserID(reqMap)
			u.ensurePayerDefaults(reqMap, c)
		}
		if !mockMode && !hasPayer(reqMap) {
			log.WithField("checkout_id", c.ID).Info("[payment][usecase] missing/invalid payer")
			return entities.Checkout{}, ErrInvalidMPPayload
		}

		// external_reference lets the provider's webhooks be reconciled with the checkout.
		if _, ok := reqMap["external_reference"]; !ok {
			reqMap["external_reference"] = c.ID
		}
		if _, ok := reqMap["description"]; !ok {
			reqMap["description"] = fmt.Sprintf("Checkout %s", c.ID)
		}
		reqMap["transaction_amount"] = c.TotalValue
		if b, err := json.Marshal(reqMap); err == nil {
			mpPayload = b
		}
	} else {
		log.WithField("checkout_id", c.ID).WithError(err).Warn("[payment][usecase] payload unmarshal failed")
	}

	providerPaymentID, providerStatus, _, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.WithField("checkout_id", c.ID).WithError(err).Error("[payment][usecase] payment gateway failed")
		return entities.Checkout{}, classifyGatewayError(err)
	}
	log.WithFields(log.Fields{"checkout_id": c.ID, "provider_payment_id": providerPaymentID, "provider_status": providerStatus}).
		Info("[payment][usecase] payment gateway answered")

	now := time.Now().UTC()
	payment.ProviderPaymentID = providerPaymentID
	payment.ProviderStatus = providerStatus
	payment.Value = c.TotalValue
	payment.UpdatedAt = now
	approved := strings.EqualFold(providerStatus, "approved")
	if approved {
		payment.Status = entities.PaymentStatusPaid
		payment.PaidAt = &now
	}

	updated, err := u.checkouts.UpdatePayment(ctx, c.ID, payment)
	if err != nil {
		log.WithFields(log.Fields{"checkout_id": c.ID, "provider_payment_id": providerPaymentID}).WithError(err).
			Error("[payment][usecase] payment write failed after gateway charge")
		return entities.Checkout{}, err
	}
	if updated.ID == "" {
		return entities.Checkout{}, ErrCheckoutNotFound
	}
	if !approved {
		return entities.Checkout{}, ErrPaymentNotApproved
	}
	return u.lifecycle.transition(ctx, updated, entities.CheckoutStatusCompleted)
}

func (u *PaymentUseCase) load(ctx context.Context, id string) (entities.Checkout, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Checkout{}, ErrInvalidCheckoutID
	}
	c, err := u.checkouts.GetByID(ctx, id)
	if err != nil {
		return entities.Checkout{}, err
	}
	if c.ID == "" {
		return entities.Checkout{}, ErrCheckoutNotFound
	}
	return c, nil
}

// loadForAttachment applies the checks shared by upload and delete: ownership,
// admin-only invoice, commitment billing.
func (u *PaymentUseCase) loadForAttachment(ctx context.Context, p entities.Principal, checkoutID string, slot entities.AttachmentSlot) (entities.Checkout, entities.Payment, error) {
	if p.ID == "" {
		return entities.Checkout{}, entities.Payment{}, ErrUnauthenticated
	}
	c, err := u.load(ctx, checkoutID)
	if err != nil {
		return entities.Checkout{}, entities.Payment{}, err
	}
	if !p.IsAdmin && !c.IsOwnedBy(p.ID) {
		return entities.Checkout{}, entities.Payment{}, ErrForbidden
	}
	if slot == entities.AttachmentSlotInvoice && !p.IsAdmin {
		return entities.Checkout{}, entities.Payment{}, ErrAdminOnly
	}
	if !c.IsCommitment() {
		return entities.Checkout{}, entities.Payment{}, ErrNotCommitmentCheckout
	}
	return c, currentPayment(c), nil
}

func (u *PaymentUseCase) paymentValue(ctx context.Context, c entities.Checkout) (float64, error) {
	event, err := u.events.GetByID(ctx, c.EventID)
	if err != nil {
		return 0, err
	}
	if event.ID == "" {
		return 0, ErrEventNotFound
	}
	value, ok := event.TotalPrice(c.Amount)
	if !ok {
		return 0, ErrEventPricingUnavailable
	}
	return value, nil
}

func currentPayment(c entities.Checkout) entities.Payment {
	if c.Payment != nil {
		return *c.Payment
	}
	return entities.Payment{
		Method: c.PaymentMethod(),
		Status: entities.PaymentStatusPending,
		Value:  c.TotalValue,
	}
}

func classifyGatewayError(err error) error {
	switch {
	case isGatewayCustomerNotFound(err):
		return ErrPaymentGatewayCustomerNotFound
	case isGatewayInvalidUsers(err):
		return ErrPaymentGatewayInvalidUsers
	case isGatewayUnauthorized(err):
		return ErrPaymentGatewayUnauthorized
	case isGatewayBadRequest(err):
		return ErrPaymentGatewayBadRequest
	}
	return err
}

func hasNonEmptyString(m map[string]any, key string) bool {
	v, ok := m[key]
	if !ok {
		return false
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

// ensurePayerDefaults fills the payer from the checkout's billing details when
// the caller sent neither payer.id nor payer.email.
func (u *PaymentUseCase) ensurePayerDefaults(m map[string]any, c entities.Checkout) {
	v, ok := m["payer"]
	if !ok || v == nil {
		v = map[string]any{}
		m["payer"] = v
	}
	payer, ok := v.(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	if hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}

	switch {
	case c.BillingDetails != nil && strings.TrimSpace(c.BillingDetails.Email) != "" && !u.opts.Sandbox:
		payer["email"] = c.BillingDetails.Email
	case u.opts.SandboxPayerEmail != "":
		payer["email"] = u.opts.SandboxPayerEmail
	case u.opts.Sandbox:
		payer["email"] = "test_user_br@testuser.com"
	}
}

// normalizeSandboxPayerFromUserID swaps the configured sandbox test user id for
// its e-mail, which is what the sandbox accepts.
func (u *PaymentUseCase) normalizeSandboxPayerFromUserID(m map[string]any) {
	if !u.opts.Sandbox || u.opts.SandboxPayerUserID == "" || u.opts.SandboxPayerEmail == "" {
		return
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if !hasPayerID(payer) || hasNonEmptyString(payer, "email") {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != u.opts.SandboxPayerUserID {
		return
	}
	payer["email"] = u.opts.SandboxPayerEmail
	delete(payer, "id")
	log.Debug("[payment][usecase] mapped sandbox payer user_id to payer.email")
}

func isGatewayBadRequest(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}

func isGatewayInvalidUsers(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034")
}

func isGatewayCustomerNotFound(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002")
}
