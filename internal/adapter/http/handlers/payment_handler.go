package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	request "eventos_inscricoes/internal/adapter/http/dto/request"
	response "eventos_inscricoes/internal/adapter/http/dto/response"
	"eventos_inscricoes/internal/adapter/http/middleware"
	"eventos_inscricoes/internal/domain/entities"
	"eventos_inscricoes/internal/usecase"
	"eventos_inscricoes/pkg"
)

var (
	errFileRequired = pkg.NewDomainErrorSimple("FILE_REQUIRED", "A file must be sent in the \"file\" field", http.StatusBadRequest)
	errFileTooLarge = pkg.NewDomainErrorSimple("FILE_TOO_LARGE", "File exceeds the upload limit", http.StatusRequestEntityTooLarge)
)

// PaymentHandler handles the payment of a checkout: gateway settlement,
// commitment status and attachment uploads.
type PaymentHandler struct {
	usecase        usecase.IPaymentUseCase
	maxUploadBytes int64
	gatewayMock    bool
}

func NewPaymentHandler(uc usecase.IPaymentUseCase, maxUploadBytes int64, gatewayMock bool) *PaymentHandler {
	return &PaymentHandler{usecase: uc, maxUploadBytes: maxUploadBytes, gatewayMock: gatewayMock}
}

// SettlePayment godoc
// @Summary      Pay a checkout through Mercado Pago
// @Description  Accepts either the raw Mercado Pago payment body or {"mp_payload": {...}}.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Checkout ID"
// @Param        body  body      request.SettlePaymentRequest  true  "Mercado Pago payload"
// @Success      200   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Router       /checkouts/{id}/payment [post]
func (h *PaymentHandler) SettlePayment(c *gin.Context) {
	checkoutID := c.Param("id")
	logger := log.WithField("checkout_id", checkoutID)
	logger.Info("[payment][handler] settle start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if !h.gatewayMock {
			logger.WithError(err).Info("[payment][handler] invalid payload")
			respondError(c, errInvalidRequest)
			return
		}
		logger.WithError(err).Info("[payment][handler] payload invalid in mock mode; fallback to empty payload")
		mpPayload = json.RawMessage("{}")
	}

	settled, err := h.usecase.SettleWithGateway(c.Request.Context(), middleware.PrincipalFrom(c), checkoutID, mpPayload)
	if err != nil {
		logger.WithError(err).Info("[payment][handler] settle failed")
		respondError(c, mapPaymentError(err))
		return
	}
	logger.WithField("status", settled.Status).Info("[payment][handler] settle success")

	c.JSON(http.StatusOK, response.FromCheckout(settled))
}

// UploadAttachment godoc
// @Summary      Upload a payment attachment
// @Description  slot is one of commitment, payment or invoice.
// @Tags         payments
// @Accept       multipart/form-data
// @Produce      json
// @Security     Bearer
// @Param        id    path      string  true  "Checkout ID"
// @Param        slot  path      string  true  "Attachment slot"
// @Param        file  formData  file    true  "Attachment"
// @Success      200   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      413   {object}  pkg.HTTPError
// @Router       /checkouts/{id}/payment/{slot} [put]
func (h *PaymentHandler) UploadAttachment(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		if c.Request.ContentLength > h.maxUploadBytes {
			respondError(c, errFileTooLarge)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, errFileTooLarge)
			return
		}
		respondError(c, errFileRequired)
		return
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, errFileRequired)
		return
	}
	defer file.Close()

	updated, err := h.usecase.UploadAttachment(
		c.Request.Context(),
		middleware.PrincipalFrom(c),
		c.Param("id"),
		entities.AttachmentSlot(c.Param("slot")),
		usecase.AttachmentUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		},
	)
	if err != nil {
		respondError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(updated))
}

// DeleteAttachment godoc
// @Summary      Delete a payment attachment
// @Tags         payments
// @Security     Bearer
// @Param        id    path  string  true  "Checkout ID"
// @Param        slot  path  string  true  "Attachment slot"
// @Success      204
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Router       /checkouts/{id}/payment/{slot} [delete]
func (h *PaymentHandler) DeleteAttachment(c *gin.Context) {
	err := h.usecase.DeleteAttachment(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), entities.AttachmentSlot(c.Param("slot")))
	if err != nil {
		respondError(c, mapPaymentError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateCommitmentStatus godoc
// @Summary      Move a commitment payment to another status (admin)
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                                 true  "Checkout ID"
// @Param        body  body      request.UpdateCommitmentStatusRequest  true  "Target status"
// @Success      200   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Router       /checkouts/{id}/commitment/status [put]
func (h *PaymentHandler) UpdateCommitmentStatus(c *gin.Context) {
	var payload request.UpdateCommitmentStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	updated, err := h.usecase.UpdateCommitmentStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		respondError(c, mapPaymentError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(updated))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			trimmed := strings.TrimSpace(string(wrapped))
			if trimmed == "" || trimmed == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidAttachmentSlot):
		return pkg.NewDomainErrorSimple("INVALID_ATTACHMENT_SLOT", "Attachment slot must be commitment, payment or invoice", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAttachmentRequired):
		return errFileRequired
	case errors.Is(err, usecase.ErrInvalidPaymentStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid payment status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAttachmentNotFound):
		return pkg.NewDomainErrorSimple("ATTACHMENT_NOT_FOUND", "Attachment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAttachmentLocked):
		return pkg.NewDomainErrorSimple("ATTACHMENT_LOCKED", usecase.ErrAttachmentLocked.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotDeletable):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_DELETABLE", "Invoice cannot be deleted", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrNotCommitmentCheckout):
		return pkg.NewDomainErrorSimple("NOT_COMMITMENT_CHECKOUT", "Checkout is not paid by commitment", http.StatusForbidden)
	case errors.Is(err, usecase.ErrPaymentStatusTransition):
		return pkg.NewDomainErrorSimple("STATUS_TRANSITION_NOT_ALLOWED", "Payment status transition not allowed", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCommitmentNotSettleable):
		return pkg.NewDomainErrorSimple("COMMITMENT_NOT_SETTLEABLE", "Commitment checkouts are settled through attachments", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCheckoutNotPending):
		return pkg.NewDomainErrorSimple("CHECKOUT_NOT_PENDING", "Checkout is not awaiting payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotApproved):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_APPROVED", "Payment was not approved", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider is not configured", http.StatusServiceUnavailable)
	default:
		return mapCheckoutError(err)
	}
}
