package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "eventos_inscricoes/internal/adapter/http/dto/request"
	response "eventos_inscricoes/internal/adapter/http/dto/response"
	"eventos_inscricoes/internal/adapter/http/middleware"
	"eventos_inscricoes/internal/usecase"
	"eventos_inscricoes/pkg"
)

type VoucherHandler struct {
	usecase usecase.IVoucherUseCase
}

func NewVoucherHandler(uc usecase.IVoucherUseCase) *VoucherHandler {
	return &VoucherHandler{usecase: uc}
}

// GetCheckoutVoucher godoc
// @Summary      Get the voucher of a purchase
// @Tags         vouchers
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Checkout ID"
// @Success      200  {object}  response.VoucherResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /checkouts/{id}/voucher [get]
func (h *VoucherHandler) GetCheckoutVoucher(c *gin.Context) {
	v, err := h.usecase.GetByCheckout(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, mapVoucherError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVoucher(v))
}

// SetVoucherActive godoc
// @Summary      Enable or disable a voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                           true  "Voucher ID"
// @Param        body  body      request.SetVoucherActiveRequest  true  "Active flag"
// @Success      200   {object}  response.VoucherResponse
// @Failure      403   {object}  pkg.HTTPError
// @Router       /voucher/{id}/activate [patch]
func (h *VoucherHandler) SetVoucherActive(c *gin.Context) {
	var payload request.SetVoucherActiveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	v, err := h.usecase.SetActive(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), *payload.Active)
	if err != nil {
		respondError(c, mapVoucherError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVoucher(v))
}

// ValidateVoucher godoc
// @Summary      Check whether a voucher can still be redeemed
// @Tags         vouchers
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Voucher ID"
// @Success      200  {object}  response.VoucherValidationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /voucher/{id}/validate [get]
func (h *VoucherHandler) ValidateVoucher(c *gin.Context) {
	result, err := h.usecase.Validate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, mapVoucherError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromVoucherValidation(result))
}

// RedeemVoucher godoc
// @Summary      Register the caller through a voucher
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                        true  "Voucher ID"
// @Param        body  body      request.RedeemVoucherRequest  true  "Registration form"
// @Success      201   {object}  response.RegistrationResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /voucher/{id}/registrate [post]
func (h *VoucherHandler) RedeemVoucher(c *gin.Context) {
	var payload request.RedeemVoucherRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	reg, err := h.usecase.Redeem(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ToForm())
	if err != nil {
		respondError(c, mapVoucherError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromRegistration(reg))
}

func mapVoucherError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidVoucherID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrVoucherNotFound):
		return pkg.NewDomainErrorSimple("VOUCHER_NOT_FOUND", "Voucher not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrVoucherCheckoutOccupied):
		return pkg.NewDomainErrorSimple("VOUCHER_ALREADY_REDEEMED", "You already hold a purchase for this event", http.StatusConflict)
	default:
		return mapRegistrationError(err)
	}
}
