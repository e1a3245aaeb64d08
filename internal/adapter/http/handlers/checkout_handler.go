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

// CheckoutHandler handles HTTP requests for checkouts (purchases).
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateCheckout godoc
// @Summary      Create an acquisition checkout
// @Tags         checkouts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CreateCheckoutRequest  true  "Acquisition"
// @Success      201   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      403   {object}  pkg.HTTPError
// @Router       /checkouts [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var payload request.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	created, err := h.usecase.CreateAcquisition(c.Request.Context(), middleware.PrincipalFrom(c), payload.ToInput())
	if err != nil {
		respondError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromCheckout(created))
}

// GetCheckout godoc
// @Summary      Get a checkout
// @Tags         checkouts
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Checkout ID"
// @Success      200  {object}  response.CheckoutResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /checkouts/{id} [get]
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	checkout, err := h.usecase.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(checkout))
}

// UpdateCheckoutStatus godoc
// @Summary      Move a checkout to another status (admin)
// @Tags         checkouts
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                               true  "Checkout ID"
// @Param        body  body      request.UpdateCheckoutStatusRequest  true  "Target status"
// @Success      200   {object}  response.CheckoutResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /checkouts/{id}/status [patch]
func (h *CheckoutHandler) UpdateCheckoutStatus(c *gin.Context) {
	var payload request.UpdateCheckoutStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	updated, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		respondError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(updated))
}

// RestoreCheckout godoc
// @Summary      Restore a deleted checkout (admin)
// @Tags         checkouts
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Checkout ID"
// @Success      200  {object}  response.CheckoutResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Router       /checkouts/{id}/restore [post]
func (h *CheckoutHandler) RestoreCheckout(c *gin.Context) {
	restored, err := h.usecase.Restore(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, mapCheckoutError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromCheckout(restored))
}

func mapCheckoutError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidCheckoutID), errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidBillingDetails), errors.Is(err, usecase.ErrInvalidPaymentMethod):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidCheckoutStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid checkout status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEventPricingUnavailable):
		return pkg.NewDomainErrorSimple("EVENT_PRICING_UNAVAILABLE", "Event has no price for this quantity", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidStatusTransition):
		return pkg.NewDomainErrorSimple("STATUS_TRANSITION_NOT_ALLOWED", "Status transition not allowed", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCommitmentStatusManaged):
		return pkg.NewDomainErrorSimple("COMMITMENT_STATUS_MANAGED", "Commitment checkouts change status through the commitment flow", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCheckoutRestoreConflict):
		return pkg.NewDomainErrorSimple("CHECKOUT_RESTORE_CONFLICT", "An active checkout already uses this id", http.StatusConflict)
	case errors.Is(err, usecase.ErrCheckoutStatusChanged):
		return pkg.NewDomainErrorSimple("CHECKOUT_STATUS_CHANGED", "Checkout changed concurrently, reload and try again", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
