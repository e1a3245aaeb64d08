package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/usecase"
	"eventos_inscricoes/internal/usecase/interfaces"
	"eventos_inscricoes/pkg"
)

var errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// mapCommonError covers the errors every use case can return: authentication,
// authorization, the activation gate and concurrency conflicts.
func mapCommonError(err error) *pkg.AppError {
	var rejected *usecase.VoucherRejectedError
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrAdminOnly):
		return pkg.NewDomainErrorSimple("ADMIN_ONLY", "Only administrators can perform this operation", http.StatusForbidden)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "You are not allowed to access this resource", http.StatusForbidden)
	case errors.Is(err, usecase.ErrCheckoutCancelled):
		return pkg.NewDomainErrorSimple("PURCHASE_CANCELLED", usecase.ErrCheckoutCancelled.Error(), http.StatusForbidden)
	case errors.Is(err, usecase.ErrCheckoutWithoutSeats):
		return pkg.NewDomainErrorSimple("PURCHASE_WITHOUT_SEATS", usecase.ErrCheckoutWithoutSeats.Error(), http.StatusForbidden)
	case errors.Is(err, usecase.ErrQuotaReached):
		return pkg.NewDomainErrorSimple("QUOTA_REACHED", usecase.ErrQuotaReached.Error(), http.StatusForbidden)
	case errors.As(err, &rejected):
		return pkg.NewDomainErrorSimple("VOUCHER_REJECTED", rejected.Reason, http.StatusForbidden)
	case errors.Is(err, usecase.ErrSeatContention), errors.Is(err, interfaces.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("CONCURRENT_UPDATE", "Resource changed concurrently, try again", http.StatusConflict)
	case errors.Is(err, usecase.ErrCheckoutNotFound):
		return pkg.NewDomainErrorSimple("CHECKOUT_NOT_FOUND", "Checkout not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEventNotFound):
		return pkg.NewDomainErrorSimple("EVENT_NOT_FOUND", "Event not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEventClosed):
		return pkg.NewDomainErrorSimple("EVENT_CLOSED", "Event is closed", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func respondError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.WithFields(log.Fields{"path": c.FullPath(), "code": appErr.Code}).WithError(appErr.Err).Error("[http][handler] request failed")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
