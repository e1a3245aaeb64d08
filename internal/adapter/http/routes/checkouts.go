package routes

import (
	"github.com/gin-gonic/gin"

	"eventos_inscricoes/internal/adapter/http/handlers"
)

const PathCheckouts = "/checkouts"

func addCheckoutRoutes(
	rg *gin.RouterGroup,
	checkoutHandler *handlers.CheckoutHandler,
	paymentHandler *handlers.PaymentHandler,
	registrationHandler *handlers.RegistrationHandler,
	voucherHandler *handlers.VoucherHandler,
) {
	checkouts := rg.Group(PathCheckouts)
	{
		checkouts.POST("", checkoutHandler.CreateCheckout)
		checkouts.GET("/:id", checkoutHandler.GetCheckout)
		checkouts.PATCH("/:id/status", checkoutHandler.UpdateCheckoutStatus)
		checkouts.POST("/:id/restore", checkoutHandler.RestoreCheckout)

		checkouts.POST("/:id/payment", paymentHandler.SettlePayment)
		checkouts.PUT("/:id/payment/:slot", paymentHandler.UploadAttachment)
		checkouts.DELETE("/:id/payment/:slot", paymentHandler.DeleteAttachment)
		checkouts.PUT("/:id/commitment/status", paymentHandler.UpdateCommitmentStatus)

		checkouts.GET("/:id/registrations", registrationHandler.ListCheckoutRegistrations)
		checkouts.GET("/:id/voucher", voucherHandler.GetCheckoutVoucher)
	}
}
