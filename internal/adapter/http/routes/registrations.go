package routes

import (
	"github.com/gin-gonic/gin"

	"eventos_inscricoes/internal/adapter/http/handlers"
)

const (
	PathRegistrations = "/registrations"
	PathVoucher       = "/voucher"
	PathAdmin         = "/admin"
)

func addRegistrationRoutes(rg *gin.RouterGroup, h *handlers.RegistrationHandler) {
	registrations := rg.Group(PathRegistrations)
	{
		registrations.POST("", h.CreateRegistration)
		registrations.GET("/:id", h.GetRegistration)
		registrations.PATCH("/:id", h.UpdateRegistrationDetails)
		registrations.PATCH("/:id/status", h.UpdateRegistrationStatus)
	}
}

func addVoucherRoutes(rg *gin.RouterGroup, h *handlers.VoucherHandler) {
	voucher := rg.Group(PathVoucher)
	{
		voucher.GET("/:id/validate", h.ValidateVoucher)
		voucher.PATCH("/:id/activate", h.SetVoucherActive)
		voucher.POST("/:id/registrate", h.RedeemVoucher)
	}
}

func addAdminRoutes(rg *gin.RouterGroup, h *handlers.MigrationHandler) {
	admin := rg.Group(PathAdmin)
	{
		admin.POST("/migrations/:name", h.RunMigration)
	}
}
