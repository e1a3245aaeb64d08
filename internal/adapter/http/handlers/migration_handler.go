package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"eventos_inscricoes/internal/adapter/http/middleware"
	"eventos_inscricoes/internal/usecase"
	"eventos_inscricoes/pkg"
)

type MigrationHandler struct {
	usecase usecase.IMigrationUseCase
}

func NewMigrationHandler(uc usecase.IMigrationUseCase) *MigrationHandler {
	return &MigrationHandler{usecase: uc}
}

// RunMigration godoc
// @Summary      Run a batch migration (admin)
// @Description  name is "vouchers" or "registrations".
// @Tags         admin
// @Produce      json
// @Security     Bearer
// @Param        name  path      string  true  "Migration name"
// @Success      200   {object}  usecase.MigrationSummary
// @Failure      403   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Router       /admin/migrations/{name} [post]
func (h *MigrationHandler) RunMigration(c *gin.Context) {
	name := c.Param("name")
	summary, err := h.usecase.Run(c.Request.Context(), middleware.PrincipalFrom(c), name)
	if err != nil {
		respondError(c, mapMigrationError(err))
		return
	}
	log.WithFields(log.Fields{
		"migration": name,
		"processed": summary.Processed,
		"failed":    summary.Failed,
	}).Info("[migration][handler] run finished")
	c.JSON(http.StatusOK, summary)
}

func mapMigrationError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrUnknownMigration) {
		return pkg.NewDomainErrorSimple("MIGRATION_NOT_FOUND", "Unknown migration", http.StatusNotFound)
	}
	return mapCommonError(err)
}
