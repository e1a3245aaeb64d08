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

type RegistrationHandler struct {
	usecase usecase.IRegistrationUseCase
}

func NewRegistrationHandler(uc usecase.IRegistrationUseCase) *RegistrationHandler {
	return &RegistrationHandler{usecase: uc}
}

// CreateRegistration godoc
// @Summary      Register an attendee on a purchase
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body      request.CreateRegistrationRequest  true  "Registration"
// @Success      201   {object}  response.RegistrationResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /registrations [post]
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	var payload request.CreateRegistrationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), middleware.PrincipalFrom(c), payload.ToInput())
	if err != nil {
		respondError(c, mapRegistrationError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromRegistration(created))
}

// GetRegistration godoc
// @Summary      Get a registration
// @Tags         registrations
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Registration ID"
// @Success      200  {object}  response.RegistrationResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /registrations/{id} [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	reg, err := h.usecase.GetByID(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, mapRegistrationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRegistration(reg))
}

// ListCheckoutRegistrations godoc
// @Summary      List the registrations of a purchase
// @Tags         registrations
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Checkout ID"
// @Success      200  {array}   response.RegistrationResponse
// @Failure      403  {object}  pkg.HTTPError
// @Router       /checkouts/{id}/registrations [get]
func (h *RegistrationHandler) ListCheckoutRegistrations(c *gin.Context) {
	regs, err := h.usecase.ListByCheckout(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, mapRegistrationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRegistrations(regs))
}

// UpdateRegistrationDetails godoc
// @Summary      Edit the form data of a registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                           true  "Registration ID"
// @Param        body  body      request.RegistrationFormRequest  true  "Form"
// @Success      200   {object}  response.RegistrationResponse
// @Failure      400   {object}  pkg.HTTPError
// @Router       /registrations/{id} [patch]
func (h *RegistrationHandler) UpdateRegistrationDetails(c *gin.Context) {
	var payload request.RegistrationFormRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	updated, err := h.usecase.UpdateDetails(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ToForm())
	if err != nil {
		respondError(c, mapRegistrationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRegistration(updated))
}

// UpdateRegistrationStatus godoc
// @Summary      Change the status of a registration
// @Description  Activating ("ok") goes through the seat quota of the purchase.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string                                   true  "Registration ID"
// @Param        body  body      request.UpdateRegistrationStatusRequest  true  "Target status"
// @Success      200   {object}  response.RegistrationResponse
// @Failure      403   {object}  pkg.HTTPError
// @Failure      409   {object}  pkg.HTTPError
// @Router       /registrations/{id}/status [patch]
func (h *RegistrationHandler) UpdateRegistrationStatus(c *gin.Context) {
	var payload request.UpdateRegistrationStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, errInvalidRequest)
		return
	}

	updated, err := h.usecase.UpdateStatus(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"), payload.ResolveStatus())
	if err != nil {
		respondError(c, mapRegistrationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromRegistration(updated))
}

func mapRegistrationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRegistrationID), errors.Is(err, usecase.ErrInvalidCheckoutID):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidRegistrationForm):
		return pkg.NewDomainErrorSimple("INVALID_REGISTRATION_FORM", "Invalid registration form", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRegistrationStatus):
		return pkg.NewDomainErrorSimple("INVALID_STATUS", "Invalid registration status", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrRegistrationNotFound):
		return pkg.NewDomainErrorSimple("REGISTRATION_NOT_FOUND", "Registration not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRegistrationExists):
		return pkg.NewDomainErrorSimple("REGISTRATION_ALREADY_EXISTS", "Registration already exists", http.StatusConflict)
	default:
		return mapCommonError(err)
	}
}
