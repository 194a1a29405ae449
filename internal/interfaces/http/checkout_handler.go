package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
)

// CheckoutHandler conduce el flujo shipping -> payment -> confirmation sobre
// la sesión del header X-Cart-Session.
type CheckoutHandler struct {
	uc *usecase.CheckoutUseCase
}

// NewCheckoutHandler construye el handler del checkout.
func NewCheckoutHandler(uc *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// GetState godoc
// @Summary      Estado del checkout
// @Tags         checkout
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Success      200  {object}  dto.CheckoutStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout [get]
func (h *CheckoutHandler) GetState(c *fiber.Ctx) error {
	out, err := h.uc.GetState(c.Context(), GetSessionID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitShipping godoc
// @Summary      Enviar datos de envío
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Param        body  body  dto.ShippingRequest  true  "Dirección de envío"
// @Success      200   {object}  dto.CheckoutStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/shipping [post]
func (h *CheckoutHandler) SubmitShipping(c *fiber.Ctx) error {
	var in dto.ShippingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SubmitShipping(c.Context(), GetSessionID(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitPayment godoc
// @Summary      Pagar y confirmar la compra
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Param        body  body  dto.PaymentRequest  true  "Método de pago y datos de tarjeta si aplica"
// @Success      200   {object}  dto.CheckoutStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/checkout/payment [post]
func (h *CheckoutHandler) SubmitPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SubmitPayment(c.Context(), GetSessionID(c), in, in.NameOnCard)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// respondError mapea los errores del flujo a códigos HTTP. Los mensajes de
// validación van tal cual al usuario.
func (h *CheckoutHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sesión de checkout no encontrada"})
	case errors.Is(err, domain.ErrEmptyCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_CART", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidStep):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STEP", Message: "paso de checkout inválido para la sesión"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrBelowMinimumOrder):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BELOW_MINIMUM", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "método de pago inválido"})
	case isCheckoutValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func isCheckoutValidation(err error) bool {
	for _, v := range []error{
		checkout.ErrShippingIncomplete,
		checkout.ErrInvalidZipCode,
		checkout.ErrInvalidCardNumber,
		checkout.ErrInvalidExpiry,
		checkout.ErrCardExpired,
		checkout.ErrInvalidCVV,
		checkout.ErrEmptyCardName,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
