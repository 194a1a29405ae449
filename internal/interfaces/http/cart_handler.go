package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
)

// CartHandler maneja el carrito. La sesión viaja en el header X-Cart-Session;
// la primera respuesta devuelve el ID asignado y el cliente lo reenvía.
type CartHandler struct {
	uc *usecase.CartUseCase
}

// NewCartHandler construye el handler del carrito.
func NewCartHandler(uc *usecase.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener el carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header  string  false  "ID de sesión de carrito"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetSessionID(c), GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return h.respond(c, out)
}

// AddItem godoc
// @Summary      Añadir producto al carrito
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header  string  false  "ID de sesión de carrito"
// @Param        body  body  dto.AddCartItemRequest  true  "productId y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddItem(c.Context(), GetSessionID(c), GetUserID(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return h.respond(c, out)
}

// UpdateQuantity godoc
// @Summary      Cambiar cantidad de una línea
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Param        productId  path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateCartItemRequest  true  "cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateQuantity(c.Context(), GetSessionID(c), GetUserID(c), productID, in.Quantity)
	if err != nil {
		return h.respondError(c, err)
	}
	return h.respond(c, out)
}

// RemoveItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.uc.RemoveItem(c.Context(), GetSessionID(c), GetUserID(c), productID)
	if err != nil {
		return h.respondError(c, err)
	}
	return h.respond(c, out)
}

// Toggle godoc
// @Summary      Abrir/cerrar el panel del carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header  string  false  "ID de sesión de carrito"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart/toggle [post]
func (h *CartHandler) Toggle(c *fiber.Ctx) error {
	out, err := h.uc.Toggle(c.Context(), GetSessionID(c), GetUserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return h.respond(c, out)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Produce      json
// @Param        X-Cart-Session  header  string  true  "ID de sesión de carrito"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(c.Context(), GetSessionID(c), GetUserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return h.respond(c, out)
}

// respond devuelve el carrito y refleja el ID de sesión en el header.
func (h *CartHandler) respond(c *fiber.Ctx, out *dto.CartResponse) error {
	c.Set(HeaderCartSession, out.SessionID)
	return c.JSON(out)
}

func (h *CartHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrInvalidStep):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CHECKOUT_DONE", Message: "la compra ya fue confirmada en esta sesión"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
