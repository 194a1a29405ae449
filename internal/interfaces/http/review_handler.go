package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
)

// ReviewHandler reseñas: alta por clientes autenticados y moderación admin.
type ReviewHandler struct {
	uc *usecase.ReviewUseCase
}

// NewReviewHandler construye el handler de reseñas.
func NewReviewHandler(uc *usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

// Add godoc
// @Summary      Añadir una reseña a un producto
// @Description  Requiere autenticación. Si el usuario ya reseñó el producto, su reseña se reemplaza.
// @Tags         reviews
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddReviewRequest  true  "Reseña"
// @Success      200   {object}  dto.ProductReviewsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reviews [post]
func (h *ReviewHandler) Add(c *fiber.Ctx) error {
	productID := c.Params("id")
	userID := GetUserID(c)
	var in dto.AddReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Add(productID, userID, in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// ListAll godoc
// @Summary      Listar todas las reseñas de la tienda (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ModerationReviewListResponse
// @Router       /api/admin/reviews [get]
func (h *ReviewHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll()
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateComment godoc
// @Summary      Editar el comentario de una reseña (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string  true  "ID del producto"
// @Param        index  path  int     true  "Índice de la reseña dentro del producto"
// @Param        body   body  dto.UpdateReviewRequest  true  "Nuevo comentario"
// @Success      200    {object}  dto.ProductReviewsResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/reviews/{index} [put]
func (h *ReviewHandler) UpdateComment(c *fiber.Ctx) error {
	productID := c.Params("id")
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice de reseña inválido"})
	}
	var in dto.UpdateReviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateComment(productID, index, in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una reseña (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del producto"
// @Param        index  path  int     true  "Índice de la reseña dentro del producto"
// @Success      200    {object}  dto.ProductReviewsResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/admin/products/{id}/reviews/{index} [delete]
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	productID := c.Params("id")
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice de reseña inválido"})
	}
	out, err := h.uc.Delete(productID, index)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

func (h *ReviewHandler) respondError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la reseña requiere un rating entre 1 y 5 y un comentario"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o reseña no encontrada"})
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
