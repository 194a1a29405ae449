package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/billing"
	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
)

// InvoiceHandler historial de compras del usuario autenticado y descarga de
// facturas en PDF.
type InvoiceHandler struct {
	uc *billing.InvoiceUseCase
}

// NewInvoiceHandler construye el handler de facturación.
func NewInvoiceHandler(uc *billing.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// History godoc
// @Summary      Historial de compras del usuario autenticado
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InvoiceHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(GetUserID(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(out)
}

// InvoicePDF godoc
// @Summary      Descargar la factura de un pedido en PDF
// @Description  index es la posición del pedido en el historial (base cero).
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        index  path  int  true  "Índice del pedido en el historial"
// @Success      200    {file}    file
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/invoices/{index}/pdf [get]
func (h *InvoiceHandler) InvoicePDF(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice de pedido inválido"})
	}
	data, filename, err := h.uc.InvoicePDF(c.Context(), GetUserID(c), index)
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}

func (h *InvoiceHandler) respondError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrUserNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado en el historial"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
