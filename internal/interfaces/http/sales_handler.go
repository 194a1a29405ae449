package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
)

// SalesHandler registra transacciones y sirve la analítica de ventas.
type SalesHandler struct {
	uc *usecase.SalesUseCase
}

// NewSalesHandler construye el handler de ventas.
func NewSalesHandler(uc *usecase.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// CreateTransaction godoc
// @Summary      Registrar una transacción de venta
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Venta"
// @Success      201   {object}  dto.CreateTransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *SalesHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateTransaction(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "userId y al menos un producto son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Listar transacciones (admin)
// @Description  Con from y to (YYYY-MM-DD) lista las transacciones del rango; si no, las más recientes.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int     false  "Límite"  default(50)
// @Param        from   query  string  false  "Inicio del rango (YYYY-MM-DD)"
// @Param        to     query  string  false  "Fin del rango (YYYY-MM-DD)"
// @Success      200    {array}   dto.TransactionResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/admin/sales/transactions [get]
func (h *SalesHandler) ListTransactions(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "from debe tener formato YYYY-MM-DD"})
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "to debe tener formato YYYY-MM-DD"})
		}
		out, err := h.uc.ListTransactionsByDateRange(start, end.AddDate(0, 0, 1).Add(-time.Second))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(out)
	}
	out, err := h.uc.ListTransactions(c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de ventas (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Días del rango"  default(7)
// @Success      200   {object}  dto.SalesSummaryResponse
// @Router       /api/admin/sales/summary [get]
func (h *SalesHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(time.Now(), c.QueryInt("days", 7))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
