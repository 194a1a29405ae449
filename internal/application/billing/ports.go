package billing

import (
	"context"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// StoreInfo identidad de la tienda que encabeza la factura.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// InvoicePDFGenerator genera la representación PDF de un pedido del
// historial de compras.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, store StoreInfo, customer *entity.User, order *entity.Order, invoiceNumber string) ([]byte, error)
}
