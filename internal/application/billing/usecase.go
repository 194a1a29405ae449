// Package billing expone las facturas del usuario: el historial de compras y
// su descarga en PDF. Los pedidos son inmutables, así que la factura se
// regenera bajo demanda en lugar de almacenarse.
package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
)

// InvoiceUseCase historial de compras y generación de facturas PDF.
type InvoiceUseCase struct {
	users repository.UserRepository
	pdf   InvoicePDFGenerator
	store StoreInfo
}

// NewInvoiceUseCase construye el caso de uso de facturación.
func NewInvoiceUseCase(users repository.UserRepository, pdf InvoicePDFGenerator, store StoreInfo) *InvoiceUseCase {
	return &InvoiceUseCase{users: users, pdf: pdf, store: store}
}

// History devuelve los pedidos del usuario, el más reciente primero.
func (uc *InvoiceUseCase) History(userID string) (*dto.InvoiceHistoryResponse, error) {
	user, err := uc.requireUser(userID)
	if err != nil {
		return nil, err
	}
	orders := make([]dto.OrderResponse, 0, len(user.PurchaseHistory))
	for i := len(user.PurchaseHistory) - 1; i >= 0; i-- {
		orders = append(orders, *usecase.ToOrderResponse(&user.PurchaseHistory[i]))
	}
	return &dto.InvoiceHistoryResponse{Orders: orders}, nil
}

// InvoicePDF genera el PDF del pedido index (posición en el historial, base
// cero) y devuelve los bytes junto con el nombre de archivo sugerido.
func (uc *InvoiceUseCase) InvoicePDF(ctx context.Context, userID string, index int) ([]byte, string, error) {
	user, err := uc.requireUser(userID)
	if err != nil {
		return nil, "", err
	}
	if index < 0 || index >= len(user.PurchaseHistory) {
		return nil, "", domain.ErrNotFound
	}
	order := &user.PurchaseHistory[index]
	number := fmt.Sprintf("KEM-%s-%04d", order.Date.Format("20060102"), index+1)
	data, err := uc.pdf.GenerateInvoicePDF(ctx, uc.store, user, order, number)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("factura_%s.pdf", number), nil
}

func (uc *InvoiceUseCase) requireUser(userID string) (*entity.User, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
