package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
	"github.com/jhoicas/KwikEMart-api/pkg/logger"
)

// CheckoutUseCase conduce el flujo de compra sobre la sesión: shipping ->
// payment -> confirmation. La confirmación corre en una transacción de base
// de datos que bloquea los productos, revalida y descuenta stock, anexa el
// pedido al historial del usuario y registra la venta.
type CheckoutUseCase struct {
	sessions repository.SessionRepository
	tx       TxRunner
	store    config.StoreConfig
	log      *logger.Logger
}

// NewCheckoutUseCase construye el caso de uso del checkout.
func NewCheckoutUseCase(sessions repository.SessionRepository, tx TxRunner, store config.StoreConfig, log *logger.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{sessions: sessions, tx: tx, store: store, log: log}
}

// GetState devuelve el paso actual de la sesión con los totales del carrito.
func (uc *CheckoutUseCase) GetState(ctx context.Context, sessionID string) (*dto.CheckoutStateResponse, error) {
	s, err := uc.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return toCheckoutState(s, uc.store), nil
}

// SubmitShipping valida los datos de envío y avanza la sesión a payment.
func (uc *CheckoutUseCase) SubmitShipping(ctx context.Context, sessionID string, in dto.ShippingRequest) (*dto.CheckoutStateResponse, error) {
	s, err := uc.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.SubmitShipping(checkout.ShippingDetails{
		Address: in.Address,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
	}); err != nil {
		return nil, err
	}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return toCheckoutState(s, uc.store), nil
}

// SubmitPayment valida el método de pago y confirma la compra de forma
// atómica. El precio cobrado es el precio efectivo vigente al confirmar, no
// el snapshot del carrito.
func (uc *CheckoutUseCase) SubmitPayment(ctx context.Context, sessionID string, in dto.PaymentRequest, customerName string) (*dto.CheckoutStateResponse, error) {
	s, err := uc.requireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.CanPay() {
		return nil, domain.ErrInvalidStep
	}
	if !entity.ValidPayMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if in.Method == entity.PayMethodCard {
		card := checkout.CardDetails{
			CardNumber: in.CardNumber,
			ExpiryDate: in.ExpiryDate,
			CVV:        in.CVV,
			NameOnCard: in.NameOnCard,
		}
		if err := checkout.ValidateCard(card, time.Now()); err != nil {
			return nil, err
		}
	}

	order, err := uc.confirmOrder(ctx, s, in.Method, customerName)
	if err != nil {
		return nil, err
	}

	s.Confirm(order)
	// La compra ya quedó registrada en la base; un fallo al persistir la
	// sesión confirmada no la revierte.
	if err := uc.sessions.Save(ctx, s); err != nil {
		uc.log.Error().
			Err(err).
			Str("session_id", s.ID).
			Msg("No se pudo guardar la sesión confirmada")
	}
	uc.log.Info().
		Str("session_id", s.ID).
		Str("pay_method", in.Method).
		Str("total", order.Total.String()).
		Msg("Compra confirmada")
	return toCheckoutState(s, uc.store), nil
}

// confirmOrder materializa el pedido dentro de una transacción: bloquea cada
// producto, revalida stock contra el estado fresco y lo descuenta.
func (uc *CheckoutUseCase) confirmOrder(ctx context.Context, s *checkout.Session, payMethod, customerName string) (*entity.Order, error) {
	var order *entity.Order
	err := uc.tx.RunCheckout(ctx, func(repos CheckoutRepos) error {
		now := time.Now()
		fresh := make([]cart.Item, 0, len(s.Cart.Items))
		orderItems := make([]entity.OrderItem, 0, len(s.Cart.Items))
		txProducts := make([]entity.TransactionProduct, 0, len(s.Cart.Items))

		for _, item := range s.Cart.Items {
			p, err := repos.Products.GetByIDForUpdate(item.Product.ID)
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, item.Product.ID)
			}
			if p.Stock < item.Quantity {
				return fmt.Errorf("%w: %s (disponibles %d, pedidas %d)", domain.ErrInsufficientStock, p.Name, p.Stock, item.Quantity)
			}
			unit := p.EffectivePrice()
			lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
			orderItems = append(orderItems, entity.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				UnitPrice: unit,
				Quantity:  item.Quantity,
				Subtotal:  lineTotal,
			})
			txProducts = append(txProducts, entity.TransactionProduct{
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       unit,
				Quantity:    item.Quantity,
			})
			fresh = append(fresh, cart.Item{Product: *p, Quantity: item.Quantity})
			if err := repos.Products.UpdateStock(p.ID, p.Stock-item.Quantity); err != nil {
				return err
			}
		}

		totals := checkout.ComputeTotals(fresh, uc.store)
		if totals.Subtotal.LessThan(uc.store.MinimumOrderValue) {
			return domain.ErrBelowMinimumOrder
		}

		customer := customerName
		userName, userEmail := customer, ""
		if s.UserID != "" {
			user, err := repos.Users.GetByID(s.UserID)
			if err != nil {
				return err
			}
			if user != nil {
				customer = user.Name
				userName = user.Name
				userEmail = user.Email
			}
		}
		if customer == "" {
			customer = "Invitado"
			userName = customer
		}

		order = &entity.Order{
			Date:      now,
			Items:     orderItems,
			Subtotal:  totals.Subtotal,
			Shipping:  totals.Shipping,
			Tax:       totals.Tax,
			Total:     totals.Total,
			Customer:  customer,
			PayMethod: payMethod,
		}
		if s.UserID != "" {
			if err := repos.Users.AppendPurchase(s.UserID, order); err != nil {
				return err
			}
		}
		return repos.Transactions.Create(&entity.Transaction{
			ID:            uuid.New().String(),
			UserID:        s.UserID,
			UserName:      userName,
			UserEmail:     userEmail,
			Products:      txProducts,
			TotalAmount:   order.Total,
			Timestamp:     now,
			PaymentMethod: payMethod,
			Status:        entity.TransactionStatusCompleted,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *CheckoutUseCase) requireSession(ctx context.Context, sessionID string) (*checkout.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrNotFound
	}
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toCheckoutState(s *checkout.Session, store config.StoreConfig) *dto.CheckoutStateResponse {
	resp := &dto.CheckoutStateResponse{
		SessionID: s.ID,
		Step:      s.Step,
		Shipping:  s.Shipping,
		Totals:    checkout.ComputeTotals(s.Cart.Items, store),
	}
	if s.Order != nil {
		resp.Order = ToOrderResponse(s.Order)
		resp.Totals = checkout.Totals{
			Subtotal: s.Order.Subtotal,
			Shipping: s.Order.Shipping,
			Tax:      s.Order.Tax,
			Total:    s.Order.Total,
		}
	}
	return resp
}

// ToOrderResponse mapea un pedido del historial a DTO.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return &dto.OrderResponse{
		Date:      o.Date,
		Items:     items,
		Subtotal:  o.Subtotal,
		Shipping:  o.Shipping,
		Tax:       o.Tax,
		Total:     o.Total,
		Customer:  o.Customer,
		PayMethod: o.PayMethod,
	}
}
