package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/KwikEMart-api/internal/application/dto"
	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/internal/domain/checkout"
	"github.com/jhoicas/KwikEMart-api/internal/domain/repository"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
)

// CartUseCase orquesta el carrito: carga la sesión, consulta el producto,
// delega la mutación al reductor puro y persiste el estado resultante.
type CartUseCase struct {
	sessions repository.SessionRepository
	products repository.ProductRepository
	limits   cart.Limits
}

// NewCartUseCase construye el caso de uso del carrito.
func NewCartUseCase(sessions repository.SessionRepository, products repository.ProductRepository, store config.StoreConfig) *CartUseCase {
	return &CartUseCase{
		sessions: sessions,
		products: products,
		limits:   cart.Limits{MaxPurchase: store.MaxPurchaseLimit},
	}
}

// Get devuelve el carrito de la sesión. Si la sesión no existe (o expiró)
// devuelve una nueva sesión vacía.
func (uc *CartUseCase) Get(ctx context.Context, sessionID, userID string) (*dto.CartResponse, error) {
	s, err := uc.loadOrCreate(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	return toCartResponse(s, nil), nil
}

// AddItem añade un producto al carrito (cantidad 0 equivale a 1).
func (uc *CartUseCase) AddItem(ctx context.Context, sessionID, userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.apply(ctx, sessionID, userID, cart.Action{
		Type:     cart.ActionAddItem,
		Product:  product,
		Quantity: in.Quantity,
	})
}

// UpdateQuantity fija la cantidad de una línea. Cero o negativa la elimina;
// por encima del stock o del límite se ajusta al máximo permitido.
func (uc *CartUseCase) UpdateQuantity(ctx context.Context, sessionID, userID, productID string, quantity int) (*dto.CartResponse, error) {
	return uc.apply(ctx, sessionID, userID, cart.Action{
		Type:      cart.ActionUpdateQuantity,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem elimina una línea del carrito.
func (uc *CartUseCase) RemoveItem(ctx context.Context, sessionID, userID, productID string) (*dto.CartResponse, error) {
	return uc.apply(ctx, sessionID, userID, cart.Action{
		Type:      cart.ActionRemoveItem,
		ProductID: productID,
	})
}

// Toggle abre o cierra el panel del carrito.
func (uc *CartUseCase) Toggle(ctx context.Context, sessionID, userID string) (*dto.CartResponse, error) {
	return uc.apply(ctx, sessionID, userID, cart.Action{Type: cart.ActionToggleCart})
}

// Clear vacía el carrito.
func (uc *CartUseCase) Clear(ctx context.Context, sessionID, userID string) (*dto.CartResponse, error) {
	return uc.apply(ctx, sessionID, userID, cart.Action{Type: cart.ActionClearCart})
}

// apply carga la sesión, ejecuta el reductor y persiste el nuevo estado.
// Una sesión en confirmation ya no admite mutaciones de carrito.
func (uc *CartUseCase) apply(ctx context.Context, sessionID, userID string, a cart.Action) (*dto.CartResponse, error) {
	s, err := uc.loadOrCreate(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if s.Step == checkout.StepConfirmation {
		return nil, domain.ErrInvalidStep
	}
	next, notices := cart.Reduce(s.Cart, a, uc.limits)
	s.Cart = next
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, err
	}
	return toCartResponse(s, notices), nil
}

func (uc *CartUseCase) loadOrCreate(ctx context.Context, sessionID, userID string) (*checkout.Session, error) {
	var s *checkout.Session
	if sessionID != "" {
		loaded, err := uc.sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		s = loaded
	}
	if s == nil {
		s = checkout.NewSession(uuid.New().String())
	}
	// Un login posterior adopta la sesión anónima
	if userID != "" && s.UserID == "" {
		s.UserID = userID
	}
	return s, nil
}

func toCartResponse(s *checkout.Session, notices []cart.Notice) *dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(s.Cart.Items))
	subtotal := decimal.Zero
	for _, item := range s.Cart.Items {
		unit := item.Product.EffectivePrice()
		line := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		items = append(items, dto.CartItemResponse{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Image:     item.Product.Image,
			UnitPrice: unit,
			Quantity:  item.Quantity,
			Subtotal:  line.Round(2),
			Stock:     item.Product.Stock,
		})
	}
	return &dto.CartResponse{
		SessionID:  s.ID,
		Items:      items,
		IsOpen:     s.Cart.IsOpen,
		TotalItems: s.Cart.TotalUnits(),
		Subtotal:   subtotal.Round(2),
		Notices:    notices,
	}
}
