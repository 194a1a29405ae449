package checkout

import (
	"time"

	"github.com/jhoicas/KwikEMart-api/internal/domain"
	"github.com/jhoicas/KwikEMart-api/internal/domain/cart"
	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// Pasos del checkout. La máquina es lineal: shipping -> payment ->
// confirmation; confirmation es terminal y no admite transición de salida.
const (
	StepShipping     = "shipping"
	StepPayment      = "payment"
	StepConfirmation = "confirmation"
)

// Session estado de un carrito y su checkout en curso. Es efímera: vive en el
// almacén de sesiones con TTL y se descarta o se materializa en un Order al
// confirmar la compra.
type Session struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId,omitempty"`
	Cart      cart.State       `json:"cart"`
	Step      string           `json:"step"`
	Shipping  *ShippingDetails `json:"shipping,omitempty"`
	Order     *entity.Order    `json:"order,omitempty"` // sólo en confirmation
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewSession crea una sesión vacía en el paso shipping.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		Step:      StepShipping,
		UpdatedAt: time.Now(),
	}
}

// SubmitShipping valida los datos de envío y avanza a payment. Si la
// validación falla, la sesión permanece en shipping.
func (s *Session) SubmitShipping(d ShippingDetails) error {
	if s.Step == StepConfirmation {
		return domain.ErrInvalidStep
	}
	if len(s.Cart.Items) == 0 {
		return domain.ErrEmptyCart
	}
	if err := ValidateShipping(d); err != nil {
		return err
	}
	s.Shipping = &d
	s.Step = StepPayment
	s.UpdatedAt = time.Now()
	return nil
}

// CanPay indica si la sesión está lista para el paso de pago.
func (s *Session) CanPay() bool {
	return s.Step == StepPayment && s.Shipping != nil && len(s.Cart.Items) > 0
}

// Confirm registra el pedido materializado, vacía el carrito y deja la sesión
// en el paso terminal.
func (s *Session) Confirm(order *entity.Order) {
	s.Order = order
	s.Cart = cart.State{}
	s.Step = StepConfirmation
	s.UpdatedAt = time.Now()
}
