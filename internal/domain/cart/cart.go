// Package cart implementa el carrito de compras como una función de
// transición de estados pura: Reduce(estado, acción) -> (estado', avisos).
// Toda regla de stock y de límite de compra vive aquí; la capa de aplicación
// sólo persiste el estado resultante en la sesión.
package cart

import (
	"fmt"

	"github.com/jhoicas/KwikEMart-api/internal/domain/entity"
)

// Tipos de acción del carrito.
const (
	ActionAddItem        = "ADD_ITEM"
	ActionRemoveItem     = "REMOVE_ITEM"
	ActionUpdateQuantity = "UPDATE_QUANTITY"
	ActionToggleCart     = "TOGGLE_CART"
	ActionClearCart      = "CLEAR_CART"
)

// Severidades de los avisos que acompañan cada mutación (equivalen a los
// toasts de la tienda: el cliente decide cómo mostrarlos).
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notice aviso para el usuario generado por una mutación del carrito.
type Notice struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Item línea del carrito: snapshot del producto más la cantidad elegida.
// Invariante: 0 < Quantity <= min(Product.Stock, límite global de compra).
type Item struct {
	Product  entity.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// State estado del carrito.
type State struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"isOpen"`
}

// Action acción a aplicar sobre el carrito. Según Type se usan unos campos u otros:
//   - ADD_ITEM: Product (obligatorio) y Quantity (0 => 1).
//   - REMOVE_ITEM: ProductID.
//   - UPDATE_QUANTITY: ProductID y Quantity.
//   - TOGGLE_CART, CLEAR_CART: sin payload.
type Action struct {
	Type      string
	Product   *entity.Product
	ProductID string
	Quantity  int
}

// Limits reglas globales que acotan el carrito.
type Limits struct {
	MaxPurchase int // máximo de unidades de un mismo producto
}

// canAddMore verifica que añadir requested unidades sobre current respete el
// stock del producto y el límite global.
func canAddMore(p *entity.Product, current, requested int, limits Limits) bool {
	if p.Stock <= 0 {
		return false
	}
	if current+requested > p.Stock {
		return false
	}
	if current+requested > limits.MaxPurchase {
		return false
	}
	return true
}

// Reduce aplica la acción y devuelve el nuevo estado junto con los avisos
// para el usuario. Nunca muta el estado recibido.
func Reduce(s State, a Action, limits Limits) (State, []Notice) {
	switch a.Type {
	case ActionAddItem:
		return reduceAdd(s, a, limits)
	case ActionRemoveItem:
		return reduceRemove(s, a)
	case ActionUpdateQuantity:
		return reduceUpdateQuantity(s, a, limits)
	case ActionToggleCart:
		next := cloneState(s)
		next.IsOpen = !next.IsOpen
		return next, nil
	case ActionClearCart:
		return reduceClear(s)
	}
	return s, nil
}

func reduceAdd(s State, a Action, limits Limits) (State, []Notice) {
	if a.Product == nil {
		return s, nil
	}
	qty := a.Quantity
	if qty <= 0 {
		qty = 1
	}

	next := cloneState(s)
	for i := range next.Items {
		if next.Items[i].Product.ID != a.Product.ID {
			continue
		}
		// El producto ya está en el carrito: incrementar bajo las mismas reglas
		if !canAddMore(a.Product, next.Items[i].Quantity, qty, limits) {
			return s, []Notice{stockLimitNotice(a.Product, limits)}
		}
		next.Items[i].Quantity += qty
		return next, []Notice{{
			Message:  fmt.Sprintf("%s añadido al carrito", a.Product.Name),
			Severity: SeveritySuccess,
		}}
	}

	// Producto nuevo
	if !canAddMore(a.Product, 0, qty, limits) {
		return s, []Notice{stockLimitNotice(a.Product, limits)}
	}
	next.Items = append(next.Items, Item{Product: *a.Product, Quantity: qty})
	return next, []Notice{{
		Message:  fmt.Sprintf("%s añadido al carrito", a.Product.Name),
		Severity: SeveritySuccess,
	}}
}

func reduceRemove(s State, a Action) (State, []Notice) {
	var notices []Notice
	next := cloneState(s)
	kept := next.Items[:0]
	for _, item := range next.Items {
		if item.Product.ID == a.ProductID {
			notices = append(notices, Notice{
				Message:  fmt.Sprintf("%s eliminado del carrito", item.Product.Name),
				Severity: SeverityWarning,
			})
			continue
		}
		kept = append(kept, item)
	}
	next.Items = kept
	if len(notices) == 0 {
		return s, nil
	}
	return next, notices
}

func reduceUpdateQuantity(s State, a Action, limits Limits) (State, []Notice) {
	idx := -1
	for i := range s.Items {
		if s.Items[i].Product.ID == a.ProductID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, nil
	}

	next := cloneState(s)
	item := &next.Items[idx]
	name := item.Product.Name

	// Cantidad 0 o negativa elimina el producto
	if a.Quantity <= 0 {
		next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
		return next, []Notice{{
			Message:  fmt.Sprintf("%s eliminado del carrito", name),
			Severity: SeverityWarning,
		}}
	}

	// Por encima del máximo permitido: fijar a min(stock, límite global)
	max := item.Product.MaxPurchaseQuantity(limits.MaxPurchase)
	if a.Quantity > max {
		item.Quantity = max
		if item.Product.Stock < limits.MaxPurchase {
			return next, []Notice{{
				Message:  fmt.Sprintf("No puedes añadir más de %d unidades de %q (stock disponible).", item.Product.Stock, name),
				Severity: SeverityWarning,
			}}
		}
		return next, []Notice{{
			Message:  fmt.Sprintf("No puedes comprar más de %d unidades de un mismo producto.", limits.MaxPurchase),
			Severity: SeverityWarning,
		}}
	}

	increased := a.Quantity > item.Quantity
	item.Quantity = a.Quantity
	if increased {
		return next, []Notice{{
			Message:  fmt.Sprintf("Cantidad de %s aumentada a %d", name, a.Quantity),
			Severity: SeveritySuccess,
		}}
	}
	return next, []Notice{{
		Message:  fmt.Sprintf("Cantidad de %s reducida a %d", name, a.Quantity),
		Severity: SeverityWarning,
	}}
}

func reduceClear(s State) (State, []Notice) {
	next := cloneState(s)
	hadItems := len(next.Items) > 0
	next.Items = nil
	next.IsOpen = false
	if !hadItems {
		return next, nil
	}
	return next, []Notice{{
		Message:  "Se ha vaciado el carrito",
		Severity: SeverityWarning,
	}}
}

func stockLimitNotice(p *entity.Product, limits Limits) Notice {
	if p.Stock <= 0 {
		return Notice{
			Message:  fmt.Sprintf("%q está agotado.", p.Name),
			Severity: SeverityWarning,
		}
	}
	max := p.MaxPurchaseQuantity(limits.MaxPurchase)
	return Notice{
		Message:  fmt.Sprintf("Sólo puedes llevar %d unidades de %q.", max, p.Name),
		Severity: SeverityWarning,
	}
}

// TotalUnits suma de cantidades de todas las líneas.
func (s State) TotalUnits() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// Find devuelve la línea del producto o nil.
func (s State) Find(productID string) *Item {
	for i := range s.Items {
		if s.Items[i].Product.ID == productID {
			return &s.Items[i]
		}
	}
	return nil
}

// cloneState copia el estado (slice incluido) para no mutar el original.
func cloneState(s State) State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	return State{Items: items, IsOpen: s.IsOpen}
}
