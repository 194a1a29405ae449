package checkout

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ShippingDetails datos de envío del paso shipping.
type ShippingDetails struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// CardDetails datos de tarjeta del paso payment (sólo para método card).
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"` // MM/YY
	CVV        string `json:"cvv"`
	NameOnCard string `json:"nameOnCard"`
}

var (
	zipCodeRe    = regexp.MustCompile(`^\d{5,6}$`)
	cardNumberRe = regexp.MustCompile(`^[0-9]{13,19}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// Errores de validación del checkout; los handlers los muestran tal cual al usuario.
var (
	ErrShippingIncomplete = errors.New("por favor completa todos los campos de envío")
	ErrInvalidZipCode     = errors.New("el código postal es inválido, debe contener 5 o 6 dígitos")
	ErrInvalidCardNumber  = errors.New("el número de tarjeta es inválido")
	ErrInvalidExpiry      = errors.New("la fecha de expiración debe tener el formato MM/YY")
	ErrCardExpired        = errors.New("la tarjeta está expirada")
	ErrInvalidCVV         = errors.New("el CVV es inválido")
	ErrEmptyCardName      = errors.New("el nombre en la tarjeta no puede estar vacío")
)

// ValidateShipping valida el paso de envío: todos los campos no vacíos y
// código postal de 5 o 6 dígitos.
func ValidateShipping(d ShippingDetails) error {
	if strings.TrimSpace(d.Address) == "" ||
		strings.TrimSpace(d.City) == "" ||
		strings.TrimSpace(d.State) == "" ||
		strings.TrimSpace(d.ZipCode) == "" {
		return ErrShippingIncomplete
	}
	if !zipCodeRe.MatchString(d.ZipCode) {
		return ErrInvalidZipCode
	}
	return nil
}

// ValidateCard valida los datos de tarjeta: número de 13 a 19 dígitos
// (ignorando espacios), expiración MM/YY no vencida al fin de mes, CVV de
// 3 o 4 dígitos y nombre no vacío.
func ValidateCard(d CardDetails, now time.Time) error {
	sanitized := strings.ReplaceAll(d.CardNumber, " ", "")
	if !cardNumberRe.MatchString(sanitized) {
		return ErrInvalidCardNumber
	}
	if !expiryRe.MatchString(d.ExpiryDate) {
		return ErrInvalidExpiry
	}
	if cardExpiry(d.ExpiryDate, now).Before(now) {
		return ErrCardExpired
	}
	if !cvvRe.MatchString(d.CVV) {
		return ErrInvalidCVV
	}
	if strings.TrimSpace(d.NameOnCard) == "" {
		return ErrEmptyCardName
	}
	return nil
}

// cardExpiry devuelve el último instante del mes de expiración. El año de dos
// dígitos se interpreta con una ventana deslizante de 20 años: por encima de
// now+20 se asume el siglo anterior (así "12/99" cuenta como 1999, vencida).
func cardExpiry(expiry string, now time.Time) time.Time {
	parts := strings.SplitN(expiry, "/", 2)
	month := int(parts[0][0]-'0')*10 + int(parts[0][1]-'0')
	yy := int(parts[1][0]-'0')*10 + int(parts[1][1]-'0')

	year := 2000 + yy
	if year > now.Year()+20 {
		year -= 100
	}

	// Primer día del mes siguiente menos un instante = fin del mes de expiración
	firstOfNext := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Second)
}
