package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"padelmania/internal/models"
	"padelmania/internal/pricing"
)

const (
	emptyCartMessage = "Hola, quisiera hacer una consulta sobre los productos."
	checkoutFooter   = "Quisiera coordinar el pago por transferencia. ¡Gracias!"
	qrSize           = 256
)

// Checkout is the order summary the customer sends over WhatsApp. Payment
// is arranged by hand, so nothing is charged here.
type Checkout struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type WhatsApp struct {
	number            string
	installments      int
	freeShippingAbove float64
}

func NewWhatsApp(number string, installments int, freeShippingAbove float64) *WhatsApp {
	return &WhatsApp{number: number, installments: installments, freeShippingAbove: freeShippingAbove}
}

func (w *WhatsApp) Checkout(items []models.CartItem, subtotal float64) Checkout {
	msg := w.message(items, subtotal)
	return Checkout{Message: msg, Link: w.link(msg)}
}

// QRCode encodes the checkout link as a PNG.
func (w *WhatsApp) QRCode(c Checkout) ([]byte, error) {
	png, err := qrcode.Encode(c.Link, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode checkout qr: %w", err)
	}
	return png, nil
}

func (w *WhatsApp) message(items []models.CartItem, subtotal float64) string {
	if len(items) == 0 {
		return emptyCartMessage
	}

	var sb strings.Builder
	sb.WriteString("¡Hola! Quiero hacer el siguiente pedido:\n\n")
	for _, it := range items {
		fmt.Fprintf(&sb, "• %d x %s - %s\n", it.Quantity, it.Title, pricing.FormatCurrency(it.LineTotal))
	}
	fmt.Fprintf(&sb, "\nTotal: %s\n", pricing.FormatCurrency(subtotal))
	fmt.Fprintf(&sb, "Hasta %s\n", pricing.CalculateInstallments(subtotal, w.installments).Description)

	ship := pricing.ShippingQuote(subtotal, w.freeShippingAbove)
	if ship.Free {
		sb.WriteString("Envío: GRATIS\n")
	} else {
		sb.WriteString("Envío: a coordinar\n")
	}

	sb.WriteString("\n")
	sb.WriteString(checkoutFooter)
	return sb.String()
}

func (w *WhatsApp) link(msg string) string {
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + w.number + "?text=" + text
}
