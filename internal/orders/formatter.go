package orders

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const whatsAppBaseURL = "https://wa.me/"

// FormatOrderMessage renders the order confirmation the customer sends over
// WhatsApp. Pure and deterministic; prices use the Brazilian comma decimal.
func FormatOrderMessage(dishName, customerName, address, paymentMethod string, price decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("Olá! Gostaria de fazer um pedido:\n")
	fmt.Fprintf(&b, "- Prato: *%s*\n", dishName)
	fmt.Fprintf(&b, "- Nome: *%s*\n", customerName)
	fmt.Fprintf(&b, "- Endereço: *%s*\n", address)
	fmt.Fprintf(&b, "- Pagamento: *%s*\n", paymentMethod)
	fmt.Fprintf(&b, "- TOTAL: *R$ %s*", FormatPrice(price))
	return b.String()
}

// FormatPrice renders a price with two decimals and a comma separator.
func FormatPrice(price decimal.Decimal) string {
	return strings.ReplaceAll(price.StringFixed(2), ".", ",")
}

// BuildWhatsAppLink assembles the wa.me deep link carrying the encoded
// message. The destination keeps digits only, so numbers stored with
// punctuation ("+55 (11) 99999-0000") still resolve.
func BuildWhatsAppLink(number, message string) (string, error) {
	digits := digitsOnly(number)
	if digits == "" {
		return "", fmt.Errorf("whatsapp number is empty")
	}
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return whatsAppBaseURL + digits + "?text=" + encoded, nil
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
