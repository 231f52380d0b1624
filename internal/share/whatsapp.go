// Package share renders the WhatsApp payload a distributor forwards to a
// sub-client after issuing a voucher.
package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// countryCode is prefixed onto national numbers for wa.me links.
const countryCode = "52"

// Message is the slice of a voucher the composer needs.
type Message struct {
	Folio         string
	SubClientName string
	Amount        decimal.Decimal
	ExpiresAt     time.Time
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// Compose renders the share text for a voucher.
func Compose(m Message) string {
	return fmt.Sprintf(`🎫 *VALE HÉRCULES* 🎫

📋 *Folio:* %s
👤 *Cliente:* %s
💰 *Monto:* $%s pesos
📅 *Válido hasta:* %s

✅ *Instrucciones:*
• Presenta este vale en cualquier sucursal
• Válido por 10 días desde su emisión
• Monto máximo: $5,000 pesos

🏪 *HérculesVale - Sistema Digital*`,
		m.Folio,
		m.SubClientName,
		formatAmount(m.Amount),
		formatDate(m.ExpiresAt),
	)
}

// Links builds the native deep link and the wa.me web fallback. The
// caller decides which one to open; phone is optional.
func Links(m Message, phone string) (native, web string) {
	text := Compose(m)

	nativeQuery := url.Values{"text": {text}}
	webQuery := url.Values{"text": {text}}

	webPath := ""
	if digits := digitsOnly(phone); digits != "" {
		if !strings.HasPrefix(digits, countryCode) {
			digits = countryCode + digits
		}
		nativeQuery.Set("phone", digits)
		webPath = digits
	}

	native = "whatsapp://send?" + nativeQuery.Encode()
	web = "https://wa.me/" + webPath + "?" + webQuery.Encode()
	return native, web
}

// formatDate renders an es-MX long date, e.g. "15 de septiembre de 2026".
func formatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// formatAmount groups the integer part with commas; cents are shown only
// when present.
func formatAmount(d decimal.Decimal) string {
	s := d.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		return b.String() + "." + frac
	}
	return b.String()
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
