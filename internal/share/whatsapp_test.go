package share

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		Folio:         "HV0034921",
		SubClientName: "Pedro Ramírez",
		Amount:        decimal.NewFromInt(2500),
		ExpiresAt:     time.Date(2026, time.September, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestCompose(t *testing.T) {
	text := Compose(testMessage())

	assert.Contains(t, text, "*Folio:* HV0034921")
	assert.Contains(t, text, "*Cliente:* Pedro Ramírez")
	assert.Contains(t, text, "*Monto:* $2,500 pesos")
	assert.Contains(t, text, "*Válido hasta:* 15 de septiembre de 2026")
	assert.Contains(t, text, "Válido por 10 días")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500", "500"},
		{"2500", "2,500"},
		{"5000", "5,000"},
		{"1234.50", "1,234.50"},
		{"999.99", "999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestLinks_WithoutPhone(t *testing.T) {
	native, web := Links(testMessage(), "")

	assert.True(t, strings.HasPrefix(native, "whatsapp://send?"))
	assert.True(t, strings.HasPrefix(web, "https://wa.me/?"))
	assert.NotContains(t, native, "phone=")
}

func TestLinks_PhoneGetsCountryCode(t *testing.T) {
	native, web := Links(testMessage(), "555-123-4567")

	nu, err := url.Parse(native)
	require.NoError(t, err)
	assert.Equal(t, "525551234567", nu.Query().Get("phone"))
	assert.Contains(t, web, "https://wa.me/525551234567?")

	// an already-prefixed number is left alone
	native2, _ := Links(testMessage(), "52 555 123 4567")
	nu2, err := url.Parse(native2)
	require.NoError(t, err)
	assert.Equal(t, "525551234567", nu2.Query().Get("phone"))
}

func TestLinks_TextRoundTrips(t *testing.T) {
	msg := testMessage()
	native, _ := Links(msg, "")

	nu, err := url.Parse(native)
	require.NoError(t, err)
	assert.Equal(t, Compose(msg), nu.Query().Get("text"))
}
