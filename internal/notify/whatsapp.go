package notify

import (
	"fmt"
	"net/url"
	"strings"

	"designflow-backend/internal/models"
)

// BuildWhatsAppLink returns a click-to-chat URL the admin can open to
// message the client about a status change. Non-digits are stripped from
// the mobile number first.
func BuildWhatsAppLink(mobile string, status models.Status) string {
	var digits strings.Builder
	for _, r := range mobile {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	text := url.QueryEscape(fmt.Sprintf("Order Update: %s", status))
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", digits.String(), text)
}

// BuildWhatsAppHelpLink returns a click-to-chat URL for a client asking
// about their order.
func BuildWhatsAppHelpLink(adminNumber, orderID string) string {
	text := url.QueryEscape(fmt.Sprintf("Help with order %s", orderID))
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s", adminNumber, text)
}
