package handoff

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const chatBaseURL = "https://wa.me/"

// OrderMessage renders the pre-filled chat text for a submitted order.
func OrderMessage(order *model.Order, deliveryLines []string) string {
	lines := []string{fmt.Sprintf("*Order from %s*", order.CustomerName), ""}

	for _, item := range order.Items {
		lines = append(lines, fmt.Sprintf("• %s (%s, %s) x %d = ₹%d",
			item.ProductName, item.ProductBrand, item.ProductUnit, item.Quantity, item.Subtotal))
	}

	lines = append(lines, "", fmt.Sprintf("*Total: ₹%d*", order.TotalAmount))

	if order.SpecialRequest != nil && strings.TrimSpace(*order.SpecialRequest) != "" {
		lines = append(lines, "", "📝 Special request: "+strings.TrimSpace(*order.SpecialRequest))
	}

	if len(deliveryLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, deliveryLines...)
	}

	return strings.Join(lines, "\n")
}

func DeliveredMessage(customerName, storeName string) string {
	return fmt.Sprintf("Hi %s! 🎉 Your order has been *delivered* successfully. Thank you for ordering from %s! 🙏",
		customerName, storeName)
}

// componentUnescaper turns url.QueryEscape output into URI-component encoding:
// spaces become %20 and the marks !'()* stay literal.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// ChatLink builds a click-to-chat URL with text pre-filled, encoded as a URI component.
func ChatLink(number, text string) string {
	return chatBaseURL + digits(number) + "?text=" + encodeComponent(text)
}

func encodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// NormalizePhone strips non-digits and prefixes countryCode when missing.
// Returns "" when no digits remain.
func NormalizePhone(phone, countryCode string) string {
	d := digits(phone)
	if d == "" {
		return ""
	}
	if countryCode != "" && !strings.HasPrefix(d, countryCode) {
		d = countryCode + d
	}
	return d
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
