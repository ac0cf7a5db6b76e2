package notifier

import (
	"fmt"
	"html"
	"strings"

	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/shopspring/decimal"
)

// Subject returns the email subject line for a new order.
func Subject(order orders.Order) string {
	return fmt.Sprintf("Nuevo Pedido de %s", order.CustomerDetails.Name)
}

// RenderText renders the plain-text order summary.
func RenderText(order orders.Order) string {
	var b strings.Builder
	b.WriteString("Nuevo Pedido de Healthy Breads\n\n")
	b.WriteString("Cliente:\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", order.CustomerDetails.Name)
	fmt.Fprintf(&b, "- Teléfono: %s\n", order.CustomerDetails.Phone)
	fmt.Fprintf(&b, "- Dirección: %s\n", order.CustomerDetails.Address)
	b.WriteString("\nProductos:\n")
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(itemQty(item))
		fmt.Fprintf(&b, "- %s (%dx) - $%s\n", item.Name, item.Quantity, lineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: $%s\n", order.TotalAmount.StringFixed(2))
	return b.String()
}

// RenderHTML renders the HTML order summary.
func RenderHTML(order orders.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Nuevo Pedido de %s</h1>", html.EscapeString(order.CustomerDetails.Name))
	b.WriteString("<h2>Detalles del Pedido:</h2>")
	fmt.Fprintf(&b, "<p>Cliente: %s</p>", html.EscapeString(order.CustomerDetails.Name))
	fmt.Fprintf(&b, "<p>Teléfono: %s</p>", html.EscapeString(order.CustomerDetails.Phone))
	fmt.Fprintf(&b, "<p>Dirección: %s</p>", html.EscapeString(order.CustomerDetails.Address))
	b.WriteString("<h3>Productos:</h3><ul>")
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(itemQty(item))
		fmt.Fprintf(&b, "<li>%s - Cantidad: %d - $%s</li>",
			html.EscapeString(item.Name), item.Quantity, lineTotal.StringFixed(2))
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "<p><strong>Total: $%s</strong></p>", order.TotalAmount.StringFixed(2))
	return b.String()
}

func itemQty(item orders.OrderItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.Quantity))
}
