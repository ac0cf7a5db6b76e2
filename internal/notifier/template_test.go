package notifier

import (
	"strings"
	"testing"
	"time"

	"github.com/jlizarraga/healthybreads-backend/internal/orders"
	"github.com/shopspring/decimal"
)

func sampleOrder() orders.Order {
	return orders.Order{
		ID:   "1717243200000",
		Date: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Items: []orders.OrderItem{
			{ProductID: "platano", Name: "Pan de Plátano", Quantity: 2, UnitPrice: decimal.NewFromInt(40)},
			{ProductID: "datil", Name: "Pan de Dátil", Quantity: 1, UnitPrice: decimal.NewFromInt(40)},
		},
		CustomerDetails: orders.CustomerDetails{Name: "Ana", Phone: "555-0101", Address: "Calle 1 #23"},
		TotalAmount:     decimal.NewFromInt(120),
	}
}

func TestSubjectCarriesCustomerName(t *testing.T) {
	t.Parallel()

	if got := Subject(sampleOrder()); got != "Nuevo Pedido de Ana" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestRenderTextIncludesLinesAndTotal(t *testing.T) {
	t.Parallel()

	text := RenderText(sampleOrder())
	for _, want := range []string{
		"Nuevo Pedido de Healthy Breads",
		"- Nombre: Ana",
		"- Teléfono: 555-0101",
		"- Dirección: Calle 1 #23",
		"- Pan de Plátano (2x) - $80.00",
		"- Pan de Dátil (1x) - $40.00",
		"Total: $120.00",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("text summary missing %q:\n%s", want, text)
		}
	}
}

func TestRenderHTMLEscapesCustomerInput(t *testing.T) {
	t.Parallel()

	order := sampleOrder()
	order.CustomerDetails.Name = `Ana <script>alert("x")</script>`

	html := RenderHTML(order)
	if strings.Contains(html, "<script>") {
		t.Fatalf("customer input must be escaped:\n%s", html)
	}
	if !strings.Contains(html, "Cantidad: 2") {
		t.Fatalf("html summary missing item quantity:\n%s", html)
	}
	if !strings.Contains(html, "<strong>Total: $120.00</strong>") {
		t.Fatalf("html summary missing total:\n%s", html)
	}
}
