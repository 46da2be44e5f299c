package records

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/enums"
)

// Order is a sale header; Total starts at zero and is back-filled once all
// items are composed.
type Order struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Date          string              `json:"date,omitempty"`
	StoreID       string              `json:"store_id,omitempty"`
	CustomerID    string              `json:"customer_id,omitempty"`
	PaymentMethod enums.PaymentMethod `json:"payment_method,omitempty"`
	Status        enums.OrderStatus   `json:"status,omitempty"`
	Total         float64             `json:"total"`
}

func OrderFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Order {
	flat := m.Flatten(ctx, rec)
	return Order{
		ID:            rec.ID,
		Title:         flat.Text("Order ID"),
		Date:          flat.Text("Date"),
		StoreID:       flat.FirstID("Store"),
		CustomerID:    flat.FirstID("Customer"),
		PaymentMethod: enums.PaymentMethod(flat.Text("Payment Method")),
		Status:        enums.OrderStatus(flat.Text("Status")),
		Total:         flat.NumberOrZero("Total Value"),
	}
}

func (o Order) Properties() docstore.Properties {
	return docstore.Properties{
		"Order ID":       docstore.Title(o.Title),
		"Date":           docstore.DateISO(o.Date),
		"Store":          docstore.Relation(o.StoreID),
		"Customer":       docstore.Relation(o.CustomerID),
		"Payment Method": docstore.Select(o.PaymentMethod.String()),
		"Status":         docstore.Select(o.Status.String()),
		"Total Value":    docstore.Number(o.Total),
	}
}

// OrderItem is one product line on an order. SuggestedPrice is a computed
// rollup and is never written back.
type OrderItem struct {
	ID             string  `json:"id"`
	OrderID        string  `json:"order_id,omitempty"`
	ProductID      string  `json:"product_id,omitempty"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"unit_price"`
	Total          float64 `json:"total"`
	SuggestedPrice float64 `json:"suggested_price,omitempty"`
}

func OrderItemFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) OrderItem {
	flat := m.Flatten(ctx, rec)
	return OrderItem{
		ID:             rec.ID,
		OrderID:        flat.FirstID("Order"),
		ProductID:      flat.FirstID("Product"),
		Quantity:       flat.NumberOrZero("Quantity"),
		UnitPrice:      flat.NumberOrZero("Unit Price"),
		Total:          flat.NumberOrZero("Total"),
		SuggestedPrice: flat.NumberOrZero("Suggested Price"),
	}
}

func (i OrderItem) Properties() docstore.Properties {
	return docstore.Properties{
		"Order":      docstore.Relation(i.OrderID),
		"Product":    docstore.Relation(i.ProductID),
		"Quantity":   docstore.Number(i.Quantity),
		"Unit Price": docstore.Number(i.UnitPrice),
		"Total":      docstore.Number(i.Total),
	}
}
