package records

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/enums"
)

// Stock is a product's running balance record, lazily created on the first
// movement.
type Stock struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"product_id,omitempty"`
	InitialQty float64 `json:"initial_qty"`
	CurrentQty float64 `json:"current_qty"`
	LastUpdate string  `json:"last_update,omitempty"`
}

func StockFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Stock {
	flat := m.Flatten(ctx, rec)
	return Stock{
		ID:         rec.ID,
		ProductID:  flat.FirstID("Product"),
		InitialQty: flat.NumberOrZero("Initial Qty"),
		CurrentQty: flat.NumberOrZero("Current Qty"),
		LastUpdate: flat.Text("Last Update"),
	}
}

func (s Stock) Properties() docstore.Properties {
	props := docstore.Properties{
		"Product":     docstore.Relation(s.ProductID),
		"Initial Qty": docstore.Number(s.InitialQty),
		"Current Qty": docstore.Number(s.CurrentQty),
	}
	if s.LastUpdate != "" {
		props["Last Update"] = docstore.DateISO(s.LastUpdate)
	}
	return props
}

// StockMovement is one append-only ledger entry. Quantity is always the
// absolute amount moved; direction lives in Type.
type StockMovement struct {
	ID        string             `json:"id"`
	Date      string             `json:"date,omitempty"`
	ProductID string             `json:"product_id,omitempty"`
	Type      enums.MovementType `json:"type,omitempty"`
	Quantity  float64            `json:"quantity"`
	Notes     string             `json:"notes,omitempty"`
	OrderID   string             `json:"order_id,omitempty"`
}

func StockMovementFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) StockMovement {
	flat := m.Flatten(ctx, rec)
	return StockMovement{
		ID:        rec.ID,
		Date:      flat.Text("Date"),
		ProductID: flat.FirstID("Product"),
		Type:      enums.MovementType(flat.Text("Type")),
		Quantity:  flat.NumberOrZero("Quantity"),
		Notes:     flat.Text("Notes"),
		OrderID:   flat.FirstID("Order"),
	}
}

func (mv StockMovement) Properties() docstore.Properties {
	props := docstore.Properties{
		"Date":     docstore.DateISO(mv.Date),
		"Product":  docstore.Relation(mv.ProductID),
		"Type":     docstore.Select(mv.Type.String()),
		"Quantity": docstore.Number(mv.Quantity),
		"Notes":    docstore.Rich(mv.Notes),
	}
	if mv.OrderID != "" {
		props["Order"] = docstore.Relation(mv.OrderID)
	}
	return props
}
