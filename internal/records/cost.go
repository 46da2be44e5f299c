package records

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/enums"
)

// Cost is an operating expense, optionally tied to a product.
type Cost struct {
	ID        string         `json:"id"`
	Date      string         `json:"date,omitempty"`
	Type      enums.CostType `json:"type,omitempty"`
	Value     float64        `json:"value"`
	ProductID string         `json:"product_id,omitempty"`
	Notes     string         `json:"notes,omitempty"`
}

func CostFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Cost {
	flat := m.Flatten(ctx, rec)
	return Cost{
		ID:        rec.ID,
		Date:      flat.Text("Date"),
		Type:      enums.CostType(flat.Text("Cost Type")),
		Value:     flat.NumberOrZero("Value"),
		ProductID: flat.FirstID("Product"),
		Notes:     flat.Text("Notes"),
	}
}

func (c Cost) Properties() docstore.Properties {
	props := docstore.Properties{
		"Date":      docstore.DateISO(c.Date),
		"Cost Type": docstore.Select(c.Type.String()),
		"Value":     docstore.Number(c.Value),
		"Notes":     docstore.Rich(c.Notes),
	}
	if c.ProductID != "" {
		props["Product"] = docstore.Relation(c.ProductID)
	}
	return props
}
