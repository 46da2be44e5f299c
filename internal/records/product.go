package records

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
)

// Product is a catalog listing.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	SalePrice   *float64 `json:"sale_price"`
	SKU         string   `json:"sku,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	PrintTime   *float64 `json:"print_time,omitempty"`
	Archived    bool     `json:"archived,omitempty"`
}

func ProductFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Product {
	flat := m.Flatten(ctx, rec)
	return Product{
		ID:          rec.ID,
		Name:        flat.Text("Product"),
		SalePrice:   numberPtr(flat, "Sale Price"),
		SKU:         flat.Text("SKU"),
		CategoryIDs: flat.IDs("Category"),
		PrintTime:   numberPtr(flat, "Print Time"),
		Archived:    rec.Archived,
	}
}

func (p Product) Properties() docstore.Properties {
	props := docstore.Properties{
		"Product": docstore.Title(p.Name),
		"SKU":     docstore.Rich(p.SKU),
	}
	if p.SalePrice != nil {
		props["Sale Price"] = docstore.Number(*p.SalePrice)
	}
	if len(p.CategoryIDs) > 0 {
		props["Category"] = docstore.Relation(p.CategoryIDs...)
	}
	if p.PrintTime != nil {
		props["Print Time"] = docstore.Number(*p.PrintTime)
	}
	return props
}

// Category groups products; records hold only the display name.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func CategoryFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Category {
	flat := m.Flatten(ctx, rec)
	return Category{ID: rec.ID, Name: flat.Text("Name")}
}

func (c Category) Properties() docstore.Properties {
	return docstore.Properties{"Name": docstore.Title(c.Name)}
}

func numberPtr(flat Flat, key string) *float64 {
	if v, ok := flat.Number(key); ok {
		return &v
	}
	return nil
}
