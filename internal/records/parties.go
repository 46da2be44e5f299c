package records

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/enums"
)

// Customer is a buyer with optional contact details.
type Customer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func CustomerFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Customer {
	flat := m.Flatten(ctx, rec)
	return Customer{
		ID:      rec.ID,
		Name:    flat.Text("Customer"),
		Phone:   flat.Text("Phone"),
		Email:   flat.Text("Email"),
		Address: flat.Text("Address"),
	}
}

func (c Customer) Properties() docstore.Properties {
	return docstore.Properties{
		"Customer": docstore.Title(c.Name),
		"Phone":    docstore.Phone(c.Phone),
		"Email":    docstore.Email(c.Email),
		"Address":  docstore.Rich(c.Address),
	}
}

// Supplier is a vendor the business buys material from.
type Supplier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	CNPJ        string `json:"cnpj,omitempty"`
	Description string `json:"description,omitempty"`
}

func SupplierFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) Supplier {
	flat := m.Flatten(ctx, rec)
	return Supplier{
		ID:          rec.ID,
		Name:        flat.Text("Name"),
		Phone:       flat.Text("Phone"),
		Address:     flat.Text("Address"),
		Email:       flat.Text("Email"),
		CNPJ:        flat.Text("CNPJ"),
		Description: flat.Text("Description"),
	}
}

func (s Supplier) Properties() docstore.Properties {
	return docstore.Properties{
		"Name":        docstore.Title(s.Name),
		"Phone":       docstore.Phone(s.Phone),
		"Address":     docstore.Rich(s.Address),
		"Email":       docstore.Email(s.Email),
		"CNPJ":        docstore.Rich(s.CNPJ),
		"Description": docstore.Rich(s.Description),
	}
}

// StoreFront is a sales channel.
type StoreFront struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    enums.StoreType `json:"type,omitempty"`
	Website string          `json:"website,omitempty"`
}

func StoreFrontFromRecord(ctx context.Context, m *Mapper, rec *docstore.Record) StoreFront {
	flat := m.Flatten(ctx, rec)
	return StoreFront{
		ID:      rec.ID,
		Name:    flat.Text("Store"),
		Type:    enums.StoreType(flat.Text("Type")),
		Website: flat.Text("Website"),
	}
}

func (s StoreFront) Properties() docstore.Properties {
	return docstore.Properties{
		"Store":   docstore.Title(s.Name),
		"Type":    docstore.Select(s.Type.String()),
		"Website": docstore.URL(s.Website),
	}
}
