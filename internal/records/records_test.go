package records

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

func newTestMapper(t *testing.T) *Mapper {
	t.Helper()
	return newTestMapperWithOutput(t, io.Discard)
}

func newTestMapperWithOutput(t *testing.T, out io.Writer) *Mapper {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: out})
	mapper, err := NewMapper(config.LocaleConfig{
		Timezone:   "America/Sao_Paulo",
		DateFormat: "02/01/2006 15:04:05",
	}, logg)
	if err != nil {
		t.Fatalf("NewMapper error: %v", err)
	}
	return mapper
}

func floatPtr(v float64) *float64 { return &v }

func TestFlattenScalarTypes(t *testing.T) {
	mapper := newTestMapper(t)

	rec := &docstore.Record{
		ID: "rec-1",
		Properties: docstore.Properties{
			"Name":     docstore.Title("Benchy"),
			"Notes":    docstore.Rich("first print"),
			"Price":    docstore.Number(12.5),
			"Null":     {Type: docstore.TypeNumber},
			"Date":     docstore.DateISO("2024-01-01"),
			"Type":     docstore.Select("In"),
			"Cleared":  {Type: docstore.TypeSelect},
			"Product":  docstore.Relation("p1", "p2"),
			"Website":  docstore.URL("https://example.com"),
			"Email":    docstore.Email("ana@example.com"),
			"Phone":    docstore.Phone("+55 11 99999-0000"),
			"Code":     {Type: docstore.TypeUniqueID, UniqueID: &docstore.UniqueID{Prefix: "ORD", Number: 7}},
		},
	}

	flat := mapper.Flatten(context.Background(), rec)

	if got := flat.Text("Name"); got != "Benchy" {
		t.Fatalf("title: got %q", got)
	}
	if got := flat.Text("Notes"); got != "first print" {
		t.Fatalf("rich text: got %q", got)
	}
	if got, ok := flat.Number("Price"); !ok || got != 12.5 {
		t.Fatalf("number: got %v ok=%v", got, ok)
	}
	if flat["Null"] != nil {
		t.Fatalf("null number should stay null, got %v", flat["Null"])
	}
	if got := flat.Text("Date"); got != "2024-01-01" {
		t.Fatalf("date: got %q", got)
	}
	if got := flat.Text("Type"); got != "In" {
		t.Fatalf("select: got %q", got)
	}
	if flat["Cleared"] != nil {
		t.Fatalf("cleared select should be null, got %v", flat["Cleared"])
	}
	if ids := flat.IDs("Product"); len(ids) != 2 || ids[0] != "p1" || ids[1] != "p2" {
		t.Fatalf("relation: got %v", ids)
	}
	if got := flat.Text("Website"); got != "https://example.com" {
		t.Fatalf("url: got %q", got)
	}
	if got := flat.Text("Code"); got != "ORD-7" {
		t.Fatalf("unique id: got %q", got)
	}
}

func TestFlattenRollup(t *testing.T) {
	tests := []struct {
		name   string
		rollup *docstore.RollupValue
		want   any
	}{
		{
			name: "array with formula element",
			rollup: &docstore.RollupValue{
				Type: "array",
				Array: []docstore.RollupElement{{
					Type:    "formula",
					Formula: &docstore.FormulaValue{Type: "number", Number: floatPtr(42)},
				}},
			},
			want: float64(42),
		},
		{
			name: "array with plain number element",
			rollup: &docstore.RollupValue{
				Type:  "array",
				Array: []docstore.RollupElement{{Type: "number", Number: floatPtr(9.5)}},
			},
			want: float64(9.5),
		},
		{
			name:   "empty array defaults to zero",
			rollup: &docstore.RollupValue{Type: "array"},
			want:   float64(0),
		},
		{
			name:   "number rollup direct value",
			rollup: &docstore.RollupValue{Type: "number", Number: floatPtr(3)},
			want:   float64(3),
		},
		{
			name:   "absent rollup",
			rollup: nil,
			want:   nil,
		},
	}

	mapper := newTestMapper(t)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &docstore.Record{
				ID: "rec-1",
				Properties: docstore.Properties{
					"Suggested Price": {Type: docstore.TypeRollup, Rollup: tc.rollup},
				},
			}
			flat := mapper.Flatten(context.Background(), rec)
			if got := flat["Suggested Price"]; got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFlattenTimestampsUseConfiguredLocale(t *testing.T) {
	mapper := newTestMapper(t)

	created := "2024-01-01T12:00:00Z"
	rec := &docstore.Record{
		ID: "rec-1",
		Properties: docstore.Properties{
			"Created time": {Type: docstore.TypeCreatedTime, CreatedTime: &created},
		},
	}

	flat := mapper.Flatten(context.Background(), rec)
	// Sao Paulo is UTC-3: noon UTC renders as 09:00 local.
	if got := flat.Text("Created time"); got != "01/01/2024 09:00:00" {
		t.Fatalf("timestamp: got %q", got)
	}
}

func TestFlattenUnknownTypeLogsAndNulls(t *testing.T) {
	var buf bytes.Buffer
	mapper := newTestMapperWithOutput(t, &buf)

	rec := &docstore.Record{
		ID: "rec-1",
		Properties: docstore.Properties{
			"Mystery": {Type: "files"},
		},
	}

	flat := mapper.Flatten(context.Background(), rec)
	if flat["Mystery"] != nil {
		t.Fatalf("unknown type should flatten to null, got %v", flat["Mystery"])
	}
	if !strings.Contains(buf.String(), "unrecognized property type") {
		t.Fatalf("expected warn log, got %q", buf.String())
	}
}

func TestProductRoundTrip(t *testing.T) {
	mapper := newTestMapper(t)

	original := Product{
		Name:        "Benchy",
		SalePrice:   floatPtr(25),
		SKU:         "BN-01",
		CategoryIDs: []string{"cat-1"},
		PrintTime:   floatPtr(3.5),
	}

	rec := &docstore.Record{ID: "rec-1", Properties: original.Properties()}
	decoded := ProductFromRecord(context.Background(), mapper, rec)

	if decoded.Name != original.Name || decoded.SKU != original.SKU {
		t.Fatalf("text fields lost: %+v", decoded)
	}
	if decoded.SalePrice == nil || *decoded.SalePrice != 25 {
		t.Fatalf("sale price lost: %+v", decoded.SalePrice)
	}
	if decoded.PrintTime == nil || *decoded.PrintTime != 3.5 {
		t.Fatalf("print time lost: %+v", decoded.PrintTime)
	}
	if len(decoded.CategoryIDs) != 1 || decoded.CategoryIDs[0] != "cat-1" {
		t.Fatalf("category relation lost: %+v", decoded.CategoryIDs)
	}
}

func TestOrderRoundTrip(t *testing.T) {
	mapper := newTestMapper(t)

	original := Order{
		Title:         "ORD-20240101-120000",
		Date:          "2024-01-01",
		StoreID:       "store-1",
		CustomerID:    "cust-1",
		PaymentMethod: enums.PaymentMethodPIX,
		Status:        enums.OrderStatusPending,
		Total:         20,
	}

	rec := &docstore.Record{ID: "rec-1", Properties: original.Properties()}
	decoded := OrderFromRecord(context.Background(), mapper, rec)
	decoded.ID = ""

	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestStockMovementRoundTrip(t *testing.T) {
	mapper := newTestMapper(t)

	original := StockMovement{
		Date:      "2024-01-01",
		ProductID: "prod-1",
		Type:      enums.MovementTypeOut,
		Quantity:  2,
		Notes:     "Order ORD-1",
		OrderID:   "order-1",
	}

	rec := &docstore.Record{ID: "rec-1", Properties: original.Properties()}
	decoded := StockMovementFromRecord(context.Background(), mapper, rec)
	decoded.ID = ""

	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}

func TestCostRoundTrip(t *testing.T) {
	mapper := newTestMapper(t)

	original := Cost{
		Date:  "2024-02-10",
		Type:  enums.CostTypeMaterial,
		Value: 99.9,
		Notes: "PLA refill",
	}

	rec := &docstore.Record{ID: "rec-1", Properties: original.Properties()}
	decoded := CostFromRecord(context.Background(), mapper, rec)
	decoded.ID = ""

	if decoded != original {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", decoded, original)
	}
}
