package docstore

import (
	"encoding/json"
	"testing"
)

func TestValueMarshalEmitsOnlyActiveVariant(t *testing.T) {
	raw, err := json.Marshal(Number(12.5))
	if err != nil {
		t.Fatalf("marshal number: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != TypeNumber {
		t.Fatalf("expected type %q, got %v", TypeNumber, decoded["type"])
	}
	if decoded["number"] != 12.5 {
		t.Fatalf("expected number 12.5, got %v", decoded["number"])
	}
	if _, ok := decoded["title"]; ok {
		t.Fatalf("inactive variants must not be emitted: %s", raw)
	}
}

func TestValueMarshalEmitsExplicitNullForClearedSelect(t *testing.T) {
	raw, err := json.Marshal(Select(""))
	if err != nil {
		t.Fatalf("marshal cleared select: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	value, present := decoded["select"]
	if !present {
		t.Fatalf("cleared select must serialize an explicit null: %s", raw)
	}
	if value != nil {
		t.Fatalf("expected null select, got %v", value)
	}
}

func TestValueMarshalEmptyRelationStaysEmptyList(t *testing.T) {
	raw, err := json.Marshal(Relation(""))
	if err != nil {
		t.Fatalf("marshal relation: %v", err)
	}
	if string(raw) != `{"relation":[],"type":"relation"}` {
		t.Fatalf("unexpected relation payload: %s", raw)
	}
}

func TestValueRoundTripPreservesVariant(t *testing.T) {
	tests := []struct {
		name  string
		value Value
	}{
		{name: "title", value: Title("Benchy")},
		{name: "rich_text", value: Rich("manual movement")},
		{name: "number", value: Number(42)},
		{name: "date", value: DateISO("2024-01-01")},
		{name: "select", value: Select("In")},
		{name: "relation", value: Relation("rec-1", "rec-2")},
		{name: "url", value: URL("https://example.com")},
		{name: "email", value: Email("ana@example.com")},
		{name: "phone", value: Phone("+55 11 99999-0000")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(tc.value)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Value
			if err := json.Unmarshal(raw, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back.Type != tc.value.Type {
				t.Fatalf("type lost in round trip: want %q got %q", tc.value.Type, back.Type)
			}
		})
	}
}

func TestFilterConstructors(t *testing.T) {
	byTitle := TitleEquals("Customer", "Ana")
	if byTitle.Property != "Customer" || byTitle.TitleEquals == nil || *byTitle.TitleEquals != "Ana" {
		t.Fatalf("unexpected title filter %+v", byTitle)
	}
	if byTitle.RelationContains != nil {
		t.Fatalf("title filter must not set relation condition")
	}

	byRelation := RelationContains("Product", "rec-9")
	if byRelation.Property != "Product" || byRelation.RelationContains == nil || *byRelation.RelationContains != "rec-9" {
		t.Fatalf("unexpected relation filter %+v", byRelation)
	}
}
