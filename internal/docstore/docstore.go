// Package docstore defines the backend-agnostic document store surface the
// domain services are written against. Records live in remote collections,
// are identified by opaque ids, and carry a typed property bag. The adapter
// never caches and never retries; every call is one blocking round trip.
package docstore

import (
	"context"
	"encoding/json"
)

// Record is one document in a collection.
type Record struct {
	ID             string     `json:"id"`
	CreatedTime    string     `json:"created_time,omitempty"`
	LastEditedTime string     `json:"last_edited_time,omitempty"`
	Archived       bool       `json:"archived,omitempty"`
	Properties     Properties `json:"properties"`
}

// Properties is the typed property bag keyed by logical field name.
type Properties map[string]Value

// Value is a tagged variant; Type selects which payload field is meaningful.
type Value struct {
	Type           string          `json:"type,omitempty"`
	Title          []RichText      `json:"title,omitempty"`
	RichText       []RichText      `json:"rich_text,omitempty"`
	Number         *float64        `json:"number,omitempty"`
	Date           *DateValue      `json:"date,omitempty"`
	Select         *SelectOption   `json:"select,omitempty"`
	Relation       []RelationRef   `json:"relation,omitempty"`
	Rollup         *RollupValue    `json:"rollup,omitempty"`
	URL            *string         `json:"url,omitempty"`
	Email          *string         `json:"email,omitempty"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	UniqueID       *UniqueID       `json:"unique_id,omitempty"`
	CreatedTime    *string         `json:"created_time,omitempty"`
	LastEditedTime *string         `json:"last_edited_time,omitempty"`
	CreatedBy      json.RawMessage `json:"created_by,omitempty"`
}

// RichText is one text segment; writes set Text, reads also carry PlainText.
type RichText struct {
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

type TextContent struct {
	Content string `json:"content"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type RelationRef struct {
	ID string `json:"id"`
}

// RollupValue aggregates related records; Type is either "number" or "array".
type RollupValue struct {
	Type   string          `json:"type,omitempty"`
	Number *float64        `json:"number,omitempty"`
	Array  []RollupElement `json:"array,omitempty"`
}

// RollupElement is one aggregated entry inside an array rollup.
type RollupElement struct {
	Type    string        `json:"type,omitempty"`
	Number  *float64      `json:"number,omitempty"`
	Formula *FormulaValue `json:"formula,omitempty"`
}

type FormulaValue struct {
	Type   string   `json:"type,omitempty"`
	Number *float64 `json:"number,omitempty"`
}

type UniqueID struct {
	Prefix string `json:"prefix,omitempty"`
	Number int64  `json:"number"`
}

// Filter narrows a FindOne lookup. Exactly one condition is set.
type Filter struct {
	Property         string
	TitleEquals      *string
	RelationContains *string
}

// TitleEquals matches records whose title property equals value exactly.
func TitleEquals(property, value string) Filter {
	return Filter{Property: property, TitleEquals: &value}
}

// RelationContains matches records whose relation property references recordID.
func RelationContains(property, recordID string) Filter {
	return Filter{Property: property, RelationContains: &recordID}
}

// Store is the persistence surface. Implementations do not retry, do not
// cache, and surface absence as (nil, nil) from FindOne.
type Store interface {
	Create(ctx context.Context, collectionID string, props Properties) (*Record, error)
	Update(ctx context.Context, recordID string, props Properties) (*Record, error)
	Retrieve(ctx context.Context, recordID string) (*Record, error)
	FindOne(ctx context.Context, collectionID string, filter Filter) (*Record, error)
	// List returns the first page only; deeper pagination is not supported.
	List(ctx context.Context, collectionID string, pageSize int) ([]Record, error)
	Archive(ctx context.Context, recordID string) (*Record, error)
}
