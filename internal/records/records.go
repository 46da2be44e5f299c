// Package records converts raw document property bags into flat, typed
// views and back. Flattening dispatches on each property's declared type;
// the typed entity structs pair a FromRecord decoder with a Properties
// builder so declared scalar fields survive a full round trip.
package records

import (
	"context"
	"fmt"
	"time"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// Flat is a record's property bag keyed by logical field name, with every
// value already decoded to its plain Go shape.
type Flat map[string]any

// Text returns the string value for key, or "" when absent or null.
func (f Flat) Text(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Number returns the numeric value for key and whether one was present.
func (f Flat) Number(key string) (float64, bool) {
	v, ok := f[key].(float64)
	return v, ok
}

// NumberOrZero returns the numeric value for key, treating absent or null
// as zero.
func (f Flat) NumberOrZero(key string) float64 {
	v, _ := f.Number(key)
	return v
}

// IDs returns the related record ids for key, or an empty slice.
func (f Flat) IDs(key string) []string {
	if v, ok := f[key].([]string); ok {
		return v
	}
	return nil
}

// FirstID returns the first related record id for key, or "".
func (f Flat) FirstID(key string) string {
	ids := f.IDs(key)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// Mapper flattens records using the configured locale for timestamp fields.
type Mapper struct {
	logg       *logger.Logger
	location   *time.Location
	dateFormat string
}

// NewMapper validates the locale settings and builds a mapper.
func NewMapper(cfg config.LocaleConfig, logg *logger.Logger) (*Mapper, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	if cfg.DateFormat == "" {
		return nil, fmt.Errorf("date format is required")
	}
	return &Mapper{logg: logg, location: location, dateFormat: cfg.DateFormat}, nil
}

// Flatten decodes every property of rec into its plain Go value. Properties
// with an unrecognized type flatten to nil and are logged so schema drift
// stays visible.
func (m *Mapper) Flatten(ctx context.Context, rec *docstore.Record) Flat {
	flat := make(Flat, len(rec.Properties))
	for name, value := range rec.Properties {
		flat[name] = m.flattenValue(ctx, name, value)
	}
	return flat
}

func (m *Mapper) flattenValue(ctx context.Context, name string, value docstore.Value) any {
	switch value.Type {
	case docstore.TypeTitle:
		return firstText(value.Title)
	case docstore.TypeRichText:
		return firstText(value.RichText)
	case docstore.TypeNumber:
		if value.Number == nil {
			return nil
		}
		return *value.Number
	case docstore.TypeDate:
		if value.Date == nil {
			return nil
		}
		return value.Date.Start
	case docstore.TypeSelect:
		if value.Select == nil {
			return nil
		}
		return value.Select.Name
	case docstore.TypeRelation:
		ids := make([]string, 0, len(value.Relation))
		for _, ref := range value.Relation {
			ids = append(ids, ref.ID)
		}
		return ids
	case docstore.TypeRollup:
		return flattenRollup(value.Rollup)
	case docstore.TypeURL:
		return deref(value.URL)
	case docstore.TypeEmail:
		return deref(value.Email)
	case docstore.TypePhoneNumber:
		return deref(value.PhoneNumber)
	case docstore.TypeUniqueID:
		if value.UniqueID == nil {
			return nil
		}
		return fmt.Sprintf("%s-%d", value.UniqueID.Prefix, value.UniqueID.Number)
	case docstore.TypeCreatedTime:
		return m.formatTimestamp(ctx, name, value.CreatedTime)
	case docstore.TypeLastEditedTime:
		return m.formatTimestamp(ctx, name, value.LastEditedTime)
	case docstore.TypeCreatedBy:
		if len(value.CreatedBy) == 0 {
			return nil
		}
		return value.CreatedBy
	default:
		m.logg.Warn(
			m.logg.WithFields(ctx, map[string]any{"property": name, "property_type": value.Type}),
			"unrecognized property type, flattening to null",
		)
		return nil
	}
}

// flattenRollup follows the nested type tag: array rollups yield the first
// element's number (via formula or number, zero when the array is empty),
// number rollups yield their direct value.
func flattenRollup(rollup *docstore.RollupValue) any {
	if rollup == nil {
		return nil
	}
	switch rollup.Type {
	case "number":
		if rollup.Number == nil {
			return nil
		}
		return *rollup.Number
	case "array":
		if len(rollup.Array) == 0 {
			return float64(0)
		}
		first := rollup.Array[0]
		if first.Formula != nil && first.Formula.Number != nil {
			return *first.Formula.Number
		}
		if first.Number != nil {
			return *first.Number
		}
		return float64(0)
	default:
		return nil
	}
}

func (m *Mapper) formatTimestamp(ctx context.Context, name string, raw *string) any {
	if raw == nil || *raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		m.logg.Warn(
			m.logg.WithFields(ctx, map[string]any{"property": name, "value": *raw}),
			"unparseable timestamp, flattening to null",
		)
		return nil
	}
	return parsed.In(m.location).Format(m.dateFormat)
}

func firstText(segments []docstore.RichText) string {
	if len(segments) == 0 {
		return ""
	}
	if segments[0].PlainText != "" {
		return segments[0].PlainText
	}
	if segments[0].Text != nil {
		return segments[0].Text.Content
	}
	return ""
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
