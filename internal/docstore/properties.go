package docstore

// Property type discriminators used across backends and the record mappers.
const (
	TypeTitle          = "title"
	TypeRichText       = "rich_text"
	TypeNumber         = "number"
	TypeDate           = "date"
	TypeSelect         = "select"
	TypeRelation       = "relation"
	TypeRollup         = "rollup"
	TypeURL            = "url"
	TypeEmail          = "email"
	TypePhoneNumber    = "phone_number"
	TypeUniqueID       = "unique_id"
	TypeCreatedTime    = "created_time"
	TypeLastEditedTime = "last_edited_time"
	TypeCreatedBy      = "created_by"
)

// Title builds a title property with a single text segment.
func Title(text string) Value {
	return Value{
		Type:  TypeTitle,
		Title: []RichText{{Text: &TextContent{Content: text}, PlainText: text}},
	}
}

// Rich builds a rich text property with a single text segment.
func Rich(text string) Value {
	return Value{
		Type:     TypeRichText,
		RichText: []RichText{{Text: &TextContent{Content: text}, PlainText: text}},
	}
}

// Number builds a number property.
func Number(n float64) Value {
	return Value{Type: TypeNumber, Number: &n}
}

// DateISO builds a date property from an ISO-8601 start date.
func DateISO(iso string) Value {
	return Value{Type: TypeDate, Date: &DateValue{Start: iso}}
}

// Select builds a select property; an empty name clears the selection.
func Select(name string) Value {
	if name == "" {
		return Value{Type: TypeSelect}
	}
	return Value{Type: TypeSelect, Select: &SelectOption{Name: name}}
}

// Relation builds a relation property; empty ids are skipped.
func Relation(ids ...string) Value {
	refs := []RelationRef{}
	for _, id := range ids {
		if id == "" {
			continue
		}
		refs = append(refs, RelationRef{ID: id})
	}
	return Value{Type: TypeRelation, Relation: refs}
}

// URL builds a url property; an empty value clears it.
func URL(raw string) Value {
	if raw == "" {
		return Value{Type: TypeURL}
	}
	return Value{Type: TypeURL, URL: &raw}
}

// Email builds an email property; an empty value clears it.
func Email(address string) Value {
	if address == "" {
		return Value{Type: TypeEmail}
	}
	return Value{Type: TypeEmail, Email: &address}
}

// Phone builds a phone number property; an empty value clears it.
func Phone(number string) Value {
	if number == "" {
		return Value{Type: TypePhoneNumber}
	}
	return Value{Type: TypePhoneNumber, PhoneNumber: &number}
}
