package docstore

import "encoding/json"

// MarshalJSON encodes only the variant selected by Type, with explicit nulls
// for cleared select/relation/url style fields so partial updates can erase
// them. Values without a type tag fall back to plain field encoding.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Type == "" {
		type alias Value
		return json.Marshal(alias(v))
	}

	m := map[string]any{"type": v.Type}
	switch v.Type {
	case TypeTitle:
		m[TypeTitle] = nonNilRichText(v.Title)
	case TypeRichText:
		m[TypeRichText] = nonNilRichText(v.RichText)
	case TypeNumber:
		m[TypeNumber] = v.Number
	case TypeDate:
		m[TypeDate] = v.Date
	case TypeSelect:
		m[TypeSelect] = v.Select
	case TypeRelation:
		m[TypeRelation] = nonNilRelations(v.Relation)
	case TypeRollup:
		m[TypeRollup] = v.Rollup
	case TypeURL:
		m[TypeURL] = v.URL
	case TypeEmail:
		m[TypeEmail] = v.Email
	case TypePhoneNumber:
		m[TypePhoneNumber] = v.PhoneNumber
	case TypeUniqueID:
		m[TypeUniqueID] = v.UniqueID
	case TypeCreatedTime:
		m[TypeCreatedTime] = v.CreatedTime
	case TypeLastEditedTime:
		m[TypeLastEditedTime] = v.LastEditedTime
	case TypeCreatedBy:
		m[TypeCreatedBy] = v.CreatedBy
	}
	return json.Marshal(m)
}

func nonNilRichText(segments []RichText) []RichText {
	if segments == nil {
		return []RichText{}
	}
	return segments
}

func nonNilRelations(refs []RelationRef) []RelationRef {
	if refs == nil {
		return []RelationRef{}
	}
	return refs
}
