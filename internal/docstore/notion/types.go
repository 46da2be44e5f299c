package notion

import "github.com/printflowhq/printflow-backend/internal/docstore"

const defaultPageSize = 50

const (
	opCreate   = "create_page"
	opUpdate   = "update_page"
	opRetrieve = "retrieve_page"
	opQuery    = "query_collection"
	opList     = "list_collection"
	opArchive  = "archive_page"
)

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

type createPageRequest struct {
	Parent     parentRef           `json:"parent"`
	Properties docstore.Properties `json:"properties"`
}

type updatePageRequest struct {
	Properties docstore.Properties `json:"properties,omitempty"`
	Archived   *bool               `json:"archived,omitempty"`
}

type queryRequest struct {
	Filter   *propertyFilter `json:"filter,omitempty"`
	PageSize int             `json:"page_size,omitempty"`
}

type propertyFilter struct {
	Property string           `json:"property"`
	Title    *equalsCondition `json:"title,omitempty"`
	Relation *containsRef     `json:"relation,omitempty"`
}

type equalsCondition struct {
	Equals string `json:"equals"`
}

type containsRef struct {
	Contains string `json:"contains"`
}

type queryResponse struct {
	Results    []docstore.Record `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}

type apiErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func buildFilter(filter docstore.Filter) *propertyFilter {
	pf := &propertyFilter{Property: filter.Property}
	switch {
	case filter.TitleEquals != nil:
		pf.Title = &equalsCondition{Equals: *filter.TitleEquals}
	case filter.RelationContains != nil:
		pf.Relation = &containsRef{Contains: *filter.RelationContains}
	default:
		return nil
	}
	return pf
}
