// Package costs records operating expenses against the cost ledger.
package costs

import (
	"context"
	"fmt"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// ServiceParams groups dependencies for the costs service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	PageSize    int
}

// RecordInput describes a new cost entry.
type RecordInput struct {
	Date      string
	Type      enums.CostType
	Value     float64
	ProductID string
	Notes     string
}

// Service exposes the cost ledger.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*records.Cost, error)
	List(ctx context.Context) ([]records.Cost, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	collections config.CollectionsConfig
	logg        *logger.Logger
	pageSize    int
}

// NewService builds a costs service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Mapper == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record mapper is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &service{
		store:       params.Store,
		mapper:      params.Mapper,
		collections: params.Collections,
		logg:        params.Logger,
		pageSize:    pageSize,
	}, nil
}

// Record writes one cost entry.
func (s *service) Record(ctx context.Context, input RecordInput) (*records.Cost, error) {
	if input.Date == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost date is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid cost type %q", input.Type))
	}
	if input.Value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost value must not be negative")
	}

	cost := records.Cost{
		Date:      input.Date,
		Type:      input.Type,
		Value:     input.Value,
		ProductID: input.ProductID,
		Notes:     input.Notes,
	}
	created, err := s.store.Create(ctx, s.collections.CostID, cost.Properties())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "recording cost")
	}

	mapped := records.CostFromRecord(ctx, s.mapper, created)
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "cost recorded")
	return &mapped, nil
}

// List returns the first page of cost entries.
func (s *service) List(ctx context.Context) ([]records.Cost, error) {
	recs, err := s.store.List(ctx, s.collections.CostID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing costs")
	}
	costs := make([]records.Cost, 0, len(recs))
	for i := range recs {
		costs = append(costs, records.CostFromRecord(ctx, s.mapper, &recs[i]))
	}
	return costs, nil
}
