// Package stock keeps the movement ledger and the per-product balance
// records in step. Movements are append-only; balances are read-modify-write
// against the remote store.
package stock

import (
	"context"
	"fmt"
	"math"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// ServiceParams groups dependencies for the stock service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	PageSize    int
}

// AdjustInput describes one ledger adjustment. QuantityDelta is signed:
// positive for inbound, negative for outbound.
type AdjustInput struct {
	ProductID     string
	QuantityDelta float64
	Date          string
	MovementType  enums.MovementType
	Notes         string
	OrderID       string
}

// Service exposes the stock ledger operations.
type Service interface {
	Adjust(ctx context.Context, input AdjustInput) error
	Balances(ctx context.Context) ([]records.Stock, error)
	Movements(ctx context.Context) ([]records.StockMovement, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	collections config.CollectionsConfig
	logg        *logger.Logger
	pageSize    int
}

// NewService builds a stock service with the required dependencies.
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

// Adjust appends one movement record and then updates the product's balance.
//
// The two writes are separate remote calls with no transaction between them:
// a failure after the movement write leaves a movement with no matching
// balance change, and re-invoking after a partial failure appends a duplicate
// movement. Callers retry manually; nothing here deduplicates.
func (s *service) Adjust(ctx context.Context, input AdjustInput) error {
	if input.ProductID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.QuantityDelta == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity delta must be non-zero")
	}
	if input.Date == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "movement date is required")
	}
	if !input.MovementType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid movement type %q", input.MovementType))
	}

	movement := records.StockMovement{
		Date:      input.Date,
		ProductID: input.ProductID,
		Type:      input.MovementType,
		Quantity:  math.Abs(input.QuantityDelta),
		Notes:     input.Notes,
		OrderID:   input.OrderID,
	}
	if _, err := s.store.Create(ctx, s.collections.StockMovementID, movement.Properties()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "recording stock movement")
	}

	balanceID, err := s.ensureBalance(ctx, input.ProductID)
	if err != nil {
		return err
	}

	balanceRec, err := s.store.Retrieve(ctx, balanceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "loading stock balance")
	}
	current := s.mapper.Flatten(ctx, balanceRec).NumberOrZero("Current Qty")

	// Negative balances are allowed; the ledger records what happened, it
	// does not police it.
	newQty := current + input.QuantityDelta
	_, err = s.store.Update(ctx, balanceID, docstore.Properties{
		"Current Qty": docstore.Number(newQty),
		"Last Update": docstore.DateISO(input.Date),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "updating stock balance")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": input.ProductID,
		"delta":      input.QuantityDelta,
		"balance":    newQty,
	}), "stock adjusted")
	return nil
}

// ensureBalance finds the product's balance record, creating a zeroed one
// when the product has never moved before.
func (s *service) ensureBalance(ctx context.Context, productID string) (string, error) {
	existing, err := s.store.FindOne(ctx, s.collections.StockID, docstore.RelationContains("Product", productID))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "looking up stock balance")
	}
	if existing != nil {
		return existing.ID, nil
	}

	balance := records.Stock{ProductID: productID, InitialQty: 0, CurrentQty: 0}
	created, err := s.store.Create(ctx, s.collections.StockID, balance.Properties())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating stock balance")
	}
	return created.ID, nil
}

// Balances lists the per-product balance records.
func (s *service) Balances(ctx context.Context) ([]records.Stock, error) {
	recs, err := s.store.List(ctx, s.collections.StockID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing stock balances")
	}
	balances := make([]records.Stock, 0, len(recs))
	for i := range recs {
		balances = append(balances, records.StockFromRecord(ctx, s.mapper, &recs[i]))
	}
	return balances, nil
}

// Movements lists the movement ledger, oldest first within the first page.
func (s *service) Movements(ctx context.Context) ([]records.StockMovement, error) {
	recs, err := s.store.List(ctx, s.collections.StockMovementID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing stock movements")
	}
	movements := make([]records.StockMovement, 0, len(recs))
	for i := range recs {
		movements = append(movements, records.StockMovementFromRecord(ctx, s.mapper, &recs[i]))
	}
	return movements, nil
}
