// Package orders composes sale orders: a header record, one item record per
// product line, and an outbound stock movement per item.
package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/internal/stock"
	"github.com/printflowhq/printflow-backend/pkg/config"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// Adjuster is the slice of the stock service the composer needs.
type Adjuster interface {
	Adjust(ctx context.Context, input stock.AdjustInput) error
}

// ServiceParams groups dependencies for the orders service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Adjuster    Adjuster
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	PageSize    int
}

// ItemInput is one product line on a new order.
type ItemInput struct {
	ProductID string
	Quantity  float64
	UnitPrice float64
}

// CreateInput describes a new order.
type CreateInput struct {
	Title         string
	Date          string
	StoreID       string
	CustomerID    string
	PaymentMethod enums.PaymentMethod
	Status        enums.OrderStatus
	Items         []ItemInput
}

// CreateResult reports the composed order.
type CreateResult struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
}

// Service exposes order composition and listing.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CreateResult, error)
	List(ctx context.Context) ([]records.Order, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	adjuster    Adjuster
	collections config.CollectionsConfig
	logg        *logger.Logger
	pageSize    int
}

// NewService builds an orders service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "document store is required")
	}
	if params.Mapper == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record mapper is required")
	}
	if params.Adjuster == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock adjuster is required")
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
		adjuster:    params.Adjuster,
		collections: params.Collections,
		logg:        params.Logger,
		pageSize:    pageSize,
	}, nil
}

// Create writes the order header with a zero total, then processes items
// strictly in sequence: each line creates an item record and issues its own
// outbound stock adjustment. The accumulated total is written back onto the
// header last.
//
// A failure mid-loop leaves the header and the already-written items in
// place with the header total still zero. There is no rollback; the caller
// sees the error and retries by creating a fresh order.
func (s *service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	header := records.Order{
		Title:         input.Title,
		Date:          input.Date,
		StoreID:       input.StoreID,
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		Total:         0,
	}
	created, err := s.store.Create(ctx, s.collections.OrderID, header.Properties())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating order header")
	}
	orderID := created.ID

	total := decimal.Zero
	for i, item := range input.Items {
		qty := decimal.NewFromFloat(item.Quantity)
		unit := decimal.NewFromFloat(item.UnitPrice)
		lineTotal := qty.Mul(unit)
		total = total.Add(lineTotal)

		line := records.OrderItem{
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     lineTotal.InexactFloat64(),
		}
		if _, err := s.store.Create(ctx, s.collections.OrderItemID, line.Properties()); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, fmt.Sprintf("creating order item %d", i+1))
		}

		err := s.adjuster.Adjust(ctx, stock.AdjustInput{
			ProductID:     item.ProductID,
			QuantityDelta: -item.Quantity,
			Date:          input.Date,
			MovementType:  enums.MovementTypeOut,
			Notes:         fmt.Sprintf("Order %s", input.Title),
			OrderID:       orderID,
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, fmt.Sprintf("adjusting stock for item %d", i+1))
		}
	}

	_, err = s.store.Update(ctx, orderID, docstore.Properties{
		"Total Value": docstore.Number(total.InexactFloat64()),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "writing order total")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": orderID,
		"items":    len(input.Items),
		"total":    total.InexactFloat64(),
	}), "order created")

	return &CreateResult{OrderID: orderID, Total: total.InexactFloat64()}, nil
}

// List returns the first page of orders.
func (s *service) List(ctx context.Context) ([]records.Order, error) {
	recs, err := s.store.List(ctx, s.collections.OrderID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing orders")
	}
	orders := make([]records.Order, 0, len(recs))
	for i := range recs {
		orders = append(orders, records.OrderFromRecord(ctx, s.mapper, &recs[i]))
	}
	return orders, nil
}

func validateCreate(input CreateInput) error {
	if input.Title == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order title is required")
	}
	if input.Date == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order date is required")
	}
	if input.StoreID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if input.CustomerID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", input.Status))
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	for i, item := range input.Items {
		if item.ProductID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: product id is required", i+1))
		}
		if item.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: quantity must be positive", i+1))
		}
		if item.UnitPrice < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("item %d: unit price must not be negative", i+1))
		}
	}
	return nil
}
