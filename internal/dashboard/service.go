// Package dashboard aggregates the home-page summary: order and product
// counts, revenue, items sold, and low-stock alerts. The summary is cached
// in redis with a short TTL; cache trouble degrades to a recompute.
package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/pkg/config"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
	pkgredis "github.com/printflowhq/printflow-backend/pkg/redis"
)

// Cache is the slice of the redis client the dashboard needs. A nil Cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CacheKey(parts ...string) string
}

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Cache       Cache
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	Config      config.DashboardConfig
}

// Summary is the aggregated home-page view.
type Summary struct {
	Orders    int     `json:"orders"`
	Products  int     `json:"products"`
	Revenue   float64 `json:"revenue"`
	ItemsSold float64 `json:"items_sold"`
	LowStock  int     `json:"low_stock"`
}

// Service exposes the dashboard summary.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	cache       Cache
	collections config.CollectionsConfig
	logg        *logger.Logger
	cfg         config.DashboardConfig
}

// NewService builds a dashboard service. Cache may be nil.
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
	return &service{
		store:       params.Store,
		mapper:      params.Mapper,
		cache:       params.Cache,
		collections: params.Collections,
		logg:        params.Logger,
		cfg:         params.Config,
	}, nil
}

// Summary returns the cached summary when fresh, otherwise recomputes from
// the store and refreshes the cache.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cacheKey())
		switch {
		case err == nil:
			var summary Summary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
			s.logg.Warn(ctx, "discarding malformed cached summary")
		case errors.Is(err, pkgredis.ErrCacheMiss):
			// cold cache, recompute below
		default:
			s.logg.Warn(ctx, "summary cache read failed, recomputing")
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, s.cacheKey(), payload, s.cfg.CacheTTL); err != nil {
				s.logg.Warn(ctx, "summary cache write failed")
			}
		}
	}
	return summary, nil
}

func (s *service) compute(ctx context.Context) (*Summary, error) {
	pageSize := s.cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	orders, err := s.store.List(ctx, s.collections.OrderID, pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing orders for summary")
	}
	products, err := s.store.List(ctx, s.collections.ProductID, pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing products for summary")
	}
	items, err := s.store.List(ctx, s.collections.OrderItemID, pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing order items for summary")
	}
	balances, err := s.store.List(ctx, s.collections.StockID, pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing stock for summary")
	}

	revenue := decimal.Zero
	for i := range orders {
		order := records.OrderFromRecord(ctx, s.mapper, &orders[i])
		revenue = revenue.Add(decimal.NewFromFloat(order.Total))
	}

	itemsSold := decimal.Zero
	for i := range items {
		item := records.OrderItemFromRecord(ctx, s.mapper, &items[i])
		itemsSold = itemsSold.Add(decimal.NewFromFloat(item.Quantity))
	}

	lowStock := 0
	for i := range balances {
		balance := records.StockFromRecord(ctx, s.mapper, &balances[i])
		if balance.CurrentQty <= s.cfg.LowStockThreshold {
			lowStock++
		}
	}

	return &Summary{
		Orders:    len(orders),
		Products:  len(products),
		Revenue:   revenue.InexactFloat64(),
		ItemsSold: itemsSold.InexactFloat64(),
		LowStock:  lowStock,
	}, nil
}

func (s *service) cacheKey() string {
	return s.cache.CacheKey("dashboard", "summary")
}
