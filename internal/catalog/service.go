// Package catalog manages the product listing and its categories.
package catalog

import (
	"context"

	"github.com/printflowhq/printflow-backend/internal/docstore"
	"github.com/printflowhq/printflow-backend/internal/records"
	"github.com/printflowhq/printflow-backend/pkg/config"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	PageSize    int
}

// CreateProductInput describes a new catalog entry.
type CreateProductInput struct {
	Name      string
	SalePrice float64
	SKU       string
	Category  string
	PrintTime *float64
}

// Service exposes product and category management.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*records.Product, error)
	ArchiveProduct(ctx context.Context, productID string) error
	Products(ctx context.Context) ([]records.Product, error)
	EnsureCategory(ctx context.Context, name string) (string, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	collections config.CollectionsConfig
	logg        *logger.Logger
	pageSize    int
}

// NewService builds a catalog service with the required dependencies.
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

// CreateProduct writes a new product record, resolving the category by name
// first when one is given.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*records.Product, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.SalePrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale price must not be negative")
	}

	var categoryIDs []string
	if input.Category != "" {
		categoryID, err := s.EnsureCategory(ctx, input.Category)
		if err != nil {
			return nil, err
		}
		categoryIDs = []string{categoryID}
	}

	price := input.SalePrice
	product := records.Product{
		Name:        input.Name,
		SalePrice:   &price,
		SKU:         input.SKU,
		CategoryIDs: categoryIDs,
		PrintTime:   input.PrintTime,
	}
	created, err := s.store.Create(ctx, s.collections.ProductID, product.Properties())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating product")
	}

	mapped := records.ProductFromRecord(ctx, s.mapper, created)
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "product created")
	return &mapped, nil
}

// ArchiveProduct tombstones the record; products are never deleted.
func (s *service) ArchiveProduct(ctx context.Context, productID string) error {
	if productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.store.Archive(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "archiving product")
	}
	s.logg.Info(s.logg.WithRecordID(ctx, productID), "product archived")
	return nil
}

// Products returns the first page of catalog entries.
func (s *service) Products(ctx context.Context) ([]records.Product, error) {
	recs, err := s.store.List(ctx, s.collections.ProductID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing products")
	}
	products := make([]records.Product, 0, len(recs))
	for i := range recs {
		products = append(products, records.ProductFromRecord(ctx, s.mapper, &recs[i]))
	}
	return products, nil
}

// EnsureCategory returns the id of the named category, creating it on miss.
func (s *service) EnsureCategory(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	existing, err := s.store.FindOne(ctx, s.collections.CategoryID, docstore.TitleEquals("Name", name))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "looking up category")
	}
	if existing != nil {
		return existing.ID, nil
	}

	category := records.Category{Name: name}
	created, err := s.store.Create(ctx, s.collections.CategoryID, category.Properties())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating category")
	}
	return created.ID, nil
}
