// Package directory manages customers and store fronts. Both use ensure
// semantics: exact-title lookup, create on miss, so order composition can
// reference parties that may not exist yet.
package directory

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

// ServiceParams groups dependencies for the directory service.
type ServiceParams struct {
	Store       docstore.Store
	Mapper      *records.Mapper
	Collections config.CollectionsConfig
	Logger      *logger.Logger
	PageSize    int
}

// EnsureCustomerInput describes a customer to look up or create.
type EnsureCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// EnsureStoreInput describes a store front to look up or create.
type EnsureStoreInput struct {
	Name    string
	Type    enums.StoreType
	Website string
}

// EnsureSupplierInput describes a supplier to look up or create.
type EnsureSupplierInput struct {
	Name        string
	Phone       string
	Email       string
	Address     string
	CNPJ        string
	Description string
}

// Service exposes the party directory.
type Service interface {
	EnsureCustomer(ctx context.Context, input EnsureCustomerInput) (string, error)
	EnsureStore(ctx context.Context, input EnsureStoreInput) (string, error)
	EnsureSupplier(ctx context.Context, input EnsureSupplierInput) (string, error)
	Customers(ctx context.Context) ([]records.Customer, error)
	Stores(ctx context.Context) ([]records.StoreFront, error)
	Suppliers(ctx context.Context) ([]records.Supplier, error)
}

type service struct {
	store       docstore.Store
	mapper      *records.Mapper
	collections config.CollectionsConfig
	logg        *logger.Logger
	pageSize    int
}

// NewService builds a directory service with the required dependencies.
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

// EnsureCustomer returns the id of the named customer, creating the record
// on miss. The lookup matches the title exactly; contact details are only
// written on create, never merged onto an existing record.
func (s *service) EnsureCustomer(ctx context.Context, input EnsureCustomerInput) (string, error) {
	if input.Name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}

	existing, err := s.store.FindOne(ctx, s.collections.CustomerID, docstore.TitleEquals("Customer", input.Name))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "looking up customer")
	}
	if existing != nil {
		return existing.ID, nil
	}

	customer := records.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}
	created, err := s.store.Create(ctx, s.collections.CustomerID, customer.Properties())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating customer")
	}
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "customer created")
	return created.ID, nil
}

// EnsureStore returns the id of the named store front, creating the record
// on miss. An empty type defaults to Marketplace.
func (s *service) EnsureStore(ctx context.Context, input EnsureStoreInput) (string, error) {
	if input.Name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	storeType := input.Type
	if storeType == "" {
		storeType = enums.StoreTypeMarketplace
	}
	if !storeType.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid store type %q", storeType))
	}

	existing, err := s.store.FindOne(ctx, s.collections.StoreID, docstore.TitleEquals("Store", input.Name))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "looking up store")
	}
	if existing != nil {
		return existing.ID, nil
	}

	front := records.StoreFront{
		Name:    input.Name,
		Type:    storeType,
		Website: input.Website,
	}
	created, err := s.store.Create(ctx, s.collections.StoreID, front.Properties())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating store")
	}
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "store created")
	return created.ID, nil
}

// EnsureSupplier returns the id of the named supplier, creating the record
// on miss. Details are only written on create.
func (s *service) EnsureSupplier(ctx context.Context, input EnsureSupplierInput) (string, error) {
	if input.Name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "supplier name is required")
	}

	existing, err := s.store.FindOne(ctx, s.collections.SupplierID, docstore.TitleEquals("Name", input.Name))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "looking up supplier")
	}
	if existing != nil {
		return existing.ID, nil
	}

	supplier := records.Supplier{
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		CNPJ:        input.CNPJ,
		Description: input.Description,
	}
	created, err := s.store.Create(ctx, s.collections.SupplierID, supplier.Properties())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "creating supplier")
	}
	s.logg.Info(s.logg.WithRecordID(ctx, created.ID), "supplier created")
	return created.ID, nil
}

// Customers returns the first page of customer records.
func (s *service) Customers(ctx context.Context) ([]records.Customer, error) {
	recs, err := s.store.List(ctx, s.collections.CustomerID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing customers")
	}
	customers := make([]records.Customer, 0, len(recs))
	for i := range recs {
		customers = append(customers, records.CustomerFromRecord(ctx, s.mapper, &recs[i]))
	}
	return customers, nil
}

// Stores returns the first page of store front records.
func (s *service) Stores(ctx context.Context) ([]records.StoreFront, error) {
	recs, err := s.store.List(ctx, s.collections.StoreID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing stores")
	}
	fronts := make([]records.StoreFront, 0, len(recs))
	for i := range recs {
		fronts = append(fronts, records.StoreFrontFromRecord(ctx, s.mapper, &recs[i]))
	}
	return fronts, nil
}

// Suppliers returns the first page of supplier records.
func (s *service) Suppliers(ctx context.Context) ([]records.Supplier, error) {
	recs, err := s.store.List(ctx, s.collections.SupplierID, s.pageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "listing suppliers")
	}
	suppliers := make([]records.Supplier, 0, len(recs))
	for i := range recs {
		suppliers = append(suppliers, records.SupplierFromRecord(ctx, s.mapper, &recs[i]))
	}
	return suppliers, nil
}
