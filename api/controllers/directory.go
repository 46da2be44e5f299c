package controllers

import (
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/api/validators"
	"github.com/printflowhq/printflow-backend/internal/directory"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type ensureCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

type ensureStoreRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type"`
	Website string `json:"website"`
}

type ensureSupplierRequest struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	CNPJ        string `json:"cnpj"`
	Description string `json:"description"`
}

type DirectoryController struct {
	svc  directory.Service
	logg *logger.Logger
}

func NewDirectoryController(svc directory.Service, logg *logger.Logger) *DirectoryController {
	return &DirectoryController{svc: svc, logg: logg}
}

func (c *DirectoryController) EnsureCustomer(w http.ResponseWriter, r *http.Request) {
	var req ensureCustomerRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := c.svc.EnsureCustomer(r.Context(), directory.EnsureCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"id": id})
}

func (c *DirectoryController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.svc.Customers(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, customers)
}

func (c *DirectoryController) EnsureStore(w http.ResponseWriter, r *http.Request) {
	var req ensureStoreRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	var storeType enums.StoreType
	if req.Type != "" {
		parsed, err := enums.ParseStoreType(req.Type)
		if err != nil {
			responses.WriteError(r.Context(), c.logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store type"))
			return
		}
		storeType = parsed
	}

	id, err := c.svc.EnsureStore(r.Context(), directory.EnsureStoreInput{
		Name:    req.Name,
		Type:    storeType,
		Website: req.Website,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"id": id})
}

func (c *DirectoryController) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := c.svc.Stores(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, stores)
}

func (c *DirectoryController) EnsureSupplier(w http.ResponseWriter, r *http.Request) {
	var req ensureSupplierRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	id, err := c.svc.EnsureSupplier(r.Context(), directory.EnsureSupplierInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CNPJ:        req.CNPJ,
		Description: req.Description,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"id": id})
}

func (c *DirectoryController) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := c.svc.Suppliers(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, suppliers)
}
