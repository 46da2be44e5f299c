package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/api/validators"
	"github.com/printflowhq/printflow-backend/internal/catalog"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type createProductRequest struct {
	Name      string   `json:"name" validate:"required"`
	SalePrice float64  `json:"sale_price" validate:"gte=0"`
	SKU       string   `json:"sku"`
	Category  string   `json:"category"`
	PrintTime *float64 `json:"print_time" validate:"omitempty,gte=0"`
}

type ProductsController struct {
	svc  catalog.Service
	logg *logger.Logger
}

func NewProductsController(svc catalog.Service, logg *logger.Logger) *ProductsController {
	return &ProductsController{svc: svc, logg: logg}
}

func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	product, err := c.svc.CreateProduct(r.Context(), catalog.CreateProductInput{
		Name:      req.Name,
		SalePrice: req.SalePrice,
		SKU:       req.SKU,
		Category:  req.Category,
		PrintTime: req.PrintTime,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, product)
}

func (c *ProductsController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.svc.Products(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, products)
}

func (c *ProductsController) Archive(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
		return
	}

	if err := c.svc.ArchiveProduct(r.Context(), productID); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"id": productID, "status": "archived"})
}
