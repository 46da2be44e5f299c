package controllers

import (
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/api/validators"
	"github.com/printflowhq/printflow-backend/internal/orders"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type createOrderRequest struct {
	Title         string             `json:"title" validate:"required"`
	Date          string             `json:"date" validate:"required"`
	StoreID       string             `json:"store_id"`
	CustomerID    string             `json:"customer_id"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
	Status        string             `json:"status" validate:"required"`
	Items         []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type OrdersController struct {
	svc  orders.Service
	logg *logger.Logger
}

func NewOrdersController(svc orders.Service, logg *logger.Logger) *OrdersController {
	return &OrdersController{svc: svc, logg: logg}
}

func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	payment, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
		return
	}
	status, err := enums.ParseOrderStatus(req.Status)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
		return
	}

	input := orders.CreateInput{
		Title:         req.Title,
		Date:          req.Date,
		StoreID:       req.StoreID,
		CustomerID:    req.CustomerID,
		PaymentMethod: payment,
		Status:        status,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, orders.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	result, err := c.svc.Create(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, result)
}

func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, list)
}
