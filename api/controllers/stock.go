package controllers

import (
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/api/validators"
	"github.com/printflowhq/printflow-backend/internal/stock"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type adjustStockRequest struct {
	ProductID     string  `json:"product_id" validate:"required"`
	QuantityDelta float64 `json:"quantity_delta" validate:"required"`
	Date          string  `json:"date" validate:"required"`
	MovementType  string  `json:"movement_type" validate:"required"`
	Notes         string  `json:"notes"`
	OrderID       string  `json:"order_id"`
}

type StockController struct {
	svc  stock.Service
	logg *logger.Logger
}

func NewStockController(svc stock.Service, logg *logger.Logger) *StockController {
	return &StockController{svc: svc, logg: logg}
}

func (c *StockController) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustStockRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	movementType, err := enums.ParseMovementType(req.MovementType)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid movement type"))
		return
	}

	if err := c.svc.Adjust(r.Context(), stock.AdjustInput{
		ProductID:     req.ProductID,
		QuantityDelta: req.QuantityDelta,
		Date:          req.Date,
		MovementType:  movementType,
		Notes:         req.Notes,
		OrderID:       req.OrderID,
	}); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, map[string]string{"status": "adjusted"})
}

func (c *StockController) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := c.svc.Balances(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, balances)
}

func (c *StockController) Movements(w http.ResponseWriter, r *http.Request) {
	movements, err := c.svc.Movements(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, movements)
}
