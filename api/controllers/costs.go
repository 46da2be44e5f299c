package controllers

import (
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/api/validators"
	"github.com/printflowhq/printflow-backend/internal/costs"
	"github.com/printflowhq/printflow-backend/pkg/enums"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type recordCostRequest struct {
	Date      string  `json:"date" validate:"required"`
	Type      string  `json:"type" validate:"required"`
	Value     float64 `json:"value" validate:"gte=0"`
	ProductID string  `json:"product_id"`
	Notes     string  `json:"notes"`
}

type CostsController struct {
	svc  costs.Service
	logg *logger.Logger
}

func NewCostsController(svc costs.Service, logg *logger.Logger) *CostsController {
	return &CostsController{svc: svc, logg: logg}
}

func (c *CostsController) Record(w http.ResponseWriter, r *http.Request) {
	var req recordCostRequest
	if err := validators.DecodeJSONBody(r, &req); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	costType, err := enums.ParseCostType(req.Type)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w,
			pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost type"))
		return
	}

	cost, err := c.svc.Record(r.Context(), costs.RecordInput{
		Date:      req.Date,
		Type:      costType,
		Value:     req.Value,
		ProductID: req.ProductID,
		Notes:     req.Notes,
	})
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, cost)
}

func (c *CostsController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.svc.List(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, list)
}
