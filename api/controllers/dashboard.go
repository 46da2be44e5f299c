package controllers

import (
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	"github.com/printflowhq/printflow-backend/internal/dashboard"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

type DashboardController struct {
	svc  dashboard.Service
	logg *logger.Logger
}

func NewDashboardController(svc dashboard.Service, logg *logger.Logger) *DashboardController {
	return &DashboardController{svc: svc, logg: logg}
}

func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.svc.Summary(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, summary)
}
