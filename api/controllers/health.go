package controllers

import (
	"context"
	"net/http"

	"github.com/printflowhq/printflow-backend/api/responses"
	pkgerrors "github.com/printflowhq/printflow-backend/pkg/errors"
	"github.com/printflowhq/printflow-backend/pkg/logger"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	deps map[string]Pinger
	logg *logger.Logger
}

func NewHealthController(logg *logger.Logger, deps map[string]Pinger) *HealthController {
	return &HealthController{deps: deps, logg: logg}
}

func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	for name, dep := range c.deps {
		if dep == nil {
			continue
		}
		if err := dep.Ping(r.Context()); err != nil {
			wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dependency not ready").
				WithDetails(map[string]string{"dependency": name})
			responses.WriteError(r.Context(), c.logg, w, wrapped)
			return
		}
	}
	responses.WriteSuccess(w, map[string]string{"status": "ready"})
}
