package home

import (
	"net/http"

	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"go.uber.org/zap"
)

// Banner is the plain-text body served at the root path.
const Banner = "OrphanageCare backend is running!"

// Handler serves the root banner.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – banner                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	respond.Text(w, http.StatusOK, Banner)
}
