// internal/app/features/profiles/handler.go
package profiles

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/orphanagecare/internal/app/features/errors"
	profilestore "github.com/dalemusser/orphanagecare/internal/app/store/profiles"
	recordstore "github.com/dalemusser/orphanagecare/internal/app/store/records"
	"github.com/dalemusser/orphanagecare/internal/app/system/metrics"
	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"github.com/dalemusser/orphanagecare/internal/app/system/timeouts"
	"github.com/dalemusser/orphanagecare/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Store   *profilestore.Store
	ErrLog  *uierrors.ErrorLogger
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   profilestore.New(db),
		ErrLog:  errLog,
		Metrics: m,
		Log:     logger,
	}
}

type portCheckResponse struct {
	IsUnique bool `json:"isUnique"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /add-orphanage                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAdd stores a new profile. Validation failures and a taken port
// number are reported as 500 with the underlying error text.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var p models.OrphanageProfile
	if err := respond.Decode(w, r, &p); err != nil {
		h.ErrLog.LogServerError(w, r, "add profile: bad body", err, "Error adding orphanage details: "+err.Error())
		return
	}
	p.ID = primitive.NilObjectID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add profile")
	defer cancel()

	created, err := h.Store.Add(ctx, p)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add profile failed", err, "Error adding orphanage details: "+err.Error())
		return
	}

	h.Metrics.ProfileAdded()
	h.Log.Info("orphanage profile added",
		zap.String("profile_id", created.ID.Hex()),
		zap.String("port_number", string(created.PortNumber)))
	respond.Message(w, http.StatusCreated, "Orphanage details added successfully!")
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /check-port-number/{portNumber}                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCheckPortNumber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check port number")
	defer cancel()

	unique, err := h.Store.IsPortNumberUnique(ctx, chi.URLParam(r, "portNumber"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "check port number failed", err, "Error checking port number: "+err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, portCheckResponse{IsUnique: unique})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /get-orphanages                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list profiles")
	defer cancel()

	list, err := h.Store.ListSummaries(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list profiles failed", err, "Failed to fetch orphanages: "+err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /orphanage-details/{id}                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDetails serves one profile by id. A malformed id is a server
// error, like any other store failure on this route.
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "profile details")
	defer cancel()

	p, err := h.Store.GetByID(ctx, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		h.ErrLog.LogClientError(w, r, http.StatusNotFound, "profile not found", nil, "Orphanage not found")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "profile details failed", err, "Error fetching orphanage details")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /get-orphanage-by-port/{portNumber}                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleByPortNumber(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "profile by port")
	defer cancel()

	p, err := h.Store.GetByPortNumber(ctx, chi.URLParam(r, "portNumber"))
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		h.ErrLog.LogClientError(w, r, http.StatusNotFound, "profile not found", nil, "Orphanage not found")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "profile by port failed", err, "Server Error")
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /update-orphanage/{portNumber}                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleUpdate applies the fields present in the body. A portNumber in the
// body is ignored; the path parameter stays the profile's key.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var upd models.OrphanageProfileUpdate
	if err := respond.Decode(w, r, &upd); err != nil {
		h.ErrLog.LogServerError(w, r, "update profile: bad body", err, "Failed to update orphanage")
		return
	}
	portNumber := chi.URLParam(r, "portNumber")
	if upd.PortNumber != nil && string(*upd.PortNumber) != portNumber {
		h.Log.Debug("ignoring portNumber in update body",
			zap.String("port_number", portNumber),
			zap.String("requested", string(*upd.PortNumber)))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update profile")
	defer cancel()

	_, err := h.Store.UpdateByPortNumber(ctx, portNumber, upd)
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		h.ErrLog.LogClientError(w, r, http.StatusNotFound, "profile not found", nil, "Orphanage not found")
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update profile failed", err, "Failed to update orphanage")
		return
	}
	respond.Message(w, http.StatusOK, "Orphanage updated successfully")
}
