// internal/app/features/orphanages/handler.go
package orphanages

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/orphanagecare/internal/app/features/errors"
	orphanagestore "github.com/dalemusser/orphanagecare/internal/app/store/orphanages"
	recordstore "github.com/dalemusser/orphanagecare/internal/app/store/records"
	"github.com/dalemusser/orphanagecare/internal/app/system/metrics"
	"github.com/dalemusser/orphanagecare/internal/app/system/ratelimit"
	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"github.com/dalemusser/orphanagecare/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const kind = "orphanage"

type Handler struct {
	Store   *orphanagestore.Store
	ErrLog  *uierrors.ErrorLogger
	Metrics *metrics.Metrics
	Limiter *ratelimit.LoginLimiter // nil disables login throttling
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   orphanagestore.New(db),
		ErrLog:  errLog,
		Metrics: m,
		Log:     logger,
	}
}

type registerRequest struct {
	HeadName string `json:"headName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register-orphanage                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.Metrics.Registration(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "register orphanage: bad body", err, "Error registering orphanage: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register orphanage")
	defer cancel()

	o, err := h.Store.Register(ctx, req.HeadName, req.Email, req.Password)
	switch {
	case errors.Is(err, orphanagestore.ErrAlreadyRegistered):
		h.Metrics.Registration(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "orphanage already registered", nil, "Already registered")
		return
	case err != nil:
		h.Metrics.Registration(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "register orphanage failed", err, "Error registering orphanage: "+err.Error())
		return
	}

	h.Metrics.Registration(kind, metrics.OutcomeSuccess)
	h.Log.Info("orphanage registered", zap.String("orphanage_id", o.ID.Hex()))
	respond.Message(w, http.StatusCreated, "Orphanage registration successful!")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login-orphanage                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.Metrics.Login(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "orphanage login: bad body", err, "An error occurred: "+err.Error())
		return
	}

	if ok, msg := h.Limiter.Check(r, kind, req.Email); !ok {
		h.Metrics.Login(kind, metrics.OutcomeLimited)
		h.ErrLog.LogClientError(w, r, http.StatusTooManyRequests, "orphanage login throttled", nil, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "orphanage login")
	defer cancel()

	_, err := h.Store.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		h.Metrics.Login(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "orphanage login: unknown email", nil, "Orphanage not found")
		return
	case errors.Is(err, orphanagestore.ErrBadCredentials):
		h.Metrics.Login(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "orphanage login: wrong password", nil, "Incorrect password")
		return
	case err != nil:
		h.Metrics.Login(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "orphanage login failed", err, "An error occurred: "+err.Error())
		return
	}

	h.Limiter.Succeeded(kind, req.Email)
	h.Metrics.Login(kind, metrics.OutcomeSuccess)
	respond.Message(w, http.StatusOK, "Login successful!")
}
