// internal/app/features/donors/handler.go
package donors

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/orphanagecare/internal/app/features/errors"
	donorstore "github.com/dalemusser/orphanagecare/internal/app/store/donors"
	recordstore "github.com/dalemusser/orphanagecare/internal/app/store/records"
	"github.com/dalemusser/orphanagecare/internal/app/system/metrics"
	"github.com/dalemusser/orphanagecare/internal/app/system/ratelimit"
	"github.com/dalemusser/orphanagecare/internal/app/system/respond"
	"github.com/dalemusser/orphanagecare/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const kind = "donor"

type Handler struct {
	Store   *donorstore.Store
	ErrLog  *uierrors.ErrorLogger
	Metrics *metrics.Metrics
	Limiter *ratelimit.LoginLimiter // nil disables login throttling
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		Store:   donorstore.New(db),
		ErrLog:  errLog,
		Metrics: m,
		Log:     logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /register-donor                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.Metrics.Registration(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "register donor: bad body", err, "Error registering donor: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "register donor")
	defer cancel()

	d, err := h.Store.Register(ctx, req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, donorstore.ErrAlreadyRegistered):
		h.Metrics.Registration(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "donor already registered", nil, "Already registered")
		return
	case err != nil:
		h.Metrics.Registration(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "register donor failed", err, "Error registering donor: "+err.Error())
		return
	}

	h.Metrics.Registration(kind, metrics.OutcomeSuccess)
	h.Log.Info("donor registered", zap.String("donor_id", d.ID.Hex()))
	respond.Message(w, http.StatusCreated, "Donor registration successful!")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login-donor                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(w, r, &req); err != nil {
		h.Metrics.Login(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "donor login: bad body", err, "An error occurred: "+err.Error())
		return
	}

	if ok, msg := h.Limiter.Check(r, kind, req.Email); !ok {
		h.Metrics.Login(kind, metrics.OutcomeLimited)
		h.ErrLog.LogClientError(w, r, http.StatusTooManyRequests, "donor login throttled", nil, msg)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "donor login")
	defer cancel()

	_, err := h.Store.Login(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, recordstore.ErrNotFound):
		h.Metrics.Login(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "donor login: unknown email", nil, "Donor not found")
		return
	case errors.Is(err, donorstore.ErrBadCredentials):
		h.Metrics.Login(kind, metrics.OutcomeRejected)
		h.ErrLog.LogClientError(w, r, http.StatusBadRequest, "donor login: wrong password", nil, "Incorrect password")
		return
	case err != nil:
		h.Metrics.Login(kind, metrics.OutcomeError)
		h.ErrLog.LogServerError(w, r, "donor login failed", err, "An error occurred: "+err.Error())
		return
	}

	h.Limiter.Succeeded(kind, req.Email)
	h.Metrics.Login(kind, metrics.OutcomeSuccess)
	respond.Message(w, http.StatusOK, "Login successful!")
}
