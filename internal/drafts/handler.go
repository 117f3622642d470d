package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workout"
	"github.com/2beens/gymlog/internal/workout/draft"
	"github.com/2beens/gymlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	msgNoCanDo        = "no can do"
	msgDraftNotFound  = "draft not found"
	msgInvalidDraftID = "invalid draft id"
	msgLoadFailed     = "failed to load draft"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=drafts_test

type draftsStore interface {
	Create(ctx context.Context, ownerID int64, d *draft.WorkoutDraft) error
	Get(ctx context.Context, ownerID int64, draftID string) (*draft.WorkoutDraft, error)
	Update(ctx context.Context, ownerID int64, draftID string, fn func(d *draft.WorkoutDraft) error) (*draft.WorkoutDraft, error)
	Delete(ctx context.Context, ownerID int64, draftID string) (bool, error)
	LockSubmit(ctx context.Context, ownerID int64, draftID string) (func(context.Context) error, error)
}

type workoutSaver interface {
	Save(ctx context.Context, ownerID int64, d *draft.WorkoutDraft) (*workout.Workout, error)
}

var (
	_ draftsStore  = (*RedisStore)(nil)
	_ workoutSaver = (*workout.Persister)(nil)
)

type Handler struct {
	store          draftsStore
	saver          workoutSaver
	templates      templateLookup
	metricsManager *metrics.Manager
}

func NewHandler(
	store draftsStore,
	saver workoutSaver,
	templates templateLookup,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		store:          store,
		saver:          saver,
		templates:      templates,
		metricsManager: metricsManager,
	}
}

// OpResponse is the draft after an operation, plus the id of the exercise or
// set the operation created, if any.
type OpResponse struct {
	Draft     *draft.WorkoutDraft `json:"draft"`
	CreatedID string              `json:"createdId,omitempty"`
}

type ValidationResponse struct {
	Valid    bool   `json:"valid"`
	Error    string `json:"error,omitempty"`
	Rule     string `json:"rule,omitempty"`
	Exercise int    `json:"exercise,omitempty"`
}

// SetupRoutes registers the drafts routes. The submit middlewares (rate
// limiting) wrap only the submit route.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, submitMiddlewares ...mux.MiddlewareFunc) {
	draftsRouter := mainRouter.PathPrefix("/drafts").Subrouter()
	draftsRouter.HandleFunc("", handler.handleNew).Methods("POST").Name("new-draft")
	draftsRouter.HandleFunc("/{id}", handler.handleGet).Methods("GET").Name("get-draft")
	draftsRouter.HandleFunc("/{id}", handler.handleCancel).Methods("DELETE").Name("cancel-draft")
	draftsRouter.HandleFunc("/{id}/ops", handler.handleOp).Methods("POST").Name("draft-op")
	draftsRouter.HandleFunc("/{id}/validation", handler.handleValidation).Methods("GET").Name("validate-draft")

	var submit http.Handler = http.HandlerFunc(handler.handleSubmit)
	for i := len(submitMiddlewares) - 1; i >= 0; i-- {
		submit = submitMiddlewares[i].Middleware(submit)
	}
	draftsRouter.Handle("/{id}/submit", submit).Methods("POST").Name("submit-draft")
}

// ownerAndDraftID reads the caller and the draft id, writing the error
// response itself when either is missing.
func ownerAndDraftID(w http.ResponseWriter, r *http.Request) (int64, string, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return 0, "", false
	}
	draftID := mux.Vars(r)["id"]
	if _, err := uuid.Parse(draftID); err != nil {
		http.Error(w, msgInvalidDraftID, http.StatusBadRequest)
		return 0, "", false
	}
	return identity.UserID, draftID, true
}

func (handler *Handler) handleNew(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.new")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	d := draft.New()
	if err := handler.store.Create(ctx, identity.UserID, d); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("new draft for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to create draft", http.StatusServiceUnavailable)
		return
	}

	span.SetAttributes(attribute.String("draft.id", d.ID))
	pkg.WriteJSON(w, d, http.StatusCreated)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.get")
	defer span.End()

	ownerID, draftID, ok := ownerAndDraftID(w, r)
	if !ok {
		return
	}

	d, err := handler.store.Get(ctx, ownerID, draftID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	pkg.WriteJSON(w, d, http.StatusOK)
}

func (handler *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.cancel")
	defer span.End()

	ownerID, draftID, ok := ownerAndDraftID(w, r)
	if !ok {
		return
	}

	deleted, err := handler.store.Delete(ctx, ownerID, draftID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	if !deleted {
		http.Error(w, msgDraftNotFound, http.StatusNotFound)
		return
	}
	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) handleOp(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.op")
	defer span.End()

	ownerID, draftID, ok := ownerAndDraftID(w, r)
	if !ok {
		return
	}

	var op Op
	if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
		http.Error(w, "invalid draft operation", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("op", op.Op))

	var createdID string
	updated, err := handler.store.Update(ctx, ownerID, draftID, func(d *draft.WorkoutDraft) error {
		var applyErr error
		createdID, applyErr = Apply(d, op, handler.templates)
		return applyErr
	})
	handler.countOp(op.Op, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	pkg.WriteJSON(w, OpResponse{Draft: updated, CreatedID: createdID}, http.StatusOK)
}

func (handler *Handler) handleValidation(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.validation")
	defer span.End()

	ownerID, draftID, ok := ownerAndDraftID(w, r)
	if !ok {
		return
	}

	d, err := handler.store.Get(ctx, ownerID, draftID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	resp := ValidationResponse{Valid: true}
	if validationErr := d.Validate(); validationErr != nil {
		resp = ValidationResponse{
			Error:    validationErr.Message,
			Rule:     string(validationErr.Rule),
			Exercise: validationErr.ExercisePosition,
		}
	}
	pkg.WriteJSON(w, resp, http.StatusOK)
}

// handleSubmit saves the draft as a workout and discards it. Saving is
// idempotent per draft id, so a retried submit after a lost response returns
// the already saved workout.
func (handler *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "draftsHandler.submit")
	defer span.End()

	ownerID, draftID, ok := ownerAndDraftID(w, r)
	if !ok {
		return
	}

	unlock, err := handler.store.LockSubmit(ctx, ownerID, draftID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			log.Warnf("release submit lock of draft %s: %s", draftID, err)
		}
	}()

	d, err := handler.store.Get(ctx, ownerID, draftID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	saved, err := handler.saver.Save(ctx, ownerID, d)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		workout.WriteError(w, err)
		return
	}

	if _, err := handler.store.Delete(ctx, ownerID, draftID); err != nil {
		// the workout is saved, a leftover draft expires on its own
		log.Warnf("discard submitted draft %s: %s", draftID, err)
	}

	span.SetAttributes(attribute.Int64("workout.id", saved.ID))
	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) countOp(op string, err error) {
	if handler.metricsManager == nil {
		return
	}
	if !KnownOp(op) {
		op = "unknown"
	}
	result := "ok"
	switch {
	case err == nil:
	case IsRejected(err):
		result = "rejected"
	case errors.Is(err, ErrDraftConflict):
		result = "conflict"
	case errors.Is(err, ErrDraftNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	handler.metricsManager.CounterDraftOps.WithLabelValues(op, result).Inc()
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDraftNotFound):
		http.Error(w, msgDraftNotFound, http.StatusNotFound)
	case errors.Is(err, ErrDraftConflict):
		http.Error(w, "draft changed, reload and retry", http.StatusConflict)
	case errors.Is(err, ErrSubmitInProgress):
		http.Error(w, "draft is already being submitted", http.StatusConflict)
	case IsRejected(err):
		msg, _ := RejectionMessage(err)
		log.Debugf("drafts: rejected operation: %s", err)
		http.Error(w, msg, http.StatusBadRequest)
	default:
		log.Errorf("drafts: %s", err)
		http.Error(w, msgLoadFailed, http.StatusServiceUnavailable)
	}
}
