package workout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/internal/workout/draft"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	msgSaveFailed  = "failed to save workout, try again"
	msgLoadFailed  = "failed to load workouts"
	msgNotFound    = "workout not found"
	msgNoCanDo     = "no can do"
	msgInvalidID   = "invalid workout id"
	msgInvalidBody = "invalid workout draft"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workout_test

type workoutsService interface {
	Save(ctx context.Context, ownerID int64, d *draft.WorkoutDraft) (*Workout, error)
	History(ctx context.Context, ownerID int64, limit, offset int) ([]Workout, error)
	Get(ctx context.Context, ownerID, id int64) (*Workout, error)
	Feed(ctx context.Context, viewerID int64, limit, offset int) ([]Workout, error)
	Delete(ctx context.Context, ownerID, id int64) error
}

var _ workoutsService = (*Persister)(nil)

type Handler struct {
	service workoutsService
}

func NewHandler(service workoutsService) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the workout routes. The save middlewares wrap only
// the save route.
func (handler *Handler) SetupRoutes(mainRouter *mux.Router, saveMiddlewares ...mux.MiddlewareFunc) {
	var save http.Handler = http.HandlerFunc(handler.handleSave)
	for i := len(saveMiddlewares) - 1; i >= 0; i-- {
		save = saveMiddlewares[i].Middleware(save)
	}
	mainRouter.Handle("/workouts", save).Methods("POST").Name("save-workout")
	mainRouter.HandleFunc("/workouts", handler.handleHistory).Methods("GET").Name("workout-history")
	mainRouter.HandleFunc("/workouts/{id}", handler.handleGet).Methods("GET").Name("get-workout")
	mainRouter.HandleFunc("/workouts/{id}", handler.handleDelete).Methods("DELETE").Name("delete-workout")
	mainRouter.HandleFunc("/feed", handler.handleFeed).Methods("GET").Name("feed")
}

// handleSave persists a complete draft sent in the request body.
func (handler *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutHandler.save")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	var d draft.WorkoutDraft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		log.Tracef("save workout, decode draft: %s", err)
		http.Error(w, msgInvalidBody, http.StatusBadRequest)
		return
	}
	if err := d.Normalize(); err != nil {
		log.Tracef("save workout, normalize draft: %s", err)
		http.Error(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Save(ctx, identity.UserID, &d)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		WriteError(w, err)
		return
	}

	span.SetAttributes(attribute.Int64("workout.id", saved.ID))
	pkg.WriteJSON(w, saved, http.StatusCreated)
}

func (handler *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutHandler.history")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	limit, offset, err := pkg.ParsePaging(r, DefaultPageLimit, MaxPageLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workouts, err := handler.service.History(ctx, identity.UserID, limit, offset)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		WriteError(w, err)
		return
	}

	span.SetAttributes(attribute.Int("workouts", len(workouts)))
	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutHandler.get")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, msgInvalidID, http.StatusBadRequest)
		return
	}

	found, err := handler.service.Get(ctx, identity.UserID, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, found, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutHandler.delete")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, msgInvalidID, http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, identity.UserID, id); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, ErrWorkoutNotFound) || errors.Is(err, ErrUnauthenticated) {
			WriteError(w, err)
			return
		}
		log.Errorf("delete workout %d: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutHandler.feed")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
		return
	}

	limit, offset, err := pkg.ParsePaging(r, DefaultPageLimit, MaxPageLimit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workouts, err := handler.service.Feed(ctx, identity.UserID, limit, offset)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		WriteError(w, err)
		return
	}

	pkg.WriteJSON(w, workouts, http.StatusOK)
}

// WriteError maps persister errors to a status code and a short message.
// Error details are logged, never sent to the client.
func WriteError(w http.ResponseWriter, err error) {
	var validationErr *draft.ValidationError
	var writeErr *StoreWriteError
	var readErr *StoreReadError

	switch {
	case errors.As(err, &validationErr):
		pkg.WriteJSON(w, map[string]any{
			"error":    validationErr.Message,
			"rule":     validationErr.Rule,
			"exercise": validationErr.ExercisePosition,
		}, http.StatusBadRequest)
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, msgNoCanDo, http.StatusUnauthorized)
	case errors.Is(err, ErrWorkoutNotFound):
		http.Error(w, msgNotFound, http.StatusNotFound)
	case errors.Is(err, ErrDuplicateDraft):
		http.Error(w, "workout already saved", http.StatusConflict)
	case errors.As(err, &writeErr):
		http.Error(w, msgSaveFailed, http.StatusInternalServerError)
	case errors.As(err, &readErr):
		log.Errorf("workouts read: %s", readErr)
		http.Error(w, msgLoadFailed, http.StatusServiceUnavailable)
	default:
		log.Errorf("workouts: unexpected error: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
