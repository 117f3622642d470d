package favorites

import (
	"context"
	"net/http"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=favorites_test

type favoritesRepo interface {
	List(ctx context.Context, userID int64) ([]string, error)
	Add(ctx context.Context, userID int64, exerciseID string) error
	Remove(ctx context.Context, userID int64, exerciseID string) (bool, error)
}

// exerciseChecker tells whether an id exists in the exercise catalog.
type exerciseChecker interface {
	Has(id string) bool
}

var _ favoritesRepo = (*PsqlRepo)(nil)

type Handler struct {
	repo      favoritesRepo
	exercises exerciseChecker
}

func NewHandler(repo favoritesRepo, exercises exerciseChecker) *Handler {
	return &Handler{
		repo:      repo,
		exercises: exercises,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	favRouter := mainRouter.PathPrefix("/favorites").Subrouter()
	favRouter.HandleFunc("", handler.handleList).Methods("GET").Name("list-favorites")
	favRouter.HandleFunc("/{exerciseId}", handler.handleAdd).Methods("PUT").Name("add-favorite")
	favRouter.HandleFunc("/{exerciseId}", handler.handleRemove).Methods("DELETE").Name("remove-favorite")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "favoritesHandler.list")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	ids, err := handler.repo.List(ctx, identity.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("list favorites of %d: %s", identity.UserID, err)
		http.Error(w, "failed to load favorites", http.StatusServiceUnavailable)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	pkg.WriteJSON(w, ids, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "favoritesHandler.add")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["exerciseId"]
	if !handler.exercises.Has(exerciseID) {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}

	if err := handler.repo.Add(ctx, identity.UserID, exerciseID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("add favorite %s of %d: %s", exerciseID, identity.UserID, err)
		http.Error(w, "failed to add favorite", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, "added")
}

func (handler *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "favoritesHandler.remove")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["exerciseId"]
	removed, err := handler.repo.Remove(ctx, identity.UserID, exerciseID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("remove favorite %s of %d: %s", exerciseID, identity.UserID, err)
		http.Error(w, "failed to remove favorite", http.StatusInternalServerError)
		return
	}
	if !removed {
		http.Error(w, "favorite not found", http.StatusNotFound)
		return
	}
	pkg.WriteTextResponseOK(w, "removed")
}
