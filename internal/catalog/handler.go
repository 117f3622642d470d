package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=catalog_test

type favoritesLister interface {
	List(ctx context.Context, userID int64) ([]string, error)
}

type Handler struct {
	catalog   *Catalog
	favorites favoritesLister
}

func NewHandler(catalog *Catalog, favorites favoritesLister) *Handler {
	return &Handler{
		catalog:   catalog,
		favorites: favorites,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	catalogRouter := mainRouter.PathPrefix("/catalog").Subrouter()
	catalogRouter.HandleFunc("/exercises", handler.handleSearch).Methods("GET").Name("catalog-search")
	catalogRouter.HandleFunc("/exercises/{id}", handler.handleGet).Methods("GET").Name("catalog-exercise")
	catalogRouter.HandleFunc("/facets", handler.handleFacets).Methods("GET").Name("catalog-facets")
}

// handleSearch serves one "load more" page: ?q=&muscle=&favorites=true&offset=&limit=
func (handler *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "catalogHandler.search")
	defer span.End()

	limit, offset, err := pkg.ParsePaging(r, DefaultPageSize, MaxPageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := SearchParams{
		Query:  r.URL.Query().Get("q"),
		Muscle: r.URL.Query().Get("muscle"),
		Offset: offset,
		Limit:  limit,
	}

	if onlyFavorites, _ := strconv.ParseBool(r.URL.Query().Get("favorites")); onlyFavorites {
		identity, ok := auth.IdentityFromContext(ctx)
		if !ok {
			http.Error(w, "no can do", http.StatusUnauthorized)
			return
		}
		ids, err := handler.favorites.List(ctx, identity.UserID)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			log.Errorf("catalog search, list favorites of %d: %s", identity.UserID, err)
			http.Error(w, "failed to load favorites", http.StatusServiceUnavailable)
			return
		}
		params.OnlyIDs = make(map[string]bool, len(ids))
		for _, id := range ids {
			params.OnlyIDs[id] = true
		}
	}

	page := handler.catalog.Search(params)
	span.SetAttributes(
		attribute.String("query", params.Query),
		attribute.Int("total", page.Total),
	)
	pkg.WriteJSON(w, page, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "catalogHandler.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	exercise, ok := handler.catalog.Get(id)
	if !ok {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}
	pkg.WriteJSON(w, exercise, http.StatusOK)
}

func (handler *Handler) handleFacets(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, handler.catalog.Facets(), http.StatusOK)
}
