package catalog_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/catalog"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, favorites *MockfavoritesLister) *mux.Router {
	c, _ := newTestCatalog(t, 0)
	r := mux.NewRouter()
	catalog.NewHandler(c, favorites).SetupRoutes(r)
	return r
}

func TestHandler_Routes(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, route := range []struct {
		name string
		path string
	}{
		{name: "catalog-search", path: "/catalog/exercises"},
		{name: "catalog-exercise", path: "/catalog/exercises/Plank"},
		{name: "catalog-facets", path: "/catalog/facets"},
	} {
		req, err := http.NewRequest("GET", route.path, nil)
		require.NoError(t, err)
		routeMatch := &mux.RouteMatch{}
		require.True(t, r.Match(req, routeMatch), route.name)
		assert.Equal(t, route.name, routeMatch.Route.GetName())
	}
}

func TestHandler_Search(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/exercises?q=barbell&limit=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var page catalog.Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, []string{"Barbell_Squat"}, ids(page.Exercises))
	assert.Equal(t, 2, page.Total)
	assert.True(t, page.HasMore)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/exercises?offset=-3", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandler_Search_Favorites(t *testing.T) {
	ctrl := gomock.NewController(t)
	favorites := NewMockfavoritesLister(ctrl)
	r := newTestRouter(t, favorites)

	// favorites need a logged in user
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/exercises?favorites=true", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	withUser := func(req *http.Request) *http.Request {
		return req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{UserID: 4, Username: "ana"}))
	}

	favorites.EXPECT().List(gomock.Any(), int64(4)).Return([]string{"Plank", "Hamstring_Stretch"}, nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, withUser(httptest.NewRequest("GET", "/catalog/exercises?favorites=true&q=stretch", nil)))
	require.Equal(t, http.StatusOK, rr.Code)
	var page catalog.Page
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
	assert.Equal(t, []string{"Hamstring_Stretch"}, ids(page.Exercises))

	favorites.EXPECT().List(gomock.Any(), int64(4)).Return(nil, errors.New("db down"))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, withUser(httptest.NewRequest("GET", "/catalog/exercises?favorites=1", nil)))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHandler_GetAndFacets(t *testing.T) {
	r := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/exercises/Pullups", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var exercise catalog.Exercise
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &exercise))
	assert.Equal(t, "Pullups", exercise.Name)
	assert.Equal(t, "body only", exercise.Equipment)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/exercises/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/catalog/facets", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var facets catalog.Facets
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &facets))
	assert.Contains(t, facets.Muscles, "lats")
}
