//go:build integration_test || all_tests

package test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/gymlog/internal/catalog"
)

func (s *IntegrationTestSuite) TestFavoritesAndCatalog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	code, _ := doRequest(ctx, t, s.httpClient, http.MethodPut, "/favorites/Plank", token, nil)
	s.Require().Equal(http.StatusOK, code)
	code, _ = doRequest(ctx, t, s.httpClient, http.MethodPut, "/favorites/Pullups", token, nil)
	s.Require().Equal(http.StatusOK, code)
	code, _ = doRequest(ctx, t, s.httpClient, http.MethodPut, "/favorites/Moon_Walk", token, nil)
	s.Equal(http.StatusNotFound, code)

	code, body := doRequest(ctx, t, s.httpClient, http.MethodGet, "/catalog/exercises?favorites=true", token, nil)
	s.Require().Equal(http.StatusOK, code, string(body))
	var page catalog.Page
	s.Require().NoError(json.Unmarshal(body, &page))
	s.Equal(2, page.Total)

	code, _ = doRequest(ctx, t, s.httpClient, http.MethodDelete, "/favorites/Plank", token, nil)
	s.Equal(http.StatusOK, code)

	code, body = doRequest(ctx, t, s.httpClient, http.MethodGet, "/favorites", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var ids []string
	s.Require().NoError(json.Unmarshal(body, &ids))
	s.Equal([]string{"Pullups"}, ids)

	code, body = doRequest(ctx, t, s.httpClient, http.MethodGet, "/catalog/exercises/Pullups", token, nil)
	s.Require().Equal(http.StatusOK, code)
	var e catalog.Exercise
	s.Require().NoError(json.Unmarshal(body, &e))
	s.Equal("Pullups", e.Name)
}
