//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"
	"strings"
)

func (s *IntegrationTestSuite) TestLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for name, tc := range map[string]struct {
		req          loginRequest
		expectedCode int
		expectedBody string
	}{
		"bad password": {
			req:          loginRequest{Username: testUsername, Password: "bad-password"},
			expectedCode: http.StatusBadRequest,
			expectedBody: "error, wrong credentials",
		},
		"unknown user": {
			req:          loginRequest{Username: "nobody", Password: testPassword},
			expectedCode: http.StatusBadRequest,
			expectedBody: "error, wrong credentials",
		},
		"empty password": {
			req:          loginRequest{Username: testUsername},
			expectedCode: http.StatusBadRequest,
			expectedBody: "error, password empty",
		},
	} {
		code, body := doRequest(ctx, t, s.httpClient, http.MethodPost, "/a/login", "", tc.req)
		s.Equal(tc.expectedCode, code, name)
		s.Equal(tc.expectedBody, strings.TrimSpace(string(body)), name)
	}
}

func (s *IntegrationTestSuite) TestLoginLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	token := doLogin(ctx, t, s.httpClient)

	code, _ := doRequest(ctx, t, s.httpClient, http.MethodGet, "/workouts", token, nil)
	s.Equal(http.StatusOK, code)

	code, body := doRequest(ctx, t, s.httpClient, http.MethodGet, "/a/logout", token, nil)
	s.Require().Equal(http.StatusOK, code)
	s.Equal("logged-out", string(body))

	code, _ = doRequest(ctx, t, s.httpClient, http.MethodGet, "/workouts", token, nil)
	s.Equal(http.StatusUnauthorized, code)
}
