package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/middleware"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthMiddlewareHandler_AuthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoginChecker := NewMockloginChecker(ctrl)
	authMiddleware := middleware.NewAuthMiddlewareHandler(mockLoginChecker)

	ana := auth.Identity{UserID: 11, Username: "ana"}

	testCases := []struct {
		name               string
		path               string
		method             string
		token              string
		expectedStatusCode int
		expectedIdentity   *auth.Identity
		mockIdentity       auth.Identity
		mockIsLogged       bool
		mockIsLoggedErr    error
	}{
		{
			name:               "AllowedPathWithoutToken",
			path:               "/a/login",
			method:             "POST",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "Options",
			path:               "/workouts",
			method:             "OPTIONS",
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "NotAllowedPathWithoutToken",
			path:               "/workouts",
			method:             "GET",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "ValidToken",
			path:               "/workouts",
			method:             "GET",
			token:              "valid-token",
			expectedStatusCode: http.StatusOK,
			expectedIdentity:   &ana,
			mockIdentity:       ana,
			mockIsLogged:       true,
		},
		{
			name:               "InvalidToken",
			path:               "/workouts",
			method:             "GET",
			token:              "invalid-token",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "LoginCheckError",
			path:               "/workouts",
			method:             "GET",
			token:              "error-token",
			expectedStatusCode: http.StatusUnauthorized,
			mockIsLoggedErr:    errors.New("redis gone"),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, tc.path, nil)
			assert.NoError(t, err)
			if tc.token != "" {
				req.Header.Add(auth.TokenHeader, tc.token)
				mockLoginChecker.EXPECT().
					Identify(gomock.Any(), tc.token).
					Return(tc.mockIdentity, tc.mockIsLogged, tc.mockIsLoggedErr)
			}

			var gotIdentity *auth.Identity
			rr := httptest.NewRecorder()
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if identity, ok := auth.IdentityFromContext(r.Context()); ok {
					gotIdentity = &identity
				}
			})
			authMiddleware.AuthCheck()(handler).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatusCode, rr.Code)
			assert.Equal(t, tc.expectedIdentity, gotIdentity)
		})
	}
}
