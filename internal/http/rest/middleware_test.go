package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util/values"
	"github.com/golang-jwt/jwt"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestRequireLogin_RejectsBadCredentials(t *testing.T) {
	future := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name       string
		header     string
		wantStatus string
	}{
		{"missing header", "", values.NotAuthorised},
		{"wrong scheme", "Token abc", values.NotAuthorised},
		{"garbage token", "Bearer not.a.jwt", values.NotAuthorised},
		{
			"expired token",
			"Bearer " + signClaims(t, testSecret, jwt.MapClaims{"username": "alice", "typ": "access", "exp": time.Now().Add(-time.Hour).Unix()}),
			values.TokenExpired,
		},
		{
			"foreign signature",
			"Bearer " + signClaims(t, "other-secret", jwt.MapClaims{"username": "alice", "typ": "access", "exp": future}),
			values.NotAuthorised,
		},
		{
			"missing username",
			"Bearer " + signClaims(t, testSecret, jwt.MapClaims{"sub": "alice", "typ": "access", "exp": future}),
			values.NotAuthorised,
		},
		{
			"refresh token type",
			"Bearer " + signClaims(t, testSecret, jwt.MapClaims{"username": "alice", "typ": "refresh", "exp": future}),
			values.NotAuthorised,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)

			req := httptest.NewRequest(http.MethodGet, "/case/all", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			env := decodeEnvelope(t, rec, nil)
			assert.Equal(t, tc.wantStatus, env.Status)
			s.verify(t)
		})
	}
}

func TestVerifyToken_RejectsUnsignedToken(t *testing.T) {
	s := newTestServer(t)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"username": "alice",
		"typ":      "access",
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.api.verifyToken(token)
	assert.ErrorIs(t, err, errInvalidToken)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	s := newTestServer(t)

	username, err := s.api.verifyToken(s.token(t, "alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	_, err = s.api.verifyToken(signClaims(t, testSecret, jwt.MapClaims{"typ": "access"}))
	assert.ErrorIs(t, err, errMissingUsername)
}

func TestRequireLogin_UnknownUser(t *testing.T) {
	s := newTestServer(t)

	s.mock.ExpectQuery(q("FROM users WHERE username = $1")).
		WithArgs("gone").
		WillReturnError(pgx.ErrNoRows)

	rec := s.do(t, http.MethodGet, "/case/all", nil, s.token(t, "gone"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, "user-not-found", env.Message)
	s.verify(t)
}

func TestRequireLogin_ReadsRoleOnEveryRequest(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "sam")

	s.expectActor("sam", model.RoleJuror)
	s.mock.ExpectQuery(q("FROM cases")).
		WithArgs("%smith%").
		WillReturnRows(pgxmock.NewRows(caseCols))

	rec := s.do(t, http.MethodGet, "/case/by-name/smith", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the same token after the role changed in storage
	s.expectActor("sam", model.RoleJudge)

	rec = s.do(t, http.MethodGet, "/case/by-name/smith", nil, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	s.verify(t)
}

func TestRequestTracing(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectPing()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(values.HeaderRequestID, "req-42")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(values.HeaderRequestID))

	s.mock.ExpectPing()
	rec = s.do(t, http.MethodGet, "/health", nil, "")
	assert.NotEmpty(t, rec.Header().Get(values.HeaderRequestID))
}
