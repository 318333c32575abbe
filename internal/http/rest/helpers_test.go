package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/bwise1/court_cases/config"
	"github.com/bwise1/court_cases/internal/db"
	deps "github.com/bwise1/court_cases/internal/debs"
	"github.com/bwise1/court_cases/internal/model"
	"github.com/bwise1/court_cases/util/websockets"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var caseCols = []string{"id", "defendant_name", "plaintiff_name", "argument", "evidence", "status", "submitted_by", "created_at"}

type testServer struct {
	api     *API
	mock    pgxmock.PgxPoolIface
	handler http.Handler
}

type envelope struct {
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{
		JwtSecret:  testSecret,
		JwtExpires: "1h",
		BcryptCost: bcrypt.MinCost,
	}
	a := &API{
		Config: cfg,
		Deps:   &deps.Dependencies{DB: db.FromPool(mock), Logger: zap.NewNop(), Hub: websockets.NewHub()},
		DB:     mock,
	}
	return &testServer{api: a, mock: mock, handler: a.setUpServerHandler()}
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	token, _, err := s.api.createToken(username)
	require.NoError(t, err)
	return token
}

// expectActor queues the per-request user lookup done by RequireLogin.
func (s *testServer) expectActor(username string, role model.Role) {
	s.mock.ExpectQuery(q("SELECT username, password, role, created_at FROM users WHERE username = $1")).
		WithArgs(username).
		WillReturnRows(pgxmock.NewRows([]string{"username", "password", "role", "created_at"}).
			AddRow(username, "hash", string(role), time.Now()))
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) verify(t *testing.T) {
	t.Helper()
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func caseRow(id int64, status model.CaseStatus) []interface{} {
	return []interface{}{id, "Dan Defendant", "Paula Plaintiff", "it was not me", "alibi", string(status), "dan", time.Now()}
}

// optionalString matches a *string query argument.
type optionalString struct {
	want *string
}

func (o optionalString) Match(v interface{}) bool {
	got, ok := v.(*string)
	if !ok {
		return false
	}
	if o.want == nil || got == nil {
		return o.want == nil && got == nil
	}
	return *o.want == *got
}

func strPtr(s string) *string {
	return &s
}
