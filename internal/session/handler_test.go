package session

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Airflow/internal/auth"
	"Airflow/internal/calc/pressure"
	"Airflow/internal/calc/summary"
)

type recordingPublisher struct {
	mu      sync.Mutex
	calls   []string
	cleared []string
	err     error
}

func (p *recordingPublisher) ClearSummary(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cleared = append(p.cleared, id)
	return p.err
}

func (p *recordingPublisher) PublishSummary(id string, _ summary.Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, id)
	return p.err
}

type testServer struct {
	router *mux.Router
	pub    *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	pub := &recordingPublisher{}
	h := &Handler{Store: NewStore(), Catalog: catalog(t), Publisher: pub}
	r := mux.NewRouter()
	h.Register(r)
	return &testServer{router: r, pub: pub}
}

func (ts *testServer) do(user int, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if user != 0 {
		req = req.WithContext(auth.WithUserID(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandlerFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(1, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[Response](t, rec).Session.ID

	rec = ts.do(1, http.MethodPost, "/sessions/"+id+"/template", `{"name":"Mid-Tower Gaming PC"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[Response](t, rec)
	assert.Equal(t, "Mid-Tower Gaming PC", resp.Session.Template)
	assert.Equal(t, 143.0, resp.Summary.Intake.TotalCFM)
	assert.Equal(t, pressure.Positive, resp.Summary.Pressure.Category)

	rec = ts.do(1, http.MethodPost, "/sessions/"+id+"/exhaust/rows",
		`{"name":"Top","static_pressure":1.2,"cfm":100,"watts_low":3,"watts_high":6,"db_low":20,"db_high":28}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 165.0, decode[Response](t, rec).Summary.Exhaust.TotalCFM)

	rec = ts.do(1, http.MethodPut, "/sessions/"+id+"/exhaust/rows/2",
		`{"name":"Top","static_pressure":1.2,"cfm":78,"watts_low":3,"watts_high":6,"db_low":20,"db_high":28}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, pressure.Neutral, decode[Response](t, rec).Summary.Pressure.Category)

	rec = ts.do(1, http.MethodDelete, "/sessions/"+id+"/exhaust/rows/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 65.0, decode[Response](t, rec).Summary.Exhaust.TotalCFM)

	rec = ts.do(1, http.MethodPut, "/sessions/"+id+"/volume", `{"liters":50}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[Response](t, rec).Summary.Cycles.Computable)

	rec = ts.do(1, http.MethodPut, "/sessions/"+id+"/strategy", `{"strategy":"Negative Pressure"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(1, http.MethodGet, "/sessions/"+id+"/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sr := decode[SummaryResponse](t, rec)
	assert.False(t, sr.Recommendation.Matches)
	assert.NotEmpty(t, sr.Recommendation.Notes)

	rec = ts.do(1, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]Session](t, rec)["sessions"], 1)

	assert.Len(t, ts.pub.calls, 7)

	rec = ts.do(1, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{id}, ts.pub.cleared)
	rec = ts.do(1, http.MethodGet, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerErrors(t *testing.T) {
	ts := newTestServer(t)
	id := decode[Response](t, ts.do(1, http.MethodPost, "/sessions", "")).Session.ID

	cases := []struct {
		name   string
		user   int
		method string
		path   string
		body   string
		want   int
	}{
		{"no user", 0, http.MethodGet, "/sessions/" + id, "", http.StatusUnauthorized},
		{"other owner", 2, http.MethodGet, "/sessions/" + id, "", http.StatusNotFound},
		{"bad role", 1, http.MethodPost, "/sessions/" + id + "/roof/rows", `{}`, http.StatusBadRequest},
		{"missing field", 1, http.MethodPost, "/sessions/" + id + "/intake/rows", `{"name":"x","cfm":1}`, http.StatusBadRequest},
		{"missing row", 1, http.MethodDelete, "/sessions/" + id + "/intake/rows/0", "", http.StatusNotFound},
		{"both units", 1, http.MethodPut, "/sessions/" + id + "/volume", `{"liters":1,"m3":1}`, http.StatusBadRequest},
		{"no unit", 1, http.MethodPut, "/sessions/" + id + "/volume", `{}`, http.StatusBadRequest},
		{"bad strategy", 1, http.MethodPut, "/sessions/" + id + "/strategy", `{"strategy":"sideways"}`, http.StatusBadRequest},
		{"bad json", 1, http.MethodPost, "/sessions/" + id + "/template", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(tc.user, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHandlerPublishFailureIsNotFatal(t *testing.T) {
	ts := newTestServer(t)
	ts.pub.err = errors.New("broker down")
	rec := ts.do(1, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, ts.pub.calls, 1)

	id := decode[Response](t, rec).Session.ID
	rec = ts.do(1, http.MethodDelete, "/sessions/"+id, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{id}, ts.pub.cleared)
}
