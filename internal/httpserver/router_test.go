package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"projectdesk/internal/handler"
	"projectdesk/internal/model"
	"projectdesk/internal/repository/memory"
	"projectdesk/internal/service"
	"projectdesk/pkg/trace"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeBroker struct{ up bool }

func (b fakeBroker) IsConnected() bool { return b.up }

// countingRepo wraps a repository and counts writes.
type countingRepo[T any] struct {
	service.Repository[T]
	writes int
}

func (r *countingRepo[T]) Insert(ctx context.Context, rec *T) (int, error) {
	r.writes++
	return r.Repository.Insert(ctx, rec)
}

func (r *countingRepo[T]) Update(ctx context.Context, rec *T) error {
	r.writes++
	return r.Repository.Update(ctx, rec)
}

type testServer struct {
	router   *gin.Engine
	projects *countingRepo[model.Project]
}

func newTestServer(t *testing.T, deps Deps) *testServer {
	t.Helper()
	log := zap.NewNop()
	deps.Logger = log

	store := memory.NewMemoryStorage()
	projects := &countingRepo[model.Project]{Repository: store.Projects()}
	return &testServer{router: NewRouter(handlersFor(store, projects, log), deps), projects: projects}
}

func handlersFor(store *memory.MemoryStorage, projects service.Repository[model.Project], log *zap.Logger) Handlers {
	return Handlers{
		Projects:  handler.NewProjectHandler(service.NewProjectService(projects, service.NopPublisher{}, log), log),
		Employees: handler.NewEmployeeHandler(service.NewEmployeeService(store.Employees(), service.NopPublisher{}, log), log),
		Tasks:     handler.NewTaskHandler(service.NewTaskService(store.Tasks(), service.NopPublisher{}, log), log),
	}
}

func newHandlers(log *zap.Logger) Handlers {
	store := memory.NewMemoryStorage()
	return handlersFor(store, store.Projects(), log)
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["detail"]
}

const projectBody = `{"name":"X","description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`

func TestProjectScenario_CreateThenGet(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodPost, "/api/projects/", projectBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	id := int(created["id"].(float64))
	assert.Positive(t, id)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[map[string]any](t, w)

	assert.Equal(t, created, got)
	assert.Equal(t, "X", got["name"])
	assert.Equal(t, "D", got["description"])
	assert.Equal(t, "2024-01-01", got["init_date"])
	assert.Equal(t, "2024-02-01", got["finish_date"])
}

func TestListWithAndWithoutTrailingSlash(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	s.do(t, http.MethodPost, "/api/projects", projectBody)
	s.do(t, http.MethodPost, "/api/projects/", projectBody)

	w = s.do(t, http.MethodGet, "/api/projects/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 2)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	s := newTestServer(t, Deps{})

	for resource, msg := range map[string]string{
		"projects":  "Project not found",
		"employees": "Employee not found",
		"tasks":     "Task not found",
	} {
		t.Run(resource, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/"+resource+"/12345", "")
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, msg, detail(t, w))
		})
	}
}

func TestDeleteUnknownEmployeeIsNotFound(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodDelete, "/api/employees/9999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", detail(t, w))
}

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodPost, "/api/employees/", `{"name":"Ana","email":"ana@example.com","phone":"555","post":"Dev"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decode[map[string]any](t, w)["id"].(float64))
	path := fmt.Sprintf("/api/employees/%d", id)

	w = s.do(t, http.MethodPut, path, `{"name":"Ana B","email":"anab@example.com","phone":"556","post":"QA"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"Ana B","email":"anab@example.com","phone":"556","post":"QA"}`, id), w.Body.String())

	w = s.do(t, http.MethodPatch, path, `{"post":"Lead"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"name":"Ana B","email":"anab@example.com","phone":"556","post":"Lead"}`, id), w.Body.String())

	w = s.do(t, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Employee deleted"}`, w.Body.String())

	w = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPatch, path, `{"post":"Lead"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateIsIdempotent(t *testing.T) {
	s := newTestServer(t, Deps{})
	s.do(t, http.MethodPost, "/api/projects/", projectBody)

	update := `{"name":"Y","description":"E","init_date":"2024-03-01","finish_date":"2024-04-01"}`
	first := s.do(t, http.MethodPut, "/api/projects/1", update)
	require.Equal(t, http.StatusOK, first.Code)
	stateAfterFirst := s.do(t, http.MethodGet, "/api/projects/1", "").Body.String()

	second := s.do(t, http.MethodPut, "/api/projects/1", update)
	require.Equal(t, http.StatusOK, second.Code)
	stateAfterSecond := s.do(t, http.MethodGet, "/api/projects/1", "").Body.String()

	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.JSONEq(t, stateAfterFirst, stateAfterSecond)
}

func TestUpdateUnknownIsNotFound(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodPut, "/api/projects/77", projectBody)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Project not found", detail(t, w))
}

func TestInvalidPayloadNeverReachesStorage(t *testing.T) {
	s := newTestServer(t, Deps{})

	cases := map[string]string{
		"missing field": `{"description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`,
		"too long":      `{"name":"` + strings.Repeat("n", 51) + `","description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`,
		"bad date":      `{"name":"X","description":"D","init_date":"2024/01/01","finish_date":"2024-02-01"}`,
		"wrong type":    `{"name":1,"description":"D","init_date":"2024-01-01","finish_date":"2024-02-01"}`,
		"malformed":     `{"name":"X"`,
		"empty":         ``,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/projects/", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotEmpty(t, detail(t, w))
		})
	}

	w := s.do(t, http.MethodPut, "/api/projects/1", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Zero(t, s.projects.writes)
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	s := newTestServer(t, Deps{})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := s.do(t, method, "/api/tasks/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `invalid id "abc"`, detail(t, w))
	}
}

func TestTaskStatusDefaultsFalse(t *testing.T) {
	s := newTestServer(t, Deps{})
	s.do(t, http.MethodPost, "/api/projects/", projectBody)
	s.do(t, http.MethodPost, "/api/employees/", `{"name":"Ana","email":"a@example.com","phone":"1","post":"Dev"}`)

	w := s.do(t, http.MethodPost, "/api/tasks/", `{"project_id":1,"employee_id":1,"title":"T","description":"D","deadline":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, w)
	assert.Equal(t, false, created["status"])

	w = s.do(t, http.MethodGet, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"project_id":1,"employee_id":1,"title":"T","description":"D","deadline":"2024-05-01","status":false}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/tasks/1", `{"project_id":1,"employee_id":1,"title":"T","description":"D","deadline":"2024-05-01","status":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]any](t, w)["status"])
}

func TestTaskWithDanglingReferenceIsServerError(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodPost, "/api/tasks/", `{"project_id":5,"employee_id":5,"title":"T","description":"D","deadline":"2024-05-01"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred while creating the task", detail(t, w))
}

func TestDeleteThenGet(t *testing.T) {
	s := newTestServer(t, Deps{})
	s.do(t, http.MethodPost, "/api/projects/", projectBody)

	w := s.do(t, http.MethodDelete, "/api/projects/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"Project deleted"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/projects/1", "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodDelete, "/api/projects/1", "").Code)
}

func TestRootRedirectsToDocs(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/docs", w.Header().Get("Location"))

	w = s.do(t, http.MethodGet, "/docs", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/api/employees/:id"`)
	assert.Contains(t, w.Body.String(), `"PATCH"`)
}

func TestHealthAndReadiness(t *testing.T) {
	s := newTestServer(t, Deps{})
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodHead, "/health", "").Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/readyz", "").Code)

	s = newTestServer(t, Deps{DB: fakePinger{err: errors.New("down")}})
	w := s.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "db_not_ready")

	s = newTestServer(t, Deps{DB: fakePinger{}, Broker: fakeBroker{up: false}})
	w = s.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","mq":"disconnected"}`, w.Body.String())

	s = newTestServer(t, Deps{DB: fakePinger{}, Broker: fakeBroker{up: true}})
	w = s.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","mq":"connected"}`, w.Body.String())
}

func TestPanicIsLoggedAsServerError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := NewRouter(newHandlers(zap.NewNop()), Deps{Logger: zap.New(core)})
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	requests := logs.FilterMessage("HTTP Request").All()
	require.Len(t, requests, 1)
	assert.EqualValues(t, http.StatusInternalServerError, requests[0].ContextMap()["status"])
}

func TestOutOfRangeIDIsNotFound(t *testing.T) {
	s := newTestServer(t, Deps{})

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := s.do(t, method, "/api/projects/9999999999", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Project not found", detail(t, w))
	}

	w := s.do(t, http.MethodPut, "/api/tasks/-9999999999", `{"project_id":1,"employee_id":1,"title":"T","description":"D","deadline":"2024-05-01"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", detail(t, w))
}

func TestTaskReferenceOutOfRangeIsBadRequest(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodPost, "/api/tasks/", `{"project_id":3000000000,"employee_id":1,"title":"T","description":"D","deadline":"2024-05-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "project_id must be of type int32", detail(t, w))

	w = s.do(t, http.MethodGet, "/api/tasks/", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestItemRoutesAcceptTrailingSlash(t *testing.T) {
	s := newTestServer(t, Deps{})
	s.do(t, http.MethodPost, "/api/projects/", projectBody)

	w := s.do(t, http.MethodGet, "/api/projects/1/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPut, "/api/projects/1/", strings.Replace(projectBody, `"X"`, `"Y"`, 1))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Y", decode[map[string]any](t, w)["name"])

	w = s.do(t, http.MethodPatch, "/api/employees/1/", `{"name":"Ana"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", detail(t, w))

	w = s.do(t, http.MethodDelete, "/api/projects/1/", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Deps{})
	s.do(t, http.MethodGet, "/api/projects/", "")

	w := s.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_request_duration_seconds")
}

func TestTraceIDHeader(t *testing.T) {
	s := newTestServer(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(trace.HeaderName, "given-trace")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "given-trace", w.Header().Get(trace.HeaderName))

	w = s.do(t, http.MethodGet, "/healthz", "")
	assert.Len(t, w.Header().Get(trace.HeaderName), 32)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, Deps{})

	w := s.do(t, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not Found", detail(t, w))
}
