package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/carnet/apps/api/echo"
	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/student"
	"github.com/trezcool/carnet/tests"
)

func newConfig(baseURL string) *core.Config {
	conf := new(core.Config)
	conf.API.BaseURL = baseURL
	conf.API.Timeout = 2 * time.Second
	conf.API.DefaultLimit = core.DefaultLimit
	return conf
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *testutil.Logger) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := new(testutil.Logger)
	c, err := NewClient(newConfig(srv.URL), logger)
	require.NoError(t, err)
	return c, logger
}

func newStubServer(t *testing.T) http.Handler {
	_, repos := testutil.NewInmemRepos()
	validate, translator := testutil.NewValidator()
	svcs := testutil.NewServices(repos, validate)
	return echoapi.NewServer(&echoapi.Options{
		TestMode:       true,
		DisableReqLogs: true,
		Translator:     translator,
		StudentSvc:     svcs.Students,
		SubjectSvc:     svcs.Subjects,
		ExamSvc:        svcs.Exams,
		GradeSvc:       svcs.Grades,
	})
}

func TestNewClient(t *testing.T) {
	logger := new(testutil.Logger)

	tests := []struct {
		name    string
		conf    *core.Config
		logger  core.Logger
		wantErr bool
	}{
		{name: "nil config", conf: nil, logger: logger, wantErr: true},
		{name: "nil logger", conf: newConfig("http://localhost:8000"), logger: nil, wantErr: true},
		{name: "no base URL", conf: newConfig(""), logger: logger, wantErr: true},
		{name: "valid", conf: newConfig("http://localhost:8000"), logger: logger},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.conf, tt.logger)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2*time.Second, c.Timeout())
		})
	}
}

func TestClient_request(t *testing.T) {
	var (
		mu      sync.Mutex
		queries []url.Values
		headers []http.Header
	)
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query())
		headers = append(headers, r.Header.Clone())
		mu.Unlock()
		assert.Equal(t, "/eleves/", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id": 1, "nom": "Diallo", "prenom": "Awa", "classe": "L1"}]`))
	}))

	students, err := c.Students().List(context.Background(), core.Page{})
	require.NoError(t, err)
	assert.Equal(t, []student.Student{{ID: 1, LastName: "Diallo", FirstName: "Awa", Class: "L1"}}, students)

	_, err = c.Students().List(context.Background(), core.Page{Skip: 40, Limit: 5})
	require.NoError(t, err)

	require.Len(t, queries, 2)
	assert.Equal(t, "0", queries[0].Get("skip"))
	assert.Equal(t, "20", queries[0].Get("limit"))
	assert.Equal(t, "40", queries[1].Get("skip"))
	assert.Equal(t, "5", queries[1].Get("limit"))

	assert.Equal(t, "application/json", headers[0].Get("Accept"))
	assert.NotEmpty(t, headers[0].Get(HeaderRequestID))
	assert.NotEqual(t, headers[0].Get(HeaderRequestID), headers[1].Get(HeaderRequestID))
}

func TestClient_apiError(t *testing.T) {
	c, logger := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail": "Not Found"}`))
		case http.MethodPost:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail": {"valeur": "la note doit être entre 0 et 20"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`oops`))
		}
	}))
	ctx := context.Background()

	_, err := c.Grades().Get(ctx, 7)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.False(t, core.IsValidation(err))
	apiErr, ok := errors.Cause(err).(*APIError)
	require.True(t, ok)
	assert.Equal(t, "/notes/7", apiErr.Path)
	assert.Equal(t, "Not Found", apiErr.Detail)
	assert.Equal(t, "GET /notes/7: 404 Not Found: Not Found", apiErr.Error())

	_, err = c.Grades().Create(ctx, grade.NewGrade{StudentID: 1, ExamID: 1, SubjectID: 1, Value: 21})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusCode(err))
	assert.Equal(t, map[string]string{"valeur": "la note doit être entre 0 et 20"}, err.(*APIError).FieldErrors())
	assert.True(t, core.IsValidation(err))
	assert.Equal(t, map[string]string{"valeur": "la note doit être entre 0 et 20"}, core.FieldMessages(err, nil))

	err = c.Grades().Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Equal(t, []byte("oops"), err.(*APIError).Body)

	assert.Len(t, logger.Logs("error"), 3)
	for _, msg := range logger.Logs("error") {
		assert.Contains(t, msg, logAPIError)
	}
}

func TestClient_requestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	logger := new(testutil.Logger)
	c, err := NewClient(newConfig(srv.URL), logger)
	require.NoError(t, err)

	_, err = c.Subjects().List(context.Background(), core.Page{})
	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
	assert.False(t, IsNotFound(err))
	require.Len(t, logger.Logs("error"), 1)
	assert.Contains(t, logger.Logs("error")[0], logRequestError)
}

func TestClient_timeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	conf := newConfig(srv.URL)
	conf.API.Timeout = 50 * time.Millisecond
	c, err := NewClient(conf, new(testutil.Logger))
	require.NoError(t, err)

	_, err = c.Exams().Get(context.Background(), 1)
	assert.Error(t, err)
}

func TestClient_CRUD(t *testing.T) {
	c, _ := newTestClient(t, newStubServer(t))
	ctx := context.Background()
	repo := c.Students()

	created, err := repo.Create(ctx, student.NewStudent{LastName: "Diallo", FirstName: "Awa", Class: student.LevelL1})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.NotNil(t, created.CreatedAt)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Awa Diallo", got.FullName())

	class := student.LevelM1
	updated, err := repo.Update(ctx, created.ID, student.UpdateStudent{Class: &class})
	require.NoError(t, err)
	assert.Equal(t, student.LevelM1, updated.Class)
	assert.Equal(t, "Diallo", updated.LastName)

	list, err := repo.List(ctx, core.Page{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, student.LevelM1, list[0].Class)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.True(t, IsNotFound(err))

	list, err = repo.List(ctx, core.Page{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
