package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shinyyama/priority-items/internal/dbtest"
	"github.com/shinyyama/priority-items/internal/handler"
	"github.com/shinyyama/priority-items/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()
	db := dbtest.Open(t)
	_, err := repository.NewPriorityRepository(db).EnsureSeeded(ctx)
	require.NoError(t, err)
	require.NoError(t, repository.NewItemRepository(db).Migrate(ctx))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>items</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "items"), []byte("shadow"), 0o644))

	return New(db, zap.NewNop(), Options{StaticDir: dir})
}

func call(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCreateScenario(t *testing.T) {
	s := newTestServer(t)

	rec := call(s, http.MethodPost, "/items", `{"name":"Fix bug","description":"","priorityId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got handler.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Fix bug", got.Name)
	assert.Equal(t, "", got.Description)
	assert.EqualValues(t, 1, got.PriorityID)
	assert.Equal(t, "Urgente", got.PriorityLabel)
}

func TestItemLifecycle(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, call(s, http.MethodPost, "/items", `{"name":"a","description":"","priorityId":2}`).Code)
	require.Equal(t, http.StatusCreated, call(s, http.MethodPost, "/items", `{"name":"b","description":"","priorityId":3}`).Code)

	rec := call(s, http.MethodPost, "/items", `{"name":"c","description":"","priorityId":77}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = call(s, http.MethodPut, "/items/1", `{"name":"a2","description":"edited","priorityId":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"name":"a2","description":"edited","priorityId":1,"priorityLabel":"Urgente"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, call(s, http.MethodPut, "/items/40", `{"name":"x","description":"","priorityId":1}`).Code)

	assert.Equal(t, http.StatusNoContent, call(s, http.MethodDelete, "/items/2", "").Code)
	assert.Equal(t, http.StatusNotFound, call(s, http.MethodDelete, "/items/2", "").Code)

	rec = call(s, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"name":"a2","description":"edited","priorityId":1,"priorityLabel":"Urgente"}]`, rec.Body.String())
}

func TestPriorities(t *testing.T) {
	s := newTestServer(t)

	rec := call(s, http.MethodGet, "/priorities", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":1,"label":"Urgente"},{"id":2,"label":"Medio"},{"id":3,"label":"Bajo"}]`, rec.Body.String())
}

func TestStaticFilesAndAPIPrecedence(t *testing.T) {
	s := newTestServer(t)

	rec := call(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>items</h1>")

	rec = call(s, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, call(s, http.MethodGet, "/missing.css", "").Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, call(s, http.MethodGet, "/healthz", "").Code)
}

func TestDescriptionStoredAsSent(t *testing.T) {
	s := newTestServer(t)

	rec := call(s, http.MethodPost, "/items", `{"name":"  Fix bug  ","description":"  line one\n","priorityId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created handler.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Fix bug", created.Name)
	assert.Equal(t, "  line one\n", created.Description)

	rec = call(s, http.MethodPut, "/items/1", `{"name":"Fix bug","description":"\tsecond ","priorityId":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(s, http.MethodGet, "/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []handler.ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "\tsecond ", list[0].Description)
}
