package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posthoc/domain/posthoc"
	"posthoc/internal/errors"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(nil, nil, "")
}

func postJSON(t *testing.T, s *Server, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func validRequest() map[string]interface{} {
	return map[string]interface{}{
		"row_names": []string{"Male", "Female", "Juv"},
		"col_names": []string{"site1", "site2", "site3"},
		"counts":    [][]int{{76, 32, 46}, {48, 23, 47}, {45, 34, 78}},
	}
}

func TestAnalyzeEndpointReturnsReport(t *testing.T) {
	s := newTestServer()

	rec := postJSON(t, s, "/api/v1/posthoc", validRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report posthoc.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 3, report.Len())
	assert.Equal(t, "Male vs. Female", report.Rows[0].Label)
	assert.Equal(t, "BH", report.Correction)
}

func TestAnalyzeEndpointRejectsUnknownStrategy(t *testing.T) {
	s := newTestServer()

	body := validRequest()
	body["params"] = map[string]interface{}{"test": "g-test"}

	rec := postJSON(t, s, "/api/v1/posthoc", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeUnknownStrategy, resp["code"])
}

func TestAnalyzeEndpointRejectsMalformedTable(t *testing.T) {
	s := newTestServer()

	body := validRequest()
	body["counts"] = [][]int{{1, 2}, {3, 4}} // two rows of counts, three row names

	rec := postJSON(t, s, "/api/v1/posthoc", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointStrategyFailure(t *testing.T) {
	s := newTestServer()

	body := validRequest()
	body["counts"] = [][]int{{76, 32, 46}, {0, 0, 0}, {45, 34, 78}}

	rec := postJSON(t, s, "/api/v1/posthoc", body)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, errors.CodeStrategyFailure, resp["code"])
}

func TestMethodsEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/methods", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["tests"], "chi-square")
	assert.Contains(t, resp["tests"], "fisher")
	assert.Contains(t, resp["corrections"], "BH")
	assert.Contains(t, resp["corrections"], "hommel")
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
