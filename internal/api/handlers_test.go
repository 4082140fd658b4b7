package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssa-data/babynames"
	"github.com/ssa-data/babynames/internal/models"
)

type stubTable struct {
	rows int64
	cols []string
}

func (t *stubTable) NumRows() int64        { return t.rows }
func (t *stubTable) NumCols() int          { return len(t.cols) }
func (t *stubTable) ColumnNames() []string { return t.cols }
func (t *stubTable) Head(n int) ([]map[string]interface{}, error) {
	if int64(n) > t.rows {
		n = int(t.rows)
	}
	out := make([]map[string]interface{}, n)
	for i := range out {
		out[i] = map[string]interface{}{"row": fmt.Sprintf("r%d", i)}
	}
	return out, nil
}

func testDatasets() *babynames.Datasets {
	docs, _ := babynames.Catalog()
	return &babynames.Datasets{
		Babynames:  &stubTable{rows: 100, cols: []string{"year", "sex", "name", "n", "prop"}},
		Applicants: &stubTable{rows: 10, cols: []string{"year", "sex", "applicants"}},
		Births:     &stubTable{rows: 5, cols: []string{"year", "births"}},
		Lifetables: &stubTable{rows: 7, cols: []string{"x", "qx", "lx", "dx", "Lx", "Tx", "ex", "sex", "year"}},
		Backend:    babynames.Arrow,
		Available:  map[babynames.ID]bool{babynames.Arrow: true, babynames.Parquet: true},
		Docs:       docs,
	}
}

func doRequest(h *Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	e.JSONSerializer = JSONSerializer{}
	h.RegisterRoutes(e)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandler_503WhileLoading(t *testing.T) {
	h := NewHandler(nil)
	rec := doRequest(h, "/api/datasets")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_503WhenLoadFailed(t *testing.T) {
	h := NewHandler(&babynames.Datasets{Err: errors.New("boom")})
	rec := doRequest(h, "/api/datasets")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "boom")
}

func TestListDatasets(t *testing.T) {
	h := NewHandler(testDatasets())
	rec := doRequest(h, "/api/datasets")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.IndexResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "arrow", resp.Backend)
	require.Len(t, resp.Datasets, 4)
	assert.Equal(t, "babynames", resp.Datasets[0].Name)
	assert.Equal(t, int64(100), resp.Datasets[0].Rows)
}

func TestGetDataset(t *testing.T) {
	h := NewHandler(testDatasets())
	rec := doRequest(h, "/api/datasets/births")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.DatasetDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "births", resp.Name)
	assert.Equal(t, int64(5), resp.Rows)
	assert.Equal(t, "Births", resp.Title)
	require.Len(t, resp.ColumnDocs, 2)
	assert.Equal(t, "year", resp.ColumnDocs[0].Name)
}

func TestGetDataset_NotFound(t *testing.T) {
	h := NewHandler(testDatasets())
	rec := doRequest(h, "/api/datasets/pets")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetRows_Pagination(t *testing.T) {
	h := NewHandler(testDatasets())
	rec := doRequest(h, "/api/datasets/applicants/rows?limit=3&offset=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp.Total)
	assert.Equal(t, 3, resp.Limit)
	assert.Equal(t, 2, resp.Offset)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "r2", resp.Data[0]["row"])
}

func TestGetRows_DefaultLimit(t *testing.T) {
	h := NewHandler(testDatasets())
	rec := doRequest(h, "/api/datasets/births/rows")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.RowsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, defaultRowLimit, resp.Limit)
	// Only 5 rows exist, the default limit just caps the window.
	assert.Len(t, resp.Data, 5)
}
