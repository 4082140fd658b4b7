package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/ssa-data/babynames"
	"github.com/ssa-data/babynames/internal/models"
)

const defaultRowLimit = 50

type Handler struct {
	mu   sync.RWMutex
	data *babynames.Datasets
}

func NewHandler(data *babynames.Datasets) *Handler {
	return &Handler{data: data}
}

// SetData swaps in the loaded datasets once the background load finishes.
func (h *Handler) SetData(d *babynames.Datasets) {
	h.mu.Lock()
	h.data = d
	h.mu.Unlock()
}

func (h *Handler) datasets() *babynames.Datasets {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.data
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/datasets", h.ListDatasets)
	api.GET("/datasets/:name", h.GetDataset)
	api.GET("/datasets/:name/rows", h.GetRows)
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ready returns the datasets, or an error response when they are still
// loading or failed to load.
func (h *Handler) ready(c echo.Context) (*babynames.Datasets, error) {
	d := h.datasets()
	if d == nil {
		return nil, c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "datasets are still loading",
		})
	}
	if !d.OK() {
		return nil, c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "datasets failed to load: " + d.Err.Error(),
		})
	}
	return d, nil
}

func (h *Handler) ListDatasets(c echo.Context) error {
	d, errResp := h.ready(c)
	if d == nil {
		return errResp
	}

	resp := models.IndexResponse{Backend: string(d.Backend)}
	for _, name := range babynames.Names {
		t := d.Table(name)
		resp.Datasets = append(resp.Datasets, models.DatasetSummary{
			Name:    name,
			Rows:    t.NumRows(),
			Columns: t.ColumnNames(),
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetDataset(c echo.Context) error {
	d, errResp := h.ready(c)
	if d == nil {
		return errResp
	}

	name := c.Param("name")
	t := d.Table(name)
	if t == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "unknown dataset: " + name,
		})
	}

	detail := models.DatasetDetail{
		DatasetSummary: models.DatasetSummary{
			Name:    name,
			Rows:    t.NumRows(),
			Columns: t.ColumnNames(),
		},
	}
	if doc, ok := d.Docs[name]; ok {
		detail.Title = doc.Title
		detail.Description = doc.Description
		detail.Source = doc.Source
		for _, col := range doc.Columns {
			detail.ColumnDocs = append(detail.ColumnDocs, models.ColumnDoc{
				Name: col.Name,
				Type: col.Type,
				Doc:  col.Doc,
			})
		}
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *Handler) GetRows(c echo.Context) error {
	d, errResp := h.ready(c)
	if d == nil {
		return errResp
	}

	name := c.Param("name")
	t := d.Table(name)
	if t == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "unknown dataset: " + name,
		})
	}

	limit, offset := getPaginationParams(c, defaultRowLimit)

	rows, err := t.Head(offset + limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": err.Error(),
		})
	}
	if offset > len(rows) {
		offset = len(rows)
	}

	return c.JSON(http.StatusOK, models.RowsResponse{
		Data:   rows[offset:],
		Total:  t.NumRows(),
		Limit:  limit,
		Offset: offset,
	})
}
