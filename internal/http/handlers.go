package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ecocart/ecocart/internal/catalog"
	"github.com/ecocart/ecocart/internal/config"
	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/obs"
	"github.com/ecocart/ecocart/internal/store"
	httpopenapi "github.com/ecocart/ecocart/internal/http/openapi"
)

// App holds the HTTP layer's dependencies.
type App struct {
	Cfg     config.Config
	Store   store.Store
	Catalog *catalog.Service
	started time.Time
}

func NewApp(cfg config.Config, st store.Store) *App {
	return &App{Cfg: cfg, Store: st, Catalog: catalog.NewService(st), started: time.Now()}
}

// listResponse is the catalog list envelope.
type listResponse struct {
	Success    bool            `json:"success"`
	Count      int             `json:"count"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	Data       []model.Product `json:"data"`
}

func (a *App) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	res, err := a.Catalog.ListProducts(r.Context(), r.URL.Query())
	if err != nil {
		obs.Logger.Error("catalog_list_failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Success:    true,
		Count:      len(res.Items),
		Total:      res.Total,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		Data:       res.Items,
	})
}

// productView is the detail payload for the product itself.
type productView struct {
	Name            string      `json:"name"`
	Brand           string      `json:"brand"`
	Price           float64     `json:"price"`
	Image           string      `json:"image"`
	EcoScore        model.Grade `json:"ecoScore"`
	CarbonFootprint float64     `json:"carbonFootprint"`
	Materials       []string    `json:"materials"`
	Category        string      `json:"category"`
}

// similarView is the trimmed shape for related items.
type similarView struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Brand           string      `json:"brand"`
	Price           float64     `json:"price"`
	Image           string      `json:"image"`
	EcoScore        model.Grade `json:"ecoScore"`
	CarbonFootprint float64     `json:"carbonFootprint"`
}

type detailResponse struct {
	Success bool       `json:"success"`
	Data    detailData `json:"data"`
}

type detailData struct {
	Product productView   `json:"product"`
	Similar []similarView `json:"similar"`
}

func (a *App) productDetailHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/products/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	d, err := a.Catalog.GetProductDetail(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		obs.Logger.Error("catalog_detail_failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	p := d.Product
	materials := p.Materials
	if materials == nil {
		materials = []string{}
	}
	similar := make([]similarView, 0, len(d.Similar))
	for _, s := range d.Similar {
		similar = append(similar, similarView{
			ID:              s.ID,
			Name:            s.Name,
			Brand:           s.Brand,
			Price:           s.Price,
			Image:           s.Image,
			EcoScore:        s.EcoScore,
			CarbonFootprint: s.CarbonFootprint,
		})
	}
	writeJSON(w, http.StatusOK, detailResponse{
		Success: true,
		Data: detailData{
			Product: productView{
				Name:            p.Name,
				Brand:           p.Brand,
				Price:           p.Price,
				Image:           p.Image,
				EcoScore:        p.EcoScore,
				CarbonFootprint: p.CarbonFootprint,
				Materials:       materials,
				Category:        p.Category,
			},
			Similar: similar,
		},
	})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"requests_total": requestsTotal.Value(),
		"uptime_sec":     time.Since(a.started).Seconds(),
		"store_kind":     a.Cfg.StoreKind,
	})
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>EcoCart API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
