package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/products", app.listProductsHandler)
	mux.HandleFunc("/api/products/", app.productDetailHandler)
	mux.HandleFunc("/api/register", app.registerHandler)
	mux.HandleFunc("/api/login", app.loginHandler)
	mux.HandleFunc("/api/admin/products", app.requireAuth(app.requireAdmin(app.adminProductsHandler)))
	mux.HandleFunc("/api/admin/products/", app.requireAuth(app.requireAdmin(app.adminProductHandler)))
	mux.Handle("/uploads/products/", http.StripPrefix("/uploads/products/",
		http.FileServer(http.Dir(app.Cfg.UploadDir))))
	mux.HandleFunc("/healthz", app.healthHandler)
	mux.HandleFunc("/debug/metrics", app.metricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/openapi.yaml", app.openapiHandler)
	mux.HandleFunc("/docs", app.docsHandler)
	return WithRequestID(WithCORS(WithLogging(mux)))
}
