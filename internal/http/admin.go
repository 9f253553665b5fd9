package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ecocart/ecocart/internal/model"
	"github.com/ecocart/ecocart/internal/obs"
	"github.com/ecocart/ecocart/internal/store"
	"github.com/google/uuid"
)

// maxUploadBytes caps product image uploads.
const maxUploadBytes = 10 << 20

// mutationResponse wraps admin write results.
type mutationResponse struct {
	Success bool           `json:"success"`
	Data    *model.Product `json:"data,omitempty"`
	Message string         `json:"message"`
}

// adminProductsHandler serves /api/admin/products: the dashboard listing
// and product creation.
func (a *App) adminProductsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := a.Store.All(r.Context())
		if err != nil {
			obs.Logger.Error("admin_list_failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": products})
	case http.MethodPost:
		a.createProductHandler(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

// adminProductHandler serves /api/admin/products/{id}: update and delete.
func (a *App) adminProductHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	switch r.Method {
	case http.MethodPut:
		a.updateProductHandler(w, r, id)
	case http.MethodDelete:
		a.deleteProductHandler(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
}

// parseProductForm accepts either multipart (when an image accompanies
// the fields) or urlencoded bodies.
func parseProductForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(strings.ToLower(ct), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

func (a *App) createProductHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseProductForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body", err)
		return
	}
	for _, field := range []string{"name", "brand", "price", "category", "carbonFootprint"} {
		if strings.TrimSpace(r.FormValue(field)) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s is required", field), nil)
			return
		}
	}
	price, err1 := strconv.ParseFloat(r.FormValue("price"), 64)
	carbon, err2 := strconv.ParseFloat(r.FormValue("carbonFootprint"), 64)
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "Price and carbon footprint must be valid numbers", nil)
		return
	}
	if price < 0 || carbon < 0 {
		writeError(w, http.StatusBadRequest, "Price and carbon footprint must not be negative", nil)
		return
	}
	stock := model.DefaultStock
	if v := r.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Stock must be a non-negative integer", nil)
			return
		}
		stock = n
	}

	image := model.DefaultImage
	if name, err := a.saveUpload(r); err != nil {
		writeError(w, http.StatusBadRequest, "Image upload failed", err)
		return
	} else if name != "" {
		image = "/uploads/products/" + name
	}

	p := model.Product{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Brand:       strings.TrimSpace(r.FormValue("brand")),
		Price:       price,
		Category:    r.FormValue("category"),
		Description: strings.TrimSpace(r.FormValue("description")),
		Materials:   splitMaterials(r.FormValue("materials")),
		Image:       image,
	}
	p.SetCarbonFootprint(carbon)
	p.SetStock(stock)

	if err := a.Store.Create(r.Context(), &p); err != nil {
		obs.Logger.Error("admin_create_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	obs.Logger.Info("product_created", "id", p.ID, "eco_score", string(p.EcoScore))
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Data: &p, Message: "Product created successfully"})
}

func (a *App) updateProductHandler(w http.ResponseWriter, r *http.Request, id string) {
	if err := parseProductForm(r); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body", err)
		return
	}
	p, err := a.Store.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}

	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		p.Name = v
	}
	if v := strings.TrimSpace(r.FormValue("brand")); v != "" {
		p.Brand = v
	}
	if v := r.FormValue("category"); v != "" {
		p.Category = v
	}
	if v := strings.TrimSpace(r.FormValue("description")); v != "" {
		p.Description = v
	}
	if v := r.FormValue("price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, "Price must be a non-negative number", nil)
			return
		}
		p.Price = f
	}
	if v := r.FormValue("carbonFootprint"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			writeError(w, http.StatusBadRequest, "Carbon footprint must be a non-negative number", nil)
			return
		}
		p.SetCarbonFootprint(f)
	}
	if v := r.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Stock must be a non-negative integer", nil)
			return
		}
		p.SetStock(n)
	}
	if v := r.FormValue("materials"); v != "" {
		p.Materials = splitMaterials(v)
	}
	if name, err := a.saveUpload(r); err != nil {
		writeError(w, http.StatusBadRequest, "Image upload failed", err)
		return
	} else if name != "" {
		p.Image = "/uploads/products/" + name
	}

	if err := a.Store.Update(r.Context(), &p); err != nil {
		obs.Logger.Error("admin_update_failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Data: &p, Message: "Product updated"})
}

func (a *App) deleteProductHandler(w http.ResponseWriter, r *http.Request, id string) {
	err := a.Store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	if err != nil {
		obs.Logger.Error("admin_delete_failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "Server error", err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Message: "Product deleted"})
}

// splitMaterials parses the comma-separated materials field preserving
// entry order.
func splitMaterials(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// saveUpload stores the optional "image" part under the upload dir with
// a generated name and returns the stored filename, or "" when the
// request carries no image.
func (a *App) saveUpload(r *http.Request) (string, error) {
	if r.MultipartForm == nil {
		return "", nil
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()
	return a.writeUpload(file, header)
}

func (a *App) writeUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(a.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(a.Cfg.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return name, nil
}
