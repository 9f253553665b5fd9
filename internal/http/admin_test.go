package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ecocart/ecocart/internal/auth"
	"github.com/ecocart/ecocart/internal/model"
)

func tokenFor(t *testing.T, app *App, role model.Role) string {
	t.Helper()
	tok, err := auth.Issue(model.User{ID: "u1", Email: "u@example.com", Role: role}, app.Cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func doForm(t *testing.T, h http.Handler, token, method, path string, form url.Values) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	var out map[string]any
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: invalid JSON %q", method, path, rr.Body.String())
		}
	}
	return rr, out
}

func validForm() url.Values {
	return url.Values{
		"name":            {"Bamboo Brush"},
		"brand":           {"GreenCo"},
		"price":           {"4.99"},
		"category":        {"bathroom"},
		"carbonFootprint": {"0.8"},
	}
}

func TestAdminRequiresToken(t *testing.T) {
	_, _, h := setupApp(t)
	rr, out := doForm(t, h, "", http.MethodPost, "/api/admin/products", validForm())
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status %d", rr.Code)
	}
	if out["message"] != "No token, authorization denied" {
		t.Fatalf("message: %v", out)
	}
}

func TestAdminRejectsBadToken(t *testing.T) {
	_, _, h := setupApp(t)
	rr, out := doForm(t, h, "garbage.token.here", http.MethodPost, "/api/admin/products", validForm())
	if rr.Code != http.StatusUnauthorized || out["message"] != "Token is not valid" {
		t.Fatalf("status %d: %v", rr.Code, out)
	}
}

func TestAdminRejectsCustomerRole(t *testing.T) {
	_, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleCustomer)
	rr, out := doForm(t, h, tok, http.MethodPost, "/api/admin/products", validForm())
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status %d", rr.Code)
	}
	if out["message"] != "Access denied. Admin only." {
		t.Fatalf("message: %v", out)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	m, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	form := validForm()
	form.Set("materials", "bamboo, castor oil , ")
	form.Set("description", "A brush.")
	rr, out := doForm(t, h, tok, http.MethodPost, "/api/admin/products", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rr.Code, out)
	}
	data := out["data"].(map[string]any)
	if data["ecoScore"] != "A+" {
		t.Fatalf("ecoScore derived wrong: %v", data["ecoScore"])
	}
	if data["stock"] != float64(model.DefaultStock) || data["inStock"] != true {
		t.Fatalf("stock defaults: %v", data)
	}
	if data["image"] != model.DefaultImage {
		t.Fatalf("default image: %v", data["image"])
	}
	mats := data["materials"].([]any)
	if len(mats) != 2 || mats[0] != "bamboo" || mats[1] != "castor oil" {
		t.Fatalf("materials order/trim: %v", mats)
	}
	// Persisted too, with the invariant intact.
	stored, err := m.GetByID(context.Background(), data["id"].(string))
	if err != nil || stored.EcoScore != model.GradeAPlus || stored.EcoScoreRank != model.GradeAPlus.Rank() {
		t.Fatalf("stored: %v %+v", err, stored)
	}
}

func TestAdminCreateMissingField(t *testing.T) {
	_, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	form := validForm()
	form.Del("brand")
	rr, out := doForm(t, h, tok, http.MethodPost, "/api/admin/products", form)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d", rr.Code)
	}
	if out["message"] != "brand is required" {
		t.Fatalf("message: %v", out)
	}
}

func TestAdminCreateBadNumbers(t *testing.T) {
	_, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	for _, tc := range []struct{ field, value string }{
		{"price", "cheap"},
		{"carbonFootprint", "low"},
		{"price", "-1"},
		{"carbonFootprint", "-0.5"},
	} {
		form := validForm()
		form.Set(tc.field, tc.value)
		rr, _ := doForm(t, h, tok, http.MethodPost, "/api/admin/products", form)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s=%s: status %d", tc.field, tc.value, rr.Code)
		}
	}
}

func TestAdminCreateWithImageUpload(t *testing.T) {
	_, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, vs := range validForm() {
		_ = mw.WriteField(k, vs[0])
	}
	fw, err := mw.CreateFormFile("image", "brush.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = io.WriteString(fw, "not-really-a-jpeg")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var out map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &out)
	image := out["data"].(map[string]any)["image"].(string)
	if !strings.HasPrefix(image, "/uploads/products/") || !strings.HasSuffix(image, ".jpg") {
		t.Fatalf("uploaded image path: %q", image)
	}
	if image == model.DefaultImage {
		t.Fatalf("upload must replace the default image")
	}

	// The stored file is served back through the uploads route.
	req = httptest.NewRequest(http.MethodGet, image, nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "not-really-a-jpeg" {
		t.Fatalf("serve upload: %d %q", rr.Code, rr.Body.String())
	}
}

func TestAdminUpdateRecomputesDerivedFields(t *testing.T) {
	m, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	p := addProduct(t, m, "Steel Bottle", "Hydra", "kitchen", 19.99, 2.5) // A
	form := url.Values{"carbonFootprint": {"9.5"}, "stock": {"0"}}
	rr, out := doForm(t, h, tok, http.MethodPut, "/api/admin/products/"+p.ID, form)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rr.Code, out)
	}
	stored, _ := m.GetByID(context.Background(), p.ID)
	if stored.EcoScore != model.GradeD || stored.EcoScoreRank != model.GradeD.Rank() {
		t.Fatalf("ecoScore not recomputed: %+v", stored)
	}
	if stored.InStock || stored.Stock != 0 {
		t.Fatalf("inStock not recomputed: %+v", stored)
	}
	if stored.Name != "Steel Bottle" || stored.Price != 19.99 {
		t.Fatalf("untouched fields changed: %+v", stored)
	}
}

func TestAdminUpdateNotFound(t *testing.T) {
	_, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	rr, _ := doForm(t, h, tok, http.MethodPut, "/api/admin/products/nope", validForm())
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d", rr.Code)
	}
}

func TestAdminDelete(t *testing.T) {
	m, app, h := setupApp(t)
	tok := tokenFor(t, app, model.RoleAdmin)
	p := addProduct(t, m, "p", "b", "c", 1, 1)
	rr, out := doForm(t, h, tok, http.MethodDelete, "/api/admin/products/"+p.ID, nil)
	if rr.Code != http.StatusOK || out["message"] != "Product deleted" {
		t.Fatalf("delete: %d %v", rr.Code, out)
	}
	if _, err := m.GetByID(context.Background(), p.ID); err == nil {
		t.Fatalf("product still present after delete")
	}
	rr, _ = doForm(t, h, tok, http.MethodDelete, "/api/admin/products/"+p.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("double delete: %d", rr.Code)
	}
}

func TestAdminListNewestFirst(t *testing.T) {
	m, app, h := setupApp(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	m.SetClock(func() time.Time { i++; return base.Add(time.Duration(i) * time.Minute) })
	addProduct(t, m, "old", "b", "c", 1, 1)
	addProduct(t, m, "new", "b", "c", 1, 1)
	tok := tokenFor(t, app, model.RoleAdmin)
	rr, out := doForm(t, h, tok, http.MethodGet, "/api/admin/products", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	data := out["data"].([]any)
	if data[0].(map[string]any)["name"] != "new" {
		t.Fatalf("admin list must be newest first: %v", data)
	}
}
