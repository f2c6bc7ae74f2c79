// AngelaMos | 2026
// handler_test.go

package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/internal/asset"
	"github.com/carterperez-dev/asset-management/internal/middleware"
)

const requestID = "0b8f3c52-7d1e-4a9b-8c6f-5e2d1a3b4c70"

func asCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithIdentity(r.Context(), r.Header.Get("X-Test-Email"), "")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(f *fixture) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r, asCaller, passThrough, passThrough)
	return r
}

func call(r http.Handler, method, path, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Test-Email", caller)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateHandlerValidation(t *testing.T) {
	f := newFixture()
	rec := call(newTestRouter(f), http.MethodPost, "/asset-requests", "ana@acme.io", `{"asset_id":"laptop"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusHandlerRejectsUnknownStatus(t *testing.T) {
	f := newFixture()
	rec := call(newTestRouter(f), http.MethodPatch, "/asset-request/"+requestID+"/status",
		"hr@acme.io", `{"status":"approved"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusHandlerInvalidTransition(t *testing.T) {
	f := newFixture()
	r := pending()
	r.ID = requestID
	r.Status = StatusReject
	f.repo.On("Lock", mock.Anything, requestID).Return(r, nil)
	f.assets.On("LockByID", mock.Anything, "a1").Return(&asset.Asset{ID: "a1", ProductQuantity: 1}, nil)

	rec := call(newTestRouter(f), http.MethodPatch, "/asset-request/"+requestID+"/status",
		"hr@acme.io", `{"status":"approve"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
}

func TestSlipHandler(t *testing.T) {
	f := newFixture()
	d := &Detail{Request: *pending(), ProductName: "Laptop"}
	d.ID = requestID
	f.repo.On("GetDetail", mock.Anything, requestID).Return(d, nil)

	rec := call(newTestRouter(f), http.MethodGet, "/asset-request/"+requestID+"/pdf", "hr@acme.io", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestMonthlyHandlerRequiresSelf(t *testing.T) {
	f := newFixture()
	rec := call(newTestRouter(f), http.MethodGet, "/assets/e/monthly-request/ana@acme.io", "ben@acme.io", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestForRequesterHandlerDropsUnknownStatus(t *testing.T) {
	f := newFixture()
	f.repo.On("ListByRequester", mock.Anything, "ana@acme.io", Query{Search: "lap", Page: 1, Size: 10}).
		Return([]Detail{{Request: *pending(), ProductName: "Laptop"}}, 1, nil)

	rec := call(newTestRouter(f), http.MethodGet, "/asset-requests/e/ana@acme.io?search=lap&status=bogus",
		"ana@acme.io", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"requests"`)
	assert.Contains(t, rec.Body.String(), `"count":1`)
}
