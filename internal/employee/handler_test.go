// AngelaMos | 2026
// handler_test.go

package employee

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/internal/core"
	"github.com/carterperez-dev/asset-management/internal/middleware"
)

// asCaller stands in for the token authenticator: X-Test-Email becomes
// the authenticated email.
func asCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-Test-Email")
		if email == "" {
			core.Unauthorized(w, "missing")
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), email, "")))
	})
}

func newTestRouter(t *testing.T) (*chi.Mux, *mockRepository) {
	t.Helper()

	svc, repo, _ := newTestService(t, 0)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, asCaller, middleware.RequireRole(svc, RoleHR))
	return r, repo
}

func do(r http.Handler, method, path, caller, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if caller != "" {
		req.Header.Set("X-Test-Email", caller)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestSignupHandler(t *testing.T) {
	r, repo := newTestRouter(t)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	rec := do(r, http.MethodPost, "/employees", "",
		`{"name":"Eli","email":"eli@acme.io","role":"employee"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["insertedId"])
}

func TestSignupHandlerValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"bad email", `{"name":"Eli","email":"nope","role":"employee"}`},
		{"bad role", `{"name":"Eli","email":"eli@acme.io","role":"admin"}`},
		{"hr without company", `{"name":"Hana","email":"hr@acme.io","role":"HR","package":"Base"}`},
		{"bad birth date", `{"name":"Eli","email":"eli@acme.io","role":"employee","date_of_birth":"31/01/1995"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/employees", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetProfileRequiresSelf(t *testing.T) {
	r, repo := newTestRouter(t)
	repo.On("GetByEmail", mock.Anything, "eli@acme.io").
		Return(&Employee{ID: "e1", Email: "eli@acme.io", Role: RoleEmployee}, nil)

	rec := do(r, http.MethodGet, "/employee/eli@acme.io", "eli@acme.io", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_join":false`)
	assert.NotContains(t, rec.Body.String(), "payment_status")

	rec = do(r, http.MethodGet, "/employee/eli@acme.io", "mallory@acme.io", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, http.MethodGet, "/employee/eli@acme.io", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetRoleHandler(t *testing.T) {
	r, repo := newTestRouter(t)
	repo.On("GetByEmail", mock.Anything, "hr@acme.io").
		Return(&Employee{Email: "hr@acme.io", Role: RoleHR, PaymentStatus: PaymentPending}, nil)

	rec := do(r, http.MethodGet, "/employee/role/hr@acme.io", "hr@acme.io", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"role":"HR","payment_status":"pending"}`, rec.Body.String())
}

func TestNotAffiliatedIsHROnly(t *testing.T) {
	r, repo := newTestRouter(t)
	repo.On("GetByEmail", mock.Anything, "hr@acme.io").
		Return(&Employee{Email: "hr@acme.io", Role: RoleHR}, nil)
	repo.On("GetByEmail", mock.Anything, "eli@acme.io").
		Return(&Employee{Email: "eli@acme.io", Role: RoleEmployee}, nil)
	repo.On("ListNotAffiliated", mock.Anything, core.PageParams{Page: 2, Size: 5}).
		Return([]Employee{{ID: "e9", Name: "Nia", Email: "nia@acme.io", Role: RoleEmployee}}, 6, nil)

	rec := do(r, http.MethodGet, "/employees/not-affiliated?page=2&size=5", "hr@acme.io", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Employees []Summary `json:"employees"`
		Count     int       `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Count)
	require.Len(t, body.Employees, 1)
	assert.Equal(t, "nia@acme.io", body.Employees[0].Email)

	rec = do(r, http.MethodGet, "/employees/not-affiliated", "eli@acme.io", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
