// AngelaMos | 2026
// client_test.go

package client_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/asset-management/pkg/client"
)

func signedToken(t *testing.T, email string, expiresAt time.Time) string {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tok, err := jwt.NewBuilder().
		Subject(email).
		IssuedAt(time.Now()).
		Expiration(expiresAt).
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.ES256(), key))
	require.NoError(t, err)
	return string(signed)
}

type fakeIdP struct {
	idToken string
	err     error
}

func (f fakeIdP) SignIn(context.Context) (string, error) {
	return f.idToken, f.err
}

// fakeAPI counts hits per route so tests can assert what was sent.
type fakeAPI struct {
	mux  *http.ServeMux
	mu   sync.Mutex
	hits map[string]int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{mux: http.NewServeMux(), hits: map[string]int{}}
	srv := httptest.NewServer(api.mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func (a *fakeAPI) handle(pattern string, h http.HandlerFunc) {
	a.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.hits[pattern]++
		a.mu.Unlock()
		h(w, r)
	})
}

func (a *fakeAPI) count(pattern string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hits[pattern]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
	})
}

func newClient(t *testing.T, srv *httptest.Server, session *client.Session, isolated bool) *client.Client {
	t.Helper()
	c, err := client.New(client.Config{
		BaseURL:  srv.URL + "/v1/",
		Isolated: isolated,
	}, session)
	require.NoError(t, err)
	return c
}

func signedIn(t *testing.T, srv *httptest.Server, email string) *client.Client {
	t.Helper()
	store := &client.MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, email, time.Now().Add(time.Hour))))
	session, err := client.NewSession(store)
	require.NoError(t, err)
	require.Equal(t, email, session.Email())
	return newClient(t, srv, session, false)
}

func TestLoginMintsAndPersistsToken(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /v1/jwt", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, map[string]string{"id_token": "idp.hana.sig"}, body)
		writeJSON(w, http.StatusOK, map[string]string{
			"token": signedToken(t, "hana@acme.io", time.Now().Add(time.Hour)),
		})
	})

	store := client.FileStore{Path: filepath.Join(t.TempDir(), "session", "token")}
	session, err := client.NewSession(store)
	require.NoError(t, err)
	require.False(t, session.Active())

	c := newClient(t, srv, session, false)
	require.NoError(t, c.Login(context.Background(), fakeIdP{idToken: " idp.hana.sig\n"}))

	assert.True(t, session.Active())
	assert.Equal(t, "hana@acme.io", session.Email())
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt(), time.Minute)

	restored, err := client.NewSession(store)
	require.NoError(t, err)
	assert.Equal(t, session.Token(), restored.Token())
	assert.Equal(t, "hana@acme.io", restored.Email())
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /v1/jwt", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusTooManyRequests, "RATE_LIMITED", "slow down")
	})

	store := &client.MemoryStore{}
	session, err := client.NewSession(store)
	require.NoError(t, err)
	c := newClient(t, srv, session, false)

	err = c.Login(context.Background(), fakeIdP{idToken: "idp.hana.sig"})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.Status)
	assert.Equal(t, "RATE_LIMITED", apiErr.Code)

	assert.False(t, session.Active())
	saved, _ := store.Load()
	assert.Empty(t, saved)

	idpErr := errors.New("popup closed")
	err = c.Login(context.Background(), fakeIdP{err: idpErr})
	assert.ErrorIs(t, err, idpErr)

	err = c.Login(context.Background(), fakeIdP{idToken: "  "})
	assert.ErrorContains(t, err, "no id token")
	assert.Equal(t, 1, api.count("POST /v1/jwt"))
}

func TestNewSessionDiscardsExpiredToken(t *testing.T) {
	store := &client.MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, "old@acme.io", time.Now().Add(-time.Minute))))

	session, err := client.NewSession(store)
	require.NoError(t, err)
	assert.False(t, session.Active())

	saved, _ := store.Load()
	assert.Empty(t, saved)

	require.NoError(t, store.Save("not-a-jwt"))
	session, err = client.NewSession(store)
	require.NoError(t, err)
	assert.False(t, session.Active())
}

func TestAuthenticatedCallsNeedASession(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/employee/role/{email}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, client.RoleInfo{Role: client.RoleHR})
	})

	c := newClient(t, srv, nil, false)

	_, err := c.Role(context.Background())
	assert.ErrorIs(t, err, client.ErrNoSession)
	_, err = c.Asset(context.Background(), "a1")
	assert.ErrorIs(t, err, client.ErrNoSession)
	assert.Zero(t, api.count("GET /v1/employee/role/{email}"))
}

func TestPaymentStatusIsSharedAcrossCallers(t *testing.T) {
	api, srv := newFakeAPI(t)
	release := make(chan struct{})
	api.handle("GET /v1/employee/role/{email}", func(w http.ResponseWriter, r *http.Request) {
		<-release
		assert.Equal(t, "hr@acme.io", r.PathValue("email"))
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer ")
		writeJSON(w, http.StatusOK, client.RoleInfo{Role: client.RoleHR, PaymentStatus: client.PaymentPaid})
	})

	c := signedIn(t, srv, "hr@acme.io")

	const views = 6
	var wg sync.WaitGroup
	var paid atomic.Int32
	for range views {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := c.PaymentStatus(context.Background())
			assert.NoError(t, err)
			if status == client.PaymentPaid {
				paid.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(views), paid.Load())

	info, err := c.Role(context.Background())
	require.NoError(t, err)
	assert.Equal(t, client.RoleHR, info.Role)
	assert.Equal(t, 1, api.count("GET /v1/employee/role/{email}"))
}

func TestIsolatedClientSkipsTheCache(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/employee/role/{email}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, client.RoleInfo{Role: client.RoleEmployee})
	})

	store := &client.MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, "ana@acme.io", time.Now().Add(time.Hour))))
	session, err := client.NewSession(store)
	require.NoError(t, err)
	c := newClient(t, srv, session, true)

	for range 3 {
		status, err := c.PaymentStatus(context.Background())
		require.NoError(t, err)
		assert.Empty(t, status)
	}
	assert.Equal(t, 3, api.count("GET /v1/employee/role/{email}"))
	assert.Nil(t, c.Cache())
}

func companyInfo(count, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, client.CompanyInfo{
			CompanyName:   "Acme",
			HREmail:       "hr@acme.io",
			EmployeeCount: count,
			MemberLimit:   limit,
		})
	}
}

func TestAddTeamMembersBlockedOverLimitSendsNothing(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/company-info/{email}", companyInfo(4, 5))
	api.handle("POST /v1/teams/multiple", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"acknowledged": true, "insertedCount": 2})
	})

	c := signedIn(t, srv, "hr@acme.io")
	sel := client.NewSelection("e1", "e2")

	n, err := c.AddTeamMembers(context.Background(), sel)

	assert.ErrorIs(t, err, client.ErrMemberLimitExceeded)
	assert.Zero(t, n)
	assert.Zero(t, api.count("POST /v1/teams/multiple"))
	assert.Equal(t, []string{"e1", "e2"}, sel.IDs())
}

func TestAddTeamMembersClearsSelectionOnSuccess(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/company-info/{email}", companyInfo(3, 5))
	api.handle("POST /v1/teams/multiple", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			EmployeeIDs []string `json:"employee_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"e1", "e2"}, body.EmployeeIDs)
		writeJSON(w, http.StatusCreated, map[string]any{"acknowledged": true, "insertedCount": 2})
	})

	c := signedIn(t, srv, "hr@acme.io")
	var notified []string
	c.Subscribe("company:", func(p string) { notified = append(notified, p) })

	sel := client.NewSelection("e1", "e2")
	n, err := c.AddTeamMembers(context.Background(), sel)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, sel.Len())
	assert.Equal(t, []string{"company:"}, notified)

	_, err = c.CompanyInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("GET /v1/company-info/{email}"))
}

func TestAddTeamMembersKeepsSelectionWhenServerRejects(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/company-info/{email}", companyInfo(0, 5))
	api.handle("POST /v1/teams/multiple", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusConflict, "member_limit_exceeded", "team is full")
	})

	c := signedIn(t, srv, "hr@acme.io")
	sel := client.NewSelection("e1")

	_, err := c.AddTeamMembers(context.Background(), sel)

	assert.ErrorIs(t, err, client.ErrMemberLimitExceeded)
	assert.ErrorIs(t, err, client.ErrConflict)
	assert.Equal(t, 1, sel.Len())

	_, err = c.AddTeamMembers(context.Background(), client.NewSelection())
	assert.ErrorIs(t, err, client.ErrEmptySelection)
}

func TestAssetsForwardsQueryAndFeedsPager(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/assets/hr/{email}", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Out of stock", q.Get("filter"))
		assert.Equal(t, "quantity-dsc", q.Get("sort"))
		assert.Empty(t, q.Get("search"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "10", q.Get("size"))
		writeJSON(w, http.StatusOK, map[string]any{
			"assets": []map[string]any{{
				"id":               "a1",
				"product_name":     "Monitor",
				"product_type":     "Returnable",
				"product_quantity": 0,
				"availability":     "Out of stock",
				"provider_info":    map[string]string{"email": "hr@acme.io"},
			}},
			"count": 25,
		})
	})

	c := signedIn(t, srv, "hr@acme.io")
	q := client.NewAssetQuery(10)
	q.SetFilter(client.FilterOutOfStock)
	q.SetSort(client.SortQuantityDesc)

	list, err := c.Assets(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Monitor", list.Items[0].ProductName)
	assert.Equal(t, "hr@acme.io", list.Items[0].Provider.Email)
	assert.Equal(t, 25, list.Count)
	assert.Equal(t, 3, q.Pager().TotalPages())
}

func TestAssetsRefetchesWhenCountShrinksBelowPage(t *testing.T) {
	api, srv := newFakeAPI(t)
	var mu sync.Mutex
	var pagesAsked []string
	api.handle("GET /v1/assets/hr/{email}", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		mu.Lock()
		pagesAsked = append(pagesAsked, page)
		mu.Unlock()

		items := []map[string]any{}
		if page == "2" {
			items = append(items, map[string]any{"id": "a11", "product_name": "Dock"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"assets": items, "count": 20})
	})

	c := signedIn(t, srv, "hr@acme.io")
	q := client.NewAssetQuery(10)
	q.Pager().SetCount(30)
	require.True(t, q.Pager().JumpTo(3))

	list, err := c.Assets(context.Background(), q)

	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2"}, pagesAsked)
	assert.Equal(t, 2, q.Pager().Page())
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Dock", list.Items[0].ProductName)
	assert.Equal(t, 20, list.Count)
}

func TestAPIErrorsMatchSentinels(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/asset/{id}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	api.handle("DELETE /v1/asset/{id}", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusForbidden, "FORBIDDEN", "asset belongs to another company")
	})

	c := signedIn(t, srv, "hr@acme.io")

	_, err := c.Asset(context.Background(), "a1")
	assert.ErrorIs(t, err, client.ErrNotFound)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)

	_, err = c.DeleteAsset(context.Background(), "a1")
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.NotErrorIs(t, err, client.ErrNotFound)
	assert.Contains(t, err.Error(), "another company")
}

func TestMutationsNotifySubscribers(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /v1/assets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]string{"insertedId": "a9"})
	})
	api.handle("GET /v1/assets/count/{email}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, client.AssetCount{Returnable: 2, NonReturnable: 1})
	})

	c := signedIn(t, srv, "hr@acme.io")
	ctx := context.Background()

	counts, err := c.AssetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Returnable)

	var fired int
	unsubscribe := c.Subscribe("assets:count:", func(string) { fired++ })
	defer unsubscribe()

	id, err := c.CreateAsset(ctx, client.NewAsset{ProductName: "Desk", ProductType: client.Returnable, ProductQuantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "a9", id)
	assert.Equal(t, 1, fired)

	_, err = c.AssetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, api.count("GET /v1/assets/count/{email}"))
}

func TestRequestSlipDownloadsPDF(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /v1/asset-request/{id}/pdf", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/pdf", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3 slip"))
	})

	c := signedIn(t, srv, "ana@acme.io")
	data, err := c.RequestSlip(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 slip", string(data))
}

func TestLogoutClearsSessionEvenWhenServerFails(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /v1/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "boom")
	})

	store := &client.MemoryStore{}
	require.NoError(t, store.Save(signedToken(t, "ana@acme.io", time.Now().Add(time.Hour))))
	session, err := client.NewSession(store)
	require.NoError(t, err)
	c := newClient(t, srv, session, false)

	err = c.Logout(context.Background())

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.False(t, session.Active())
	saved, _ := store.Load()
	assert.Empty(t, saved)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, 1, api.count("POST /v1/logout"))
}

func TestSignupReportsExistingAccount(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /v1/employees", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "user already exists", "insertedId": nil})
	})

	c := newClient(t, srv, nil, false)
	res, err := c.Signup(context.Background(), client.SignupRequest{
		Name:  "Ana",
		Email: "ana@acme.io",
		Role:  client.RoleEmployee,
	})

	require.NoError(t, err)
	assert.True(t, res.AlreadyExists())
	assert.Equal(t, 1, api.count("POST /v1/employees"))
}
