// AngelaMos | 2026
// metrics_test.go

package metrics

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/employee/{email}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, email := range []string{"a@x.io", "b@x.io"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employee/"+email, nil))
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("/employee/{email}", http.MethodGet, "404"))
	assert.Equal(t, float64(2), got)
}

func TestCountersAndPools(t *testing.T) {
	m := New()
	m.RateLimited("jwt")
	m.Event("payment.succeeded")
	m.Event("payment.succeeded")
	m.RegisterPools(
		func() sql.DBStats { return sql.DBStats{OpenConnections: 4} },
		func() *redis.PoolStats { return &redis.PoolStats{TotalConns: 2} },
	)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.rateLimited.WithLabelValues("jwt")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.domain.WithLabelValues("payment.succeeded")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "asset_management_db_open_connections 4")
	assert.Contains(t, string(body), "asset_management_redis_total_connections 2")
}
