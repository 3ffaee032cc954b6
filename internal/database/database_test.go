package database

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"padelmania/internal/config"
)

func TestConnect_NothingConfigured(t *testing.T) {
	conns, err := Connect(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, conns.Redis)
	assert.Nil(t, conns.Elastic)
	assert.Nil(t, conns.MinIO)
	assert.NoError(t, conns.Close())
}

func TestConnect_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	conns, err := Connect(context.Background(), &config.Config{RedisHost: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, conns.Redis)
	assert.NoError(t, conns.Redis.Ping(context.Background()).Err())
	assert.NoError(t, conns.Close())
}

func TestReadyChecks(t *testing.T) {
	mr := miniredis.RunT(t)

	conns, err := Connect(context.Background(), &config.Config{RedisHost: mr.Addr()}, zap.NewNop())
	require.NoError(t, err)
	defer conns.Close()

	checks := conns.ReadyChecks()
	require.Len(t, checks, 1)
	assert.NoError(t, checks["redis"](context.Background()))

	mr.Close()
	assert.Error(t, checks["redis"](context.Background()))
}

func TestConnect_UnreachableRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), &config.Config{RedisHost: addr}, zap.NewNop())
	assert.Error(t, err)
}

func TestConnect_Elastic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version": {"number": "8.19.0"}, "tagline": "You Know, for Search"}`))
	}))
	defer srv.Close()

	conns, err := Connect(context.Background(), &config.Config{ElasticURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, conns.Elastic)
}

func TestConnect_ElasticDownDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	conns, err := Connect(context.Background(), &config.Config{ElasticURL: srv.URL}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, conns.Elastic)
}

func TestNewMinIO_NoNetwork(t *testing.T) {
	client, err := NewMinIO(&config.Config{
		MinIOEndpoint:  "localhost:9000",
		MinIOAccessKey: "key",
		MinIOSecretKey: "secret",
		MinIORegion:    "us-east-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", client.EndpointURL().Host)
}
