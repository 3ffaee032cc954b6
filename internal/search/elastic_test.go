package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeElastic struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
	status   int
}

func (f *fakeElastic) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.bodies = append(f.bodies, string(body))
	status := f.status
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
		return
	}

	switch {
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = w.Write([]byte(`{"hits": {"hits": [
			{"_id": "3", "_source": {"id": "3"}},
			{"_id": "1", "_source": {}}
		]}}`))
	case strings.HasSuffix(r.URL.Path, "/_refresh"):
		_, _ = w.Write([]byte(`{"_shards": {"total": 1, "successful": 1, "failed": 0}}`))
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result": "created"}`))
	}
}

func newTestIndex(t *testing.T, fake *fakeElastic) *Index {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewIndex(client, "", nil)
}

func TestIndex_IndexCatalog(t *testing.T) {
	fake := &fakeElastic{}
	ix := newTestIndex(t, fake)

	require.NoError(t, ix.IndexCatalog(context.Background(), fixtures()[:2]))

	assert.Equal(t, []string{
		"PUT /products/_doc/1",
		"PUT /products/_doc/2",
		"POST /products/_refresh",
	}, fake.requests)
	assert.Contains(t, fake.bodies[0], `"title":"PadelNature Pro"`)
}

func TestIndex_SearchIDs(t *testing.T) {
	fake := &fakeElastic{}
	ix := newTestIndex(t, fake)

	got, err := ix.SearchIDs(context.Background(), "grip", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "1"}, got)
	require.Len(t, fake.requests, 1)
	assert.Contains(t, fake.bodies[0], `"multi_match"`)
	assert.Contains(t, fake.bodies[0], `"query":"grip"`)

	got, err = ix.SearchIDs(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, fake.requests, 1, "blank queries never reach the cluster")
}

func TestIndex_SearchErrorStatus(t *testing.T) {
	fake := &fakeElastic{status: http.StatusNotFound}
	ix := newTestIndex(t, fake)

	_, err := ix.SearchIDs(context.Background(), "grip", 10)
	assert.Error(t, err)
}
