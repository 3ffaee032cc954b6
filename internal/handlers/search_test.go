package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padelmania/internal/search"
)

// elasticHits answers every search with the given ids, whatever the query.
func elasticHits(t *testing.T, ids ...string) *search.Index {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		hits := make([]string, 0, len(ids))
		for _, id := range ids {
			hits = append(hits, `{"_id": "`+id+`", "_source": {"id": "`+id+`"}}`)
		}
		_, _ = w.Write([]byte(`{"hits": {"hits": [` + strings.Join(hits, ",") + `]}}`))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return search.NewIndex(client, "products", nil)
}

func TestListProducts_ElasticsearchOnlyRanks(t *testing.T) {
	env := setupTestEnv(t)
	// "3" is a fuzzy hit without the query text; "1" is a substring match
	// the index missed.
	env.handler.Index = elasticHits(t, "3", "2")

	w := env.do(t, http.MethodGet, "/api/products?q=pelota", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []string{"2", "1"}, productIDs(t, body["products"]))
	assert.Equal(t, "elasticsearch", body["engine"])
}

func TestListProducts_ElasticsearchWithoutHits(t *testing.T) {
	env := setupTestEnv(t)
	env.handler.Index = elasticHits(t)

	w := env.do(t, http.MethodGet, "/api/products?q=nat", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, []string{"1"}, productIDs(t, body["products"]))
	assert.Equal(t, false, body["no_results"])
}
