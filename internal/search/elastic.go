package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"go.uber.org/zap"

	"padelmania/internal/models"
)

const DefaultIndex = "products"

// Index is the Elasticsearch full-text index over the catalog. It only
// resolves which product ids match a query; criteria filtering stays in Filter.
type Index struct {
	client *elasticsearch.Client
	name   string
	log    *zap.Logger
}

func NewIndex(client *elasticsearch.Client, name string, log *zap.Logger) *Index {
	if name == "" {
		name = DefaultIndex
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Index{client: client, name: name, log: log}
}

// IndexCatalog writes every product as a document keyed by its id, then
// refreshes the index so the documents are searchable immediately.
func (ix *Index) IndexCatalog(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("encode product %s: %w", p.ID, err)
		}
		req := esapi.IndexRequest{
			Index:      ix.name,
			DocumentID: p.ID,
			Body:       bytes.NewReader(data),
		}
		res, err := req.Do(ctx, ix.client)
		if err != nil {
			return fmt.Errorf("index product %s: %w", p.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index product %s: %s", p.ID, res.Status())
		}
	}

	res, err := esapi.IndicesRefreshRequest{Index: []string{ix.name}}.Do(ctx, ix.client)
	if err != nil {
		return fmt.Errorf("refresh index %s: %w", ix.name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("refresh index %s: %s", ix.name, res.Status())
	}

	ix.log.Info("catalog indexed", zap.String("index", ix.name), zap.Int("products", len(products)))
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string `json:"_id"`
			Source struct {
				ID string `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchIDs returns the ids of products matching query on title,
// description or tags, best match first.
func (ix *Index) SearchIDs(ctx context.Context, query string, size int) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if size <= 0 {
		size = 100
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description", "tags"},
				"fuzziness": "AUTO",
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{ix.name},
		Body:  &buf,
	}
	res, err := req.Do(ctx, ix.client)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", ix.name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", ix.name, res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]string, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		id := h.Source.ID
		if id == "" {
			id = h.ID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
