package recommend

import (
	"math/rand"
	"sync"
	"time"

	"padelmania/internal/models"
)

// DefaultLimit is how many related products a detail page shows.
const DefaultLimit = 3

type Policy string

const (
	// PolicyFirst takes related products in catalog order.
	PolicyFirst Policy = "first"
	// PolicyRandom shuffles related products before picking.
	PolicyRandom Policy = "random"
)

func ParsePolicy(s string) (Policy, bool) {
	switch Policy(s) {
	case "", PolicyFirst:
		return PolicyFirst, true
	case PolicyRandom:
		return PolicyRandom, true
	}
	return PolicyFirst, false
}

// Source is anything that can list the catalog in order.
type Source interface {
	Products() []models.Product
}

// Sampler picks related and random products. It is safe for concurrent use.
type Sampler struct {
	policy Policy

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Sampler)

func WithPolicy(p Policy) Option {
	return func(s *Sampler) { s.policy = p }
}

// WithRand injects the random source, mostly so tests can seed it.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) { s.rng = r }
}

func New(opts ...Option) *Sampler {
	s := &Sampler{policy: PolicyFirst}
	for _, o := range opts {
		o(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

func (s *Sampler) Policy() Policy {
	return s.policy
}

// Recommend returns up to limit other products from the same category as
// product. In-stock products come first. The result is shorter than limit
// only when the category has fewer other products.
func (s *Sampler) Recommend(src Source, product models.Product, limit int) []models.Product {
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := map[string]struct{}{product.ID: {}}
	var candidates []models.Product
	for _, p := range src.Products() {
		if p.Category != product.Category {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		candidates = append(candidates, p)
	}

	if s.policy == PolicyRandom {
		s.shuffle(candidates)
	}

	out := make([]models.Product, 0, min(limit, len(candidates)))
	for _, p := range candidates {
		if p.InStock() {
			out = append(out, p)
		}
	}
	for _, p := range candidates {
		if !p.InStock() {
			out = append(out, p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Sample returns k distinct products drawn at random from the catalog, or
// all of them in random order when the catalog holds fewer than k.
func (s *Sampler) Sample(src Source, k int) []models.Product {
	if k <= 0 {
		return []models.Product{}
	}
	products := src.Products()
	s.shuffle(products)
	if len(products) > k {
		products = products[:k]
	}
	return products
}

func (s *Sampler) shuffle(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
}
