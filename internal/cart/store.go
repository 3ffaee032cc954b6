package cart

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"padelmania/internal/models"
)

var (
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Catalog is the part of the product catalog the cart needs.
type Catalog interface {
	Get(id string) (models.Product, bool)
}

// Store is the cart of a single session. Every mutation is persisted before
// it becomes visible; a failed save leaves the cart unchanged.
type Store struct {
	key      string
	storage  Storage
	notifier Notifier
	catalog  Catalog
	log      *zap.Logger
	lines    []models.CartLine
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Key is the storage key of a session's cart.
func Key(sessionID string) string {
	return "cart:" + sessionID
}

// Load restores the cart saved under key. Missing or corrupt data yields an
// empty cart; lines whose product left the catalog are dropped.
func Load(ctx context.Context, storage Storage, key string, catalog Catalog, opts ...Option) *Store {
	s := &Store{key: key, storage: storage, catalog: catalog, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	data, err := storage.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("cart storage unavailable, starting empty", zap.String("key", key), zap.Error(err))
		}
		return s
	}

	lines, err := Decode(data)
	if err != nil {
		s.log.Warn("corrupt cart data, starting empty", zap.String("key", key), zap.Error(err))
		return s
	}

	for _, l := range lines {
		if _, ok := catalog.Get(l.ProductID); !ok {
			s.log.Info("dropping cart line for unknown product", zap.String("key", key), zap.String("product_id", l.ProductID))
			continue
		}
		s.lines = append(s.lines, l)
	}
	return s
}

// Add creates a line or increments an existing one.
func (s *Store) Add(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}

	next := s.copyLines()
	i := indexOf(next, productID)
	newQty := quantity
	if i >= 0 {
		newQty += next[i].Quantity
	}
	if newQty > p.Stock {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, productID, p.Stock, newQty)
	}
	if i >= 0 {
		next[i].Quantity = newQty
	} else {
		next = append(next, models.CartLine{ProductID: productID, Quantity: newQty})
	}
	return s.commit(ctx, next, EventUpdated)
}

// SetQuantity changes the quantity of a line already in the cart; n <= 0
// removes it. Products not in the cart are left alone.
func (s *Store) SetQuantity(ctx context.Context, productID string, n int) error {
	i := indexOf(s.lines, productID)
	if i < 0 {
		return nil
	}
	if n <= 0 {
		return s.Remove(ctx, productID)
	}
	p, ok := s.catalog.Get(productID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if n > p.Stock {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, productID, p.Stock, n)
	}

	next := s.copyLines()
	next[i].Quantity = n
	return s.commit(ctx, next, EventUpdated)
}

// Remove drops the product's line. Removing a product that is not in the
// cart is a no-op and saves nothing.
func (s *Store) Remove(ctx context.Context, productID string) error {
	i := indexOf(s.lines, productID)
	if i < 0 {
		return nil
	}
	next := make([]models.CartLine, 0, len(s.lines)-1)
	next = append(next, s.lines[:i]...)
	next = append(next, s.lines[i+1:]...)
	return s.commit(ctx, next, EventUpdated)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.commit(ctx, nil, EventCleared)
}

func (s *Store) commit(ctx context.Context, next []models.CartLine, event string) error {
	if len(next) == 0 {
		if err := s.storage.Delete(ctx, s.key); err != nil {
			return fmt.Errorf("delete cart %s: %w", s.key, err)
		}
	} else {
		data, err := Encode(next)
		if err != nil {
			return fmt.Errorf("encode cart %s: %w", s.key, err)
		}
		if err := s.storage.Save(ctx, s.key, data); err != nil {
			return fmt.Errorf("save cart %s: %w", s.key, err)
		}
	}
	s.lines = next

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, s.key, event); err != nil {
			s.log.Warn("cart notification failed", zap.String("key", s.key), zap.Error(err))
		}
	}
	return nil
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []models.CartLine {
	return s.copyLines()
}

func (s *Store) Len() int {
	return len(s.lines)
}

func (s *Store) IsEmpty() bool {
	return len(s.lines) == 0
}

func (s *Store) Contains(productID string) bool {
	return indexOf(s.lines, productID) >= 0
}

func (s *Store) Quantity(productID string) int {
	if i := indexOf(s.lines, productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// ItemCount is the total number of units across lines.
func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price × quantity over all lines.
func (s *Store) Subtotal() float64 {
	total := 0.0
	for _, l := range s.lines {
		if p, ok := s.catalog.Get(l.ProductID); ok {
			total += p.Price * float64(l.Quantity)
		}
	}
	return total
}

// InstallmentEstimate divides the subtotal into n parts. Informational only.
func (s *Store) InstallmentEstimate(n int) float64 {
	if n <= 0 {
		return 0
	}
	return s.Subtotal() / float64(n)
}

// Items joins the lines with catalog data for display.
func (s *Store) Items() []models.CartItem {
	items := make([]models.CartItem, 0, len(s.lines))
	for _, l := range s.lines {
		p, ok := s.catalog.Get(l.ProductID)
		if !ok {
			continue
		}
		image := ""
		if len(p.Images) > 0 {
			image = p.Images[0]
		}
		items = append(items, models.CartItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  l.Quantity,
			LineTotal: p.Price * float64(l.Quantity),
			ImageURL:  image,
			Stock:     p.Stock,
		})
	}
	return items
}

func (s *Store) copyLines() []models.CartLine {
	if len(s.lines) == 0 {
		return nil
	}
	return append([]models.CartLine(nil), s.lines...)
}

func indexOf(lines []models.CartLine, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
