// Package cart persists per-session shopping carts in a local bbolt file,
// mirroring the browser-local cart the storefront started with. Mutations
// broadcast on an event bus so badge counters can resynchronize without the
// store pushing data at them.
package cart

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	bolt "go.etcd.io/bbolt"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
)

// TopicUpdated carries the cart id of the mutated cart.
const TopicUpdated = "cart:updated"

var bucketCarts = []byte("carts")

// Line is one cart entry. Adding the same product twice yields two lines;
// Quantity is the cart-side count (1 per add), not the product's stock on
// hand.
type Line struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	ImageURL  string    `json:"image_url"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type Store struct {
	db  *bolt.DB
	bus EventBus.Bus
}

func Open(path string, bus EventBus.Bus) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open cart db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCarts)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, bus: bus}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Add appends one line for the product. No de-duplication: repeat adds stack
// as separate lines.
func (s *Store) Add(cartID string, p *catalog.Product) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCarts)
		lines := decodeLines(b.Get([]byte(cartID)))
		lines = append(lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		})
		raw, err := json.Marshal(lines)
		if err != nil {
			return err
		}
		return b.Put([]byte(cartID), raw)
	})
	if err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	s.bus.Publish(TopicUpdated, cartID)
	return nil
}

// Get returns the ordered cart lines. A missing or unparseable value reads
// as an empty cart; storage content is external input.
func (s *Store) Get(cartID string) ([]Line, error) {
	var lines []Line
	err := s.db.View(func(tx *bolt.Tx) error {
		lines = decodeLines(tx.Bucket(bucketCarts).Get([]byte(cartID)))
		return nil
	})
	return lines, err
}

// Count sums the per-line quantities.
func (s *Store) Count(cartID string) (int, error) {
	lines, err := s.Get(cartID)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return total, nil
}

// Remove drops the line at index; out-of-range indexes are a no-op.
func (s *Store) Remove(cartID string, index int) error {
	changed := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCarts)
		lines := decodeLines(b.Get([]byte(cartID)))
		if index < 0 || index >= len(lines) {
			return nil
		}
		lines = append(lines[:index], lines[index+1:]...)
		raw, err := json.Marshal(lines)
		if err != nil {
			return err
		}
		changed = true
		return b.Put([]byte(cartID), raw)
	})
	if err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	if changed {
		s.bus.Publish(TopicUpdated, cartID)
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(cartID string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCarts).Delete([]byte(cartID))
	})
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.bus.Publish(TopicUpdated, cartID)
	return nil
}

func decodeLines(raw []byte) []Line {
	if len(raw) == 0 {
		return []Line{}
	}
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err != nil {
		return []Line{}
	}
	return lines
}
