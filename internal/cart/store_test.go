package cart

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	bolt "go.etcd.io/bbolt"

	"github.com/ccgamingbrayan-maker/hobbyshop-api/internal/catalog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "carts.db"), EventBus.New())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func booster() *catalog.Product {
	return &catalog.Product{ID: "p1", Name: "Booster Pack", Price: "4.99", ImageURL: "https://example.com/a.jpg", StockQuantity: 10}
}

// Adding the same product twice stacks two separate lines.
func TestAdd_NoDeduplication(t *testing.T) {
	s := openTestStore(t)
	p := booster()
	if err := s.Add("c1", p); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("c1", p); err != nil {
		t.Fatal(err)
	}
	lines, err := s.Get("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].ProductID != "p1" || lines[1].ProductID != "p1" {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

// The badge count sums per-line quantities (1 per add), not the product's
// stock on hand.
func TestCount_SumsLineQuantities(t *testing.T) {
	s := openTestStore(t)
	p := booster() // stock 10 must not leak into the count
	_ = s.Add("c1", p)
	_ = s.Add("c1", p)
	count, err := s.Count("c1")
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count=%d, want 2", count)
	}
}

func TestGet_EmptyCart(t *testing.T) {
	s := openTestStore(t)
	lines, err := s.Get("nope")
	if err != nil {
		t.Fatal(err)
	}
	if lines == nil || len(lines) != 0 {
		t.Fatalf("expected empty slice, got %#v", lines)
	}
}

// Unparseable storage content is external input and must read as empty.
func TestGet_FailSoftOnGarbage(t *testing.T) {
	s := openTestStore(t)
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCarts).Put([]byte("c1"), []byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}
	lines, err := s.Get("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("garbage should read as empty cart, got %+v", lines)
	}
}

func TestAdd_PublishesCartUpdated(t *testing.T) {
	bus := EventBus.New()
	s, err := Open(filepath.Join(t.TempDir(), "carts.db"), bus)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var gotID string
	if err := bus.Subscribe(TopicUpdated, func(id string) { gotID = id }); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("c9", booster()); err != nil {
		t.Fatal(err)
	}
	// EventBus dispatches synchronous subscribers before Publish returns
	if gotID != "c9" {
		t.Fatalf("expected cart:updated for c9, got %q", gotID)
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	_ = s.Add("c1", booster())
	_ = s.Add("c1", booster())

	if err := s.Remove("c1", 0); err != nil {
		t.Fatal(err)
	}
	if lines, _ := s.Get("c1"); len(lines) != 1 {
		t.Fatalf("expected 1 line after remove, got %d", len(lines))
	}

	// out of range is a no-op
	if err := s.Remove("c1", 5); err != nil {
		t.Fatal(err)
	}
	if lines, _ := s.Get("c1"); len(lines) != 1 {
		t.Fatalf("out-of-range remove must not change the cart")
	}

	if err := s.Clear("c1"); err != nil {
		t.Fatal(err)
	}
	if count, _ := s.Count("c1"); count != 0 {
		t.Fatalf("cart should be empty after clear, count=%d", count)
	}
}

// Carts survive reopening the store, like the browser-local cart survived
// page loads.
func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carts.db")
	bus := EventBus.New()

	s, err := Open(path, bus)
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Add("c1", booster())
	_ = s.Close()

	s2, err := Open(path, bus)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	lines, err := s2.Get("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].Name != "Booster Pack" {
		t.Fatalf("cart not persisted: %+v", lines)
	}
}
