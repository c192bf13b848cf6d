package cardsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalize_ImageFallbacks(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"flat image", map[string]any{"image": "flat.png"}, "flat.png"},
		{"images array", map[string]any{"images": []any{"first.png", "second.png"}}, "first.png"},
		{"imageUrl", map[string]any{"imageUrl": "url.png"}, "url.png"},
		{"nested small", map[string]any{"images": map[string]any{"small": "small.png", "large": "large.png"}}, "small.png"},
		{"flat wins over nested", map[string]any{"image": "flat.png", "images": map[string]any{"small": "small.png"}}, "flat.png"},
		{"imageUrl wins over nested small", map[string]any{"imageUrl": "url.png", "images": map[string]any{"small": "small.png"}}, "url.png"},
		{"nothing", map[string]any{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.raw)
			if got.Image != tc.want {
				t.Fatalf("image=%q, want %q", got.Image, tc.want)
			}
		})
	}
}

func TestNormalize_IDAndDescriptionFallbacks(t *testing.T) {
	c := Normalize(map[string]any{"_id": "abc", "name": "Pikachu", "flavorText": "zap"})
	if c.ID != "abc" || c.Description != "zap" {
		t.Fatalf("unexpected card: %+v", c)
	}

	c = Normalize(map[string]any{"uuid": "u1", "name": "X", "text": "primary", "description": "secondary"})
	if c.ID != "u1" || c.Description != "primary" {
		t.Fatalf("ordered fallback broken: %+v", c)
	}

	// no id at all: still selectable, derived from the name
	c = Normalize(map[string]any{"name": "Pikachu"})
	if c.ID == "" {
		t.Fatal("card without id fields must still get one")
	}
}

func TestSearch_SendsKeyAndQueryParam(t *testing.T) {
	var gotKey, gotName, gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotName = r.URL.Query().Get("name")
		gotID = r.URL.Query().Get("id")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"Pikachu","images":{"small":"pika.png"}}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	src := Source{Name: "Pokémon", Path: "/api/pokemon/cards"}

	cards, err := c.Search(context.Background(), src, "Pikachu", false)
	if err != nil {
		t.Fatal(err)
	}
	if gotKey != "secret" {
		t.Fatalf("x-api-key=%q", gotKey)
	}
	if gotName != "Pikachu" || gotID != "" {
		t.Fatalf("expected name param, got name=%q id=%q", gotName, gotID)
	}
	if len(cards) != 1 || cards[0].Image != "pika.png" {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	// by-id mode flips the parameter
	if _, err := c.Search(context.Background(), src, "base1-58", true); err != nil {
		t.Fatal(err)
	}
	if gotID != "base1-58" || gotName != "" {
		t.Fatalf("expected id param, got name=%q id=%q", gotName, gotID)
	}
}

func TestSearch_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	_, err := c.Search(context.Background(), Source{Name: "X", Path: "/api/x/cards"}, "q", false)
	if err == nil {
		t.Fatal("expected an error on non-2xx")
	}
}

func TestSearch_ComingSoonSourceRefused(t *testing.T) {
	c := NewClient("http://unused", "k")
	src, ok := SourceByName("Mitos y leyendas (Coming soon)")
	if !ok {
		t.Fatal("source list missing the coming-soon entry")
	}
	if _, err := c.Search(context.Background(), src, "q", false); err == nil {
		t.Fatal("search against an endpoint-less source must fail")
	}
}
