// Package cardsearch queries the external trading-card API and normalizes
// its per-franchise payload shapes into one result type.
package cardsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

var ErrSearchFailed = errors.New("card search failed")

// Card is the normalized search result. Transient: it lives for one query.
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// Search runs one upstream query. byID switches the query parameter from
// name to id. The caller owns debouncing and staleness handling.
func (c *Client) Search(ctx context.Context, src Source, query string, byID bool) ([]Card, error) {
	if !src.Searchable() {
		return nil, fmt.Errorf("source %q has no endpoint", src.Name)
	}
	param := "name"
	if byID {
		param = "id"
	}
	endpoint := fmt.Sprintf("%s%s?%s=%s", c.BaseURL, src.Path, param, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: upstream status %s", ErrSearchFailed, res.Status)
	}

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode card payload: %w", err)
	}

	out := make([]Card, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		out = append(out, Normalize(raw))
	}
	return out, nil
}

// Normalize maps a raw upstream card onto Card. Each field resolves through
// ordered fallbacks because the franchises disagree on field names; anything
// unresolvable defaults to "".
func Normalize(raw map[string]any) Card {
	id := pickString(raw, "id", "uuid", "_id")
	name := pickString(raw, "name")
	if id == "" {
		// keep selection stable within one result set even without an id
		id = name + "-" + uuid.NewString()
	}
	return Card{
		ID:          id,
		Name:        name,
		Image:       pickImage(raw),
		Description: pickString(raw, "text", "description", "flavorText"),
	}
}

// image || images[0] || imageUrl || images.small
func pickImage(raw map[string]any) string {
	if s := pickString(raw, "image"); s != "" {
		return s
	}
	switch images := raw["images"].(type) {
	case []any:
		if len(images) > 0 {
			if s, ok := images[0].(string); ok {
				return s
			}
		}
	case map[string]any:
		if s := pickString(raw, "imageUrl"); s != "" {
			return s
		}
		return pickString(images, "small")
	}
	return pickString(raw, "imageUrl")
}

func pickString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
