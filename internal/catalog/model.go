package catalog

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price         string    `json:"price"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"`
	IsHidden      bool      `json:"is_hidden"`
	CreatedAt     time.Time `json:"created_at"`
}

// HTTPError represents a standard error in JSON.
type HTTPError struct {
	Error string `json:"error"`
}

// CreateProductRequest is the manual admin entry payload. ID, timestamp and
// the hidden flag are server-assigned; stock defaults to 1 when omitted.
type CreateProductRequest struct {
	Name          string `json:"name"           example:"Booster Pack"`
	Description   string `json:"description"    example:"Fresh pack"`
	Price         string `json:"price"          example:"4.99"`
	Category      string `json:"category"       example:"Trading Cards"`
	ImageURL      string `json:"image_url"      example:"https://example.com/a.jpg"`
	StockQuantity *int   `json:"stock_quantity" example:"10"`
}

// UpdateProductRequest is a partial update: nil fields keep the stored value.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *string `json:"price"`
	Category      *string `json:"category"`
	ImageURL      *string `json:"image_url"`
	StockQuantity *int    `json:"stock_quantity"`
	IsHidden      *bool   `json:"is_hidden"`
}
