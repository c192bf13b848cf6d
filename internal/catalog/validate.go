package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrInvalidPrice        = errors.New("price must be greater than 0")
	ErrInvalidCategory     = errors.New("category is not in the store category list")
	ErrInvalidStock        = errors.New("stock_quantity must be >= 0")
	ErrImageRequired       = errors.New("image_url must be a valid absolute URL")
)

// ValidatePrice parses a NUMERIC-as-string price and requires it > 0.
func ValidatePrice(price string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidPrice, price)
	}
	if !d.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// ValidImageURL accepts absolute http/https URLs only.
func ValidImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ValidateNew checks a manual-entry payload before anything touches the
// network. Returns the first failing rule so it can be shown inline.
func (r *CreateProductRequest) ValidateNew() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrDescriptionRequired
	}
	if err := ValidatePrice(r.Price); err != nil {
		return err
	}
	if !ValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	if r.StockQuantity != nil && *r.StockQuantity < 0 {
		return ErrInvalidStock
	}
	if !ValidImageURL(r.ImageURL) {
		return ErrImageRequired
	}
	return nil
}
