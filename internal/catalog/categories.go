package catalog

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

// Categories is the fixed set of store categories. Products are only accepted
// into one of these.
var Categories = []string{
	"Trading Cards",
	"Board Games",
	"Miniatures",
	"Dice & Accessories",
	"Card Sleeves",
	"Collectibles",
	"Singles",
	"Custom Cards",
	"Playmats",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// FilterByCategory returns the products matching the selected category,
// preserving relative order. The empty string and CategoryAll return the
// input unchanged.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" || category == CategoryAll {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
