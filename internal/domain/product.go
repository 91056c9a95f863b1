package domain

// Product represents an item in the catalog. Amount is the stock count.
type Product struct {
	ID       string  `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Price    float64 `json:"price" db:"price"`
	Category string  `json:"category" db:"category"`
	ImageURL string  `json:"imageUrl" db:"image_url"`
	Amount   int     `json:"amount" db:"amount"`
}
