package entity

import (
	"time"
)

// Product is a catalog entry owned by its seller. Price is a non-negative
// integer amount in the store currency's smallest practical unit.
// Date is set once at creation.
type Product struct {
	ID          string
	Name        string
	CategoryID  string
	Price       int64
	Description string
	Date        time.Time
	Active      bool
	VideoURL    string
	OwnerID     string
}

// ProductPhoto is an image asset attached to a product. The image itself
// lives in object storage; ImageURL points at it.
type ProductPhoto struct {
	ID        string
	ProductID string
	ImageURL  string
}
