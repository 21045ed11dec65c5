package entity

// Category groups products. Name is unique.
type Category struct {
	ID   string
	Name string
}
