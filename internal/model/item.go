package model

// Item is the domain model for a todo entry.
// ID is assigned by the list (max+1) and is the only stable handle on an item.
type Item struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}
