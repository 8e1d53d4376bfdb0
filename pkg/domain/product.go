package domain

// Product is the data extracted from one product page.
// Nil slices and pointers mean the page did not provide the field.
type Product struct {
	URL         string   `json:"url"`
	Category    []string `json:"category"`
	Volume      *float64 `json:"volume"` // millilitres
	Purpose     []string `json:"purpose"`
	Description string   `json:"description"`
	SuitableFor string   `json:"suitable_for"`
	HowToUse    string   `json:"how_to_use"`
	Ingredients string   `json:"ingredients"`
	Price       *float64 `json:"price"`
}
