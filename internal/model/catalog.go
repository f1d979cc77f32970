package model

// Product is one menu item.  OfferPrice is zero when the item is not on
// offer.  Prices are in Chilean pesos.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	OfferPrice  int      `json:"offerPrice,omitempty"`
	Image       string   `json:"image"`
	CategoryID  string   `json:"categoryId"`
	Allergens   []string `json:"allergens"`
}

// Category groups menu items.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Allergen is a declarable ingredient class referenced by products.
type Allergen struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
