// Package menu holds the static dining catalog: products, categories and
// allergens.  The data is a fixed seed, read-only at runtime.
package menu

import "github.com/gastroflow/gastroflow/internal/model"

// Catalog serves read queries over the seeded menu.
type Catalog struct {
	products   []model.Product
	categories []model.Category
	allergens  []model.Allergen
}

// NewCatalog returns the catalog with the restaurant's current menu.
func NewCatalog() *Catalog {
	return &Catalog{
		categories: []model.Category{
			{ID: "entradas", Name: "Entradas"},
			{ID: "platos-principales", Name: "Platos Principales"},
			{ID: "postres", Name: "Postres"},
			{ID: "bebidas", Name: "Bebidas"},
		},
		allergens: []model.Allergen{
			{ID: "gluten", Name: "Gluten"},
			{ID: "lacteos", Name: "Lácteos"},
			{ID: "frutos-secos", Name: "Frutos Secos"},
			{ID: "soja", Name: "Soja"},
			{ID: "mariscos", Name: "Mariscos"},
		},
		products: []model.Product{
			{
				ID:          "1",
				Name:        "Ceviche Clásico",
				Description: "Trozos de pescado fresco marinados en jugo de limón, cilantro, y ají.",
				Price:       12500,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "entradas",
				Allergens:   []string{"mariscos"},
			},
			{
				ID:          "2",
				Name:        "Empanadas de Pino",
				Description: "Clásicas empanadas chilenas rellenas de carne, cebolla, huevo y aceitunas.",
				Price:       8500,
				OfferPrice:  7500,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "entradas",
				Allergens:   []string{"gluten", "lacteos"},
			},
			{
				ID:          "3",
				Name:        "Lomo Saltado",
				Description: "Trozos de lomo de res salteados con cebolla, tomate y papas fritas, acompañado de arroz.",
				Price:       15900,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "platos-principales",
				Allergens:   []string{"soja"},
			},
			{
				ID:          "4",
				Name:        "Salmón a la Plancha",
				Description: "Filete de salmón fresco a la plancha con un toque de finas hierbas, servido con puré rústico.",
				Price:       17200,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "platos-principales",
				Allergens:   []string{},
			},
			{
				ID:          "5",
				Name:        "Tiramisú",
				Description: "Postre italiano clásico con capas de bizcocho, café, mascarpone y cacao.",
				Price:       6500,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "postres",
				Allergens:   []string{"gluten", "lacteos"},
			},
			{
				ID:          "6",
				Name:        "Mote con Huesillo",
				Description: "Bebida tradicional chilena con duraznos secos y trigo mote.",
				Price:       4500,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "bebidas",
				Allergens:   []string{"gluten"},
			},
			{
				ID:          "7",
				Name:        "Pisco Sour",
				Description: "Cóctel emblemático preparado con pisco, jugo de limón y clara de huevo.",
				Price:       5500,
				Image:       "https://placehold.co/600x400.png",
				CategoryID:  "bebidas",
				Allergens:   []string{},
			},
		},
	}
}

// Products returns the menu items, optionally filtered by category id and
// excluding items containing the given allergen id.  Empty filters match
// everything.
func (c *Catalog) Products(categoryID, withoutAllergen string) []model.Product {
	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if withoutAllergen != "" && contains(p.Allergens, withoutAllergen) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns every menu category in display order.
func (c *Catalog) Categories() []model.Category { return c.categories }

// Allergens returns every declarable allergen.
func (c *Catalog) Allergens() []model.Allergen { return c.allergens }

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
