// Package catalog holds the static storefront product data and loads it
// into the repository at startup.
package catalog

import (
	"log"

	"github.com/shopspring/decimal"

	"glimmer/internal/domain"
	"glimmer/internal/repos"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Products is the storefront catalog. Records are immutable after load;
// identifiers are assigned by the store, in slice order.
var Products = []domain.Product{
	{
		Title:       "Rainbow Crystal Lighter",
		Description: "A rainbow crystal-encrusted lighter that adds a colorful sparkle to your everyday carry. Each crystal is hand-placed.",
		Price:       price("39.99"),
		Image:       "/images/products/lighter-rainbow.jpg",
		Category:    "Accessories",
		IsNew:       true,
		Sizes:       []string{"One Size"},
		Colors:      []string{"rainbow", "iridescent"},
		Stock:       15,
	},
	{
		Title:       "Lime Green Shimmer Lighter",
		Description: "A vibrant lime green crystal lighter. The holographic effect creates an eye-catching display in any lighting.",
		Price:       price("44.99"),
		Image:       "/images/products/lighter-green.jpg",
		Category:    "Accessories",
		IsNew:       true,
		Sizes:       []string{"One Size"},
		Colors:      []string{"green", "holographic"},
		Stock:       12,
	},
	{
		Title:       "Rose Gold Crystal Lighter",
		Description: "Elegance meets function in this rose gold crystal lighter, for those who appreciate luxury in the details.",
		Price:       price("49.99"),
		Image:       "/images/products/lighter-rosegold.jpg",
		Category:    "Accessories",
		IsNew:       true,
		Sizes:       []string{"One Size"},
		Colors:      []string{"rose gold"},
		Stock:       10,
	},
	{
		Title:       "Turquoise Heart Lighter",
		Description: "A turquoise crystal lighter patterned with silver hearts. A gift for someone special or a treat for yourself.",
		Price:       price("42.99"),
		Image:       "/images/products/lighter-turquoise.jpg",
		Category:    "Accessories",
		Sizes:       []string{"One Size"},
		Colors:      []string{"turquoise", "silver"},
		Stock:       18,
	},
	{
		Title:       "Daisy Dream Lighter",
		Description: "Cheerful yellow daisies on a pearl white background bring a touch of spring to your pocket.",
		Price:       price("54.99"),
		Image:       "/images/products/lighter-daisy.png",
		Category:    "Accessories",
		IsNew:       true,
		Sizes:       []string{"One Size"},
		Colors:      []string{"white", "yellow"},
		Stock:       8,
	},
	{
		Title:       "Black Diamond Lighter",
		Description: "Sleek black diamond crystals for a lighter that fits any style.",
		Price:       price("46.99"),
		Image:       "/images/products/lighter-black.jpg",
		Category:    "Accessories",
		Sizes:       []string{"One Size"},
		Colors:      []string{"black"},
		Stock:       14,
	},
	{
		Title:       "Amethyst Glow Lighter",
		Description: "Deep purple amethyst crystals catch the light from every angle.",
		Price:       price("47.99"),
		Image:       "/images/products/lighter-amethyst.jpg",
		Category:    "Accessories",
		Sizes:       []string{"One Size"},
		Colors:      []string{"purple"},
		Stock:       9,
	},
	{
		Title:       "Pearl Shimmer Lighter",
		Description: "Soft pearl finish with a subtle shimmer, understated and refined.",
		Price:       price("41.99"),
		Image:       "/images/products/lighter-pearl.jpg",
		Category:    "Accessories",
		Sizes:       []string{"One Size"},
		Colors:      []string{"pearl"},
		Stock:       11,
	},
}

// Load seeds the store with the catalog. Safe to run on every start: a
// store that already has products is left alone.
func Load(store repos.Store) error {
	existing, err := store.ListProducts()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	log.Printf("[seed] loading %d catalog products", len(Products))
	for _, p := range Products {
		if _, err := store.CreateProduct(p); err != nil {
			return err
		}
	}
	return nil
}
