// Package seed fills a catalog with a small demo inventory, replacing
// whatever the root currently holds.
package seed

import (
	"math/rand"

	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/catalog/dto"
)

type sampleProduct struct {
	name     string
	quantity int
	price    float64
	location string
}

var sampleData = []struct {
	category string
	products []sampleProduct
}{
	{"Electronics", []sampleProduct{
		{"Laptop", 8, 1200, "A1"},
		{"Mouse", 25, 20, "A2"},
		{"Keyboard", 15, 45, "A2"},
	}},
	{"Grocery", []sampleProduct{
		{"Milk", 12, 1.5, "B1"},
		{"Eggs", 6, 2.8, "B1"},
		{"Coffee", 20, 6.5, "B2"},
	}},
	{"Hardware", []sampleProduct{
		{"Hammer", 9, 15, "C1"},
		{"Nails Pack", 50, 5, "C1"},
		{"Drill", 4, 90, "C2"},
	}},
}

// Load replaces the catalog's contents with the sample inventory. Roughly
// half the products get a randomized per-product threshold override in the
// 3-7 range.
func Load(uc catalog.UseCase) error {
	root := uc.Root()
	for _, child := range root.Children() {
		if err := uc.Remove(child); err != nil {
			return err
		}
	}

	for _, group := range sampleData {
		cat, err := uc.CreateCategory(root, group.category)
		if err != nil {
			return err
		}
		for _, sp := range group.products {
			input := &dto.CreateProductInput{
				Parent:   cat,
				Name:     sp.name,
				Quantity: sp.quantity,
				Price:    sp.price,
				Location: sp.location,
			}
			if rand.Intn(2) == 0 {
				threshold := rand.Intn(5) + 3
				input.AlertThresholdOverride = &threshold
			}
			if _, err := uc.CreateProduct(input); err != nil {
				return err
			}
		}
	}
	return nil
}

// Categories and Products report the size of the sample set, for callers
// that want to confirm a seed happened.
func Categories() int { return len(sampleData) }

func Products() int {
	total := 0
	for _, group := range sampleData {
		total += len(group.products)
	}
	return total
}
