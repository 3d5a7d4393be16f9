package dto

import "github.com/fekuna/inventory-catalog/internal/model"

type CreateProductInput struct {
	Parent   *model.Category // nil means directly under the root
	Name     string
	Quantity int
	Price    float64
	Location string
	// AlertThresholdOverride is optional; nil means "use the strategy
	// default".
	AlertThresholdOverride *int
}

// UpdateProductInput is a full field replacement. Everything is validated
// before any field is mutated.
type UpdateProductInput struct {
	Name                   string
	Quantity               int
	Price                  float64
	Location               string
	AlertThresholdOverride *int
}
