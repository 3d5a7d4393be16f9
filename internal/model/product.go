package model

import (
	"fmt"
	"strings"
)

// Bounds shared by construction and the setters. Values outside the range
// are rejected, never clamped.
const (
	MaxQuantity = 1_000_000
	MaxPrice    = 1_000_000
)

// DefaultLocation is the sentinel stored when no warehouse slot is given.
const DefaultLocation = "N/A"

// Product is the leaf node of the catalog tree. It carries the actual stock
// data; categories only aggregate it.
type Product struct {
	name                   string
	parent                 *Category
	quantity               int
	price                  float64
	location               string
	alertThresholdOverride *int
}

// NewProduct validates every field before constructing the node. A blank
// location normalizes to DefaultLocation.
func NewProduct(name string, quantity int, price float64, location string) (*Product, error) {
	trimmed, err := validateName(name)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	p := &Product{name: trimmed, quantity: quantity, price: price}
	p.SetLocation(location)
	return p, nil
}

func (p *Product) Name() string { return p.name }

func (p *Product) Rename(name string) error {
	trimmed, err := validateName(name)
	if err != nil {
		return err
	}
	p.name = trimmed
	return nil
}

func (p *Product) Quantity() int { return p.quantity }

func (p *Product) Price() float64 { return p.price }

func (p *Product) Location() string { return p.location }

// AlertThresholdOverride returns the per-product alert limit, or nil when
// the strategy-wide default applies.
func (p *Product) AlertThresholdOverride() *int { return p.alertThresholdOverride }

func (p *Product) SetQuantity(quantity int) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	p.quantity = quantity
	return nil
}

func (p *Product) SetPrice(price float64) error {
	if err := validatePrice(price); err != nil {
		return err
	}
	p.price = price
	return nil
}

func (p *Product) SetLocation(location string) {
	trimmed := strings.TrimSpace(location)
	if trimmed == "" {
		trimmed = DefaultLocation
	}
	p.location = trimmed
}

// SetAlertThresholdOverride sets the per-product alert limit; nil clears it
// back to the strategy default.
func (p *Product) SetAlertThresholdOverride(threshold *int) error {
	if threshold != nil && *threshold < 0 {
		return fmt.Errorf("alert threshold cannot be negative: %w", ErrValidation)
	}
	p.alertThresholdOverride = threshold
	return nil
}

// Update replaces every editable field at once. All values are validated
// up front so a rejected update leaves the product untouched.
func (p *Product) Update(name string, quantity int, price float64, location string, threshold *int) error {
	trimmed, err := validateName(name)
	if err != nil {
		return err
	}
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	if err := validatePrice(price); err != nil {
		return err
	}
	if threshold != nil && *threshold < 0 {
		return fmt.Errorf("alert threshold cannot be negative: %w", ErrValidation)
	}
	p.name = trimmed
	p.quantity = quantity
	p.price = price
	p.SetLocation(location)
	p.alertThresholdOverride = threshold
	return nil
}

func (p *Product) Parent() *Category { return p.parent }

func (p *Product) setParent(c *Category) { p.parent = c }

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %w", ErrValidation)
	}
	if quantity > MaxQuantity {
		return fmt.Errorf("quantity %d exceeds %d: %w", quantity, MaxQuantity, ErrValidation)
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if price > MaxPrice {
		return fmt.Errorf("price %g exceeds %d: %w", price, MaxPrice, ErrValidation)
	}
	return nil
}
