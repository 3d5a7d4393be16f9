package alert

import "github.com/fekuna/inventory-catalog/internal/model"

// Strategy is a pluggable low-stock rule. Evaluate maps one product's state
// to an optional human-readable warning; it never mutates the product and is
// safe to call repeatedly.
type Strategy interface {
	// DisplayName identifies the strategy for runtime selection.
	DisplayName() string
	// Evaluate returns the warning message and true when the product needs
	// attention, or ("", false) when it does not.
	Evaluate(p *model.Product) (string, bool)
}

// Warning pairs a product with the message the active strategy produced for
// it during a full-tree scan.
type Warning struct {
	Product *model.Product
	Message string
}

// Scan walks every product reachable from root in tree order and collects
// the warnings produced by the given strategy. Used for bulk "what changed"
// reports after a strategy swap.
func Scan(root *model.Category, s Strategy) []Warning {
	if root == nil || s == nil {
		return nil
	}
	var warnings []Warning
	for _, child := range root.Children() {
		switch node := child.(type) {
		case *model.Category:
			warnings = append(warnings, Scan(node, s)...)
		case *model.Product:
			if msg, ok := s.Evaluate(node); ok {
				warnings = append(warnings, Warning{Product: node, Message: msg})
			}
		}
	}
	return warnings
}
