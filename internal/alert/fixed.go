package alert

import (
	"fmt"

	"github.com/fekuna/inventory-catalog/internal/model"
)

// FixedThreshold warns when a product's quantity falls to or below a single
// process-wide limit.
type FixedThreshold struct {
	threshold int
}

func NewFixedThreshold(threshold int) *FixedThreshold {
	return &FixedThreshold{threshold: threshold}
}

func (s *FixedThreshold) DisplayName() string {
	return fmt.Sprintf("Fixed threshold (<= %d)", s.threshold)
}

func (s *FixedThreshold) Evaluate(p *model.Product) (string, bool) {
	if p.Quantity() <= s.threshold {
		return fmt.Sprintf("%s is low on stock (qty %d <= %d).", p.Name(), p.Quantity(), s.threshold), true
	}
	return "", false
}
