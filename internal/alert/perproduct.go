package alert

import (
	"fmt"

	"github.com/fekuna/inventory-catalog/internal/model"
)

// PerProductThreshold uses a product's own threshold override when present
// and falls back to a strategy-wide default otherwise. The message is tagged
// with which limit applied.
type PerProductThreshold struct {
	defaultThreshold int
}

func NewPerProductThreshold(defaultThreshold int) *PerProductThreshold {
	return &PerProductThreshold{defaultThreshold: defaultThreshold}
}

func (s *PerProductThreshold) DisplayName() string {
	return fmt.Sprintf("Per-product threshold (default <= %d)", s.defaultThreshold)
}

func (s *PerProductThreshold) Evaluate(p *model.Product) (string, bool) {
	threshold := s.defaultThreshold
	suffix := "(default)"
	if override := p.AlertThresholdOverride(); override != nil {
		threshold = *override
		suffix = "(product override)"
	}
	if p.Quantity() <= threshold {
		return fmt.Sprintf("%s low stock %d <= %d %s", p.Name(), p.Quantity(), threshold, suffix), true
	}
	return "", false
}
