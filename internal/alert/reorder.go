package alert

import (
	"fmt"

	"github.com/fekuna/inventory-catalog/internal/model"
)

// ReorderPoint is a two-level rule: reaching the reorder point asks for
// replenishment planning, falling to the safety stock escalates to an
// emergency. The safety-stock check runs first, so when both thresholds are
// satisfied the emergency message wins.
type ReorderPoint struct {
	reorderPoint int
	safetyStock  int
}

func NewReorderPoint(reorderPoint, safetyStock int) *ReorderPoint {
	return &ReorderPoint{reorderPoint: reorderPoint, safetyStock: safetyStock}
}

func (s *ReorderPoint) DisplayName() string {
	return fmt.Sprintf("Reorder point (R:%d, S:%d)", s.reorderPoint, s.safetyStock)
}

func (s *ReorderPoint) Evaluate(p *model.Product) (string, bool) {
	qty := p.Quantity()
	if qty <= s.safetyStock {
		return fmt.Sprintf("%s below safety stock (%d <= %d). Immediate action required.",
			p.Name(), qty, s.safetyStock), true
	}
	if qty <= s.reorderPoint {
		return fmt.Sprintf("%s reached reorder point (%d <= %d). Plan replenishment.",
			p.Name(), qty, s.reorderPoint), true
	}
	return "", false
}
