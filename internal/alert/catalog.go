package alert

import "fmt"

// Catalog is the ordered set of strategies available for runtime selection,
// keyed by display name.
type Catalog struct {
	strategies []Strategy
}

func NewCatalog(strategies ...Strategy) *Catalog {
	return &Catalog{strategies: strategies}
}

// Names lists the display names in registration order, for UI/CLI pickers.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.DisplayName()
	}
	return names
}

// ByName resolves a strategy by its display name.
func (c *Catalog) ByName(name string) (Strategy, error) {
	for _, s := range c.strategies {
		if s.DisplayName() == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unknown alert strategy %q", name)
}
