package model

import "fmt"

// Category is the grouping node of the catalog tree. It holds an ordered
// list of children (categories and products, insertion order preserved) and
// derives its quantity and price from them on every read.
type Category struct {
	name     string
	parent   *Category
	children []Item
}

// NewCategory validates and trims the name before constructing the node.
func NewCategory(name string) (*Category, error) {
	trimmed, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Category{name: trimmed}, nil
}

func (c *Category) Name() string { return c.name }

func (c *Category) Rename(name string) error {
	trimmed, err := validateName(name)
	if err != nil {
		return err
	}
	c.name = trimmed
	return nil
}

// Add appends child to the child list. A node is owned by at most one parent
// at a time, so adding an already-attached node or creating a cycle is a
// structural error. Duplicate names are allowed, duplicate references are
// not.
func (c *Category) Add(child Item) error {
	if child.Parent() != nil {
		return fmt.Errorf("item %q already has a parent: %w", child.Name(), ErrStructural)
	}
	for anc := c; anc != nil; anc = anc.parent {
		if anc == child {
			return fmt.Errorf("adding %q would create a cycle: %w", child.Name(), ErrStructural)
		}
	}
	c.children = append(c.children, child)
	child.setParent(c)
	return nil
}

// Remove detaches child by reference identity and releases its whole
// subtree. Removing a node that is not a direct child is a no-op.
func (c *Category) Remove(child Item) {
	for i, existing := range c.children {
		if existing == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.setParent(nil)
			return
		}
	}
}

// Child returns the i-th child in insertion order.
func (c *Category) Child(i int) (Item, error) {
	if i < 0 || i >= len(c.children) {
		return nil, fmt.Errorf("child index %d out of range: %w", i, ErrStructural)
	}
	return c.children[i], nil
}

// Children returns a copy of the child list so callers cannot bypass Add's
// ownership checks.
func (c *Category) Children() []Item {
	out := make([]Item, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Category) ChildCount() int { return len(c.children) }

// Quantity sums the quantities of all children recursively. Always
// recomputed so the total can never go stale after a descendant mutation.
func (c *Category) Quantity() int {
	total := 0
	for _, child := range c.children {
		total += child.Quantity()
	}
	return total
}

// Price sums the prices of all children recursively, giving the subtree's
// total value.
func (c *Category) Price() float64 {
	total := 0.0
	for _, child := range c.children {
		total += child.Price()
	}
	return total
}

func (c *Category) Parent() *Category { return c.parent }

func (c *Category) setParent(p *Category) { c.parent = p }
