package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fekuna/inventory-catalog/internal/catalog"
	"github.com/fekuna/inventory-catalog/internal/catalog/dto"
	"github.com/fekuna/inventory-catalog/internal/model"
	"github.com/fekuna/inventory-catalog/internal/seed"
)

func newRootCmd(uc catalog.UseCase) *cobra.Command {
	root := &cobra.Command{
		Use:           "inventory",
		Short:         "Hierarchical stock catalog",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newTreeCmd(uc),
		newAddCategoryCmd(uc),
		newAddProductCmd(uc),
		newRenameCmd(uc),
		newRemoveCmd(uc),
		newEditCmd(uc),
		newCopyCmd(uc),
		newSetQtyCmd(uc),
		newReportCmd(uc),
		newStrategiesCmd(uc),
		newSeedCmd(uc),
		newSummaryCmd(uc),
	)
	return root
}

func newTreeCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the catalog hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			printItem(cmd, uc.Root(), "")
			return nil
		},
	}
}

func printItem(cmd *cobra.Command, item model.Item, indent string) {
	switch node := item.(type) {
	case *model.Category:
		cmd.Printf("%s+ %s\n", indent, node.Name())
		for _, child := range node.Children() {
			printItem(cmd, child, indent+"  ")
		}
	case *model.Product:
		cmd.Printf("%s- %s [Qty: %d, Price: %g, Loc: %s]\n",
			indent, node.Name(), node.Quantity(), node.Price(), node.Location())
	}
}

func newAddCategoryCmd(uc catalog.UseCase) *cobra.Command {
	var parentPath string
	cmd := &cobra.Command{
		Use:   "add-category <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := resolveCategory(uc.Root(), parentPath)
			if err != nil {
				return err
			}
			if _, err := uc.CreateCategory(parent, args[0]); err != nil {
				return err
			}
			return uc.Save(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&parentPath, "parent", "", "slash-separated parent category path (default: root)")
	return cmd
}

func newAddProductCmd(uc catalog.UseCase) *cobra.Command {
	var (
		parentPath string
		quantity   int
		price      float64
		location   string
		threshold  int
	)
	cmd := &cobra.Command{
		Use:   "add-product <name>",
		Short: "Create a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := resolveCategory(uc.Root(), parentPath)
			if err != nil {
				return err
			}
			input := &dto.CreateProductInput{
				Parent:   parent,
				Name:     args[0],
				Quantity: quantity,
				Price:    price,
				Location: location,
			}
			if threshold >= 0 {
				input.AlertThresholdOverride = &threshold
			}
			if _, err := uc.CreateProduct(input); err != nil {
				return err
			}
			return uc.Save(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&parentPath, "parent", "", "slash-separated parent category path (default: root)")
	cmd.Flags().IntVar(&quantity, "qty", 0, "initial quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "unit price")
	cmd.Flags().StringVar(&location, "location", "", "warehouse slot")
	cmd.Flags().IntVar(&threshold, "threshold", -1, "per-product alert threshold (-1: use strategy default)")
	return cmd
}

func newRenameCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <path> <new-name>",
		Short: "Rename a category or product",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(uc.Root(), args[0])
			if err != nil {
				return err
			}
			if err := uc.Rename(item, args[1]); err != nil {
				return err
			}
			return uc.Save(cmd.Context())
		},
	}
}

func newRemoveCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a category or product (and its whole subtree)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := resolveItem(uc.Root(), args[0])
			if err != nil {
				return err
			}
			if err := uc.Remove(item); err != nil {
				return err
			}
			return uc.Save(cmd.Context())
		},
	}
}

func newEditCmd(uc catalog.UseCase) *cobra.Command {
	var (
		name      string
		quantity  int
		price     float64
		location  string
		threshold int
	)
	cmd := &cobra.Command{
		Use:   "edit <product-path>",
		Short: "Edit a product's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProduct(uc.Root(), args[0])
			if err != nil {
				return err
			}
			// Unset flags keep the product's current values.
			input := &dto.UpdateProductInput{
				Name:                   p.Name(),
				Quantity:               p.Quantity(),
				Price:                  p.Price(),
				Location:               p.Location(),
				AlertThresholdOverride: p.AlertThresholdOverride(),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				input.Name = name
			}
			if flags.Changed("qty") {
				input.Quantity = quantity
			}
			if flags.Changed("price") {
				input.Price = price
			}
			if flags.Changed("location") {
				input.Location = location
			}
			if flags.Changed("threshold") {
				if threshold < 0 {
					input.AlertThresholdOverride = nil
				} else {
					input.AlertThresholdOverride = &threshold
				}
			}
			if err := uc.UpdateProduct(p, input); err != nil {
				return err
			}
			if msg, ok := uc.Evaluate(p); ok {
				cmd.Printf("ALERT: %s\n", msg)
			}
			return uc.Save(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVar(&quantity, "qty", 0, "new quantity")
	cmd.Flags().Float64Var(&price, "price", 0, "new unit price")
	cmd.Flags().StringVar(&location, "location", "", "new warehouse slot")
	cmd.Flags().IntVar(&threshold, "threshold", -1, "per-product alert threshold (-1 clears the override)")
	return cmd
}

func newCopyCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <product-path>",
		Short: "Clone a product under the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProduct(uc.Root(), args[0])
			if err != nil {
				return err
			}
			clone, err := uc.CopyProduct(p)
			if err != nil {
				return err
			}
			cmd.Printf("Copied to %q.\n", clone.Name())
			return uc.Save(cmd.Context())
		},
	}
}

func newSetQtyCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "set-qty <product-path> <quantity>",
		Short: "Set a product's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProduct(uc.Root(), args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if err := uc.SetQuantity(p, qty); err != nil {
				return err
			}
			if msg, ok := uc.Evaluate(p); ok {
				cmd.Printf("ALERT: %s\n", msg)
			}
			return uc.Save(cmd.Context())
		},
	}
}

func newReportCmd(uc catalog.UseCase) *cobra.Command {
	var strategyName string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Scan every product with the active alert strategy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strategyName != "" {
				if err := uc.SetActiveStrategyByName(strategyName); err != nil {
					return err
				}
			}
			warnings := uc.ScanForWarnings()
			if len(warnings) == 0 {
				cmd.Printf("No warnings (%s).\n", uc.ActiveStrategy().DisplayName())
				return nil
			}
			cmd.Printf("Warnings (%s):\n", uc.ActiveStrategy().DisplayName())
			for _, w := range warnings {
				cmd.Printf("  %s\n", w.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&strategyName, "strategy", "", "switch to this strategy (display name) before scanning")
	return cmd
}

func newStrategiesCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available alert strategies",
		RunE: func(cmd *cobra.Command, args []string) error {
			active := uc.ActiveStrategy().DisplayName()
			for _, name := range uc.StrategyNames() {
				marker := " "
				if name == active {
					marker = "*"
				}
				cmd.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}

func newSeedCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the catalog with sample data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := seed.Load(uc); err != nil {
				return err
			}
			cmd.Printf("Seeded %d categories / %d products.\n", seed.Categories(), seed.Products())
			return uc.Save(cmd.Context())
		},
	}
}

func newSummaryCmd(uc catalog.UseCase) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [category-path]",
		Short: "List a category's subcategory totals and direct products",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			cat, err := resolveCategory(uc.Root(), path)
			if err != nil {
				return err
			}
			cmd.Printf("%s (total qty %d, total value %.2f)\n", cat.Name(), cat.Quantity(), cat.Price())
			for _, s := range uc.CategorySummaries(cat) {
				cmd.Printf("  + %-20s qty %6d  value %10.2f\n", s.Name, s.TotalQuantity, s.TotalValue)
			}
			for _, r := range uc.ProductRows(cat) {
				cmd.Printf("  - %-20s qty %6d  price %8.2f  loc %s\n", r.Name, r.Quantity, r.Price, r.Location)
			}
			return nil
		},
	}
}

// resolveCategory walks a slash-separated path of category names from root.
// An empty path resolves to the root itself; the first name match wins at
// each level.
func resolveCategory(root *model.Category, path string) (*model.Category, error) {
	current := root
	if strings.TrimSpace(path) == "" {
		return current, nil
	}
	for _, part := range strings.Split(path, "/") {
		var next *model.Category
		for _, child := range current.Children() {
			if sub, ok := child.(*model.Category); ok && sub.Name() == part {
				next = sub
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("category %q not found under %q", part, current.Name())
		}
		current = next
	}
	return current, nil
}

// resolveItem resolves a path to either variant: categories first, then a
// product whose parent path matched.
func resolveItem(root *model.Category, path string) (model.Item, error) {
	if cat, err := resolveCategory(root, path); err == nil {
		return cat, nil
	}
	p, err := resolveProduct(root, path)
	if err != nil {
		return nil, fmt.Errorf("no category or product at %q", path)
	}
	return p, nil
}

// resolveProduct resolves a slash-separated path whose last segment is a
// product name and whose leading segments are categories.
func resolveProduct(root *model.Category, path string) (*model.Product, error) {
	parts := strings.Split(path, "/")
	if len(parts) == 0 || strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty product path")
	}
	parent, err := resolveCategory(root, strings.Join(parts[:len(parts)-1], "/"))
	if err != nil {
		return nil, err
	}
	name := parts[len(parts)-1]
	for _, child := range parent.Children() {
		if p, ok := child.(*model.Product); ok && p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %q not found under %q", name, parent.Name())
}
