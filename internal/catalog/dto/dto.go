package dto

// ProductRow is the flat projection of one product for table/export views.
type ProductRow struct {
	Name     string
	Quantity int
	Price    float64
	Location string
}

// CategorySummary is the flat projection of one subcategory with its
// recursively aggregated totals.
type CategorySummary struct {
	Name          string
	TotalQuantity int
	TotalValue    float64
}
