package analytics

// MonthRevenue is the revenue realised in one calendar month ("2006-01").
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ProductStat aggregates one product across the filtered order set.
type ProductStat struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

// CategoryRevenue is the revenue attributed to one derived category.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// CategoryProducts lists the product names grouped under one category.
type CategoryProducts struct {
	Category string   `json:"category"`
	Products []string `json:"products"`
}

// LocationStat aggregates orders per delivery location.
type LocationStat struct {
	Location string  `json:"location"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

// Summary is the full analytics rollup, recomputed from scratch per request.
type Summary struct {
	TotalOrders        int                `json:"total_orders"`
	TotalRevenue       float64            `json:"total_revenue"`
	MonthlyRevenue     []MonthRevenue     `json:"monthly_revenue"`
	TopProducts        []ProductStat      `json:"top_products"`
	Categories         []CategoryRevenue  `json:"categories"`
	ProductsByCategory []CategoryProducts `json:"products_by_category"`
	Locations          []LocationStat     `json:"locations"`
}
