package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/abhisheksonias/agrigo-backend/internal/modules/order"
)

// topN caps the product and location rollups.
const topN = 10

// OrderSource provides the order collection the rollups fold over.
// It is satisfied by both order.Service and order.Repository.
type OrderSource interface {
	ListOrders(ctx context.Context, status string, from, to *time.Time) ([]*order.Order, error)
}

// Service computes sales rollups over fully dispatched orders.
type Service interface {
	// Summarize recomputes the full rollup for the given time window.
	// A nil bound leaves that side of the window open.
	Summarize(ctx context.Context, from, to *time.Time) (*Summary, error)

	// ExportWorkbook renders the rollup as an Excel workbook.
	ExportWorkbook(ctx context.Context, from, to *time.Time) ([]byte, error)
}

type service struct {
	orders OrderSource
}

// NewService creates a new analytics service.
func NewService(orders OrderSource) Service {
	return &service{orders: orders}
}

func (s *service) Summarize(ctx context.Context, from, to *time.Time) (*Summary, error) {
	orders, err := s.orders.ListOrders(ctx, string(order.StatusFullDispatch), from, to)
	if err != nil {
		return nil, err
	}
	return summarize(orders), nil
}

func (s *service) ExportWorkbook(ctx context.Context, from, to *time.Time) ([]byte, error) {
	summary, err := s.Summarize(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return renderWorkbook(summary)
}

// summarize is the pure fold over the filtered order collection.
func summarize(orders []*order.Order) *Summary {
	summary := &Summary{TotalOrders: len(orders)}

	byMonth := make(map[string]float64)
	byProduct := make(map[string]*ProductStat)
	byLocation := make(map[string]*LocationStat)

	for _, o := range orders {
		total := o.Total()
		summary.TotalRevenue += total
		byMonth[o.CreatedAt.Format("2006-01")] += total

		location := o.DeliveryLocation
		if location == "" {
			location = "Unknown"
		}
		loc, ok := byLocation[location]
		if !ok {
			loc = &LocationStat{Location: location}
			byLocation[location] = loc
		}
		loc.Orders++
		loc.Revenue += total

		for _, item := range o.Items {
			key := item.ProductID.String()
			stat, ok := byProduct[key]
			if !ok {
				stat = &ProductStat{ProductID: key, ProductName: item.ProductName}
				byProduct[key] = stat
			}
			stat.Quantity += item.Quantity
			stat.Revenue += float64(item.Quantity) * item.Price
		}
	}

	summary.MonthlyRevenue = sortedMonths(byMonth)
	summary.TopProducts = topProducts(byProduct)
	summary.Categories, summary.ProductsByCategory = categorize(byProduct)
	summary.Locations = topLocations(byLocation)
	return summary
}

func sortedMonths(byMonth map[string]float64) []MonthRevenue {
	months := make([]MonthRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		months = append(months, MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}

// topProducts merges the top performers by revenue and by quantity, revenue
// taking priority, capped at topN.
func topProducts(byProduct map[string]*ProductStat) []ProductStat {
	stats := make([]*ProductStat, 0, len(byProduct))
	for _, s := range byProduct {
		stats = append(stats, s)
	}

	byRevenue := make([]*ProductStat, len(stats))
	copy(byRevenue, stats)
	sort.Slice(byRevenue, func(i, j int) bool { return byRevenue[i].Revenue > byRevenue[j].Revenue })

	byQuantity := make([]*ProductStat, len(stats))
	copy(byQuantity, stats)
	sort.Slice(byQuantity, func(i, j int) bool { return byQuantity[i].Quantity > byQuantity[j].Quantity })

	seen := make(map[string]bool, topN)
	var merged []ProductStat
	for _, s := range byRevenue {
		if len(merged) == topN {
			return merged
		}
		seen[s.ProductID] = true
		merged = append(merged, *s)
	}
	for _, s := range byQuantity {
		if len(merged) == topN {
			break
		}
		if !seen[s.ProductID] {
			seen[s.ProductID] = true
			merged = append(merged, *s)
		}
	}
	return merged
}

func categorize(byProduct map[string]*ProductStat) ([]CategoryRevenue, []CategoryProducts) {
	revenueByCategory := make(map[string]float64)
	productsByCategory := make(map[string][]string)
	for _, s := range byProduct {
		category := InferCategory(s.ProductName)
		revenueByCategory[category] += s.Revenue
		productsByCategory[category] = append(productsByCategory[category], s.ProductName)
	}

	categories := make([]CategoryRevenue, 0, len(revenueByCategory))
	for category, revenue := range revenueByCategory {
		categories = append(categories, CategoryRevenue{Category: category, Revenue: revenue})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Revenue > categories[j].Revenue })

	grouped := make([]CategoryProducts, 0, len(productsByCategory))
	for category, products := range productsByCategory {
		sort.Strings(products)
		grouped = append(grouped, CategoryProducts{Category: category, Products: products})
	}
	sort.Slice(grouped, func(i, j int) bool { return grouped[i].Category < grouped[j].Category })

	return categories, grouped
}

func topLocations(byLocation map[string]*LocationStat) []LocationStat {
	locations := make([]LocationStat, 0, len(byLocation))
	for _, l := range byLocation {
		locations = append(locations, *l)
	}
	sort.Slice(locations, func(i, j int) bool {
		if locations[i].Orders != locations[j].Orders {
			return locations[i].Orders > locations[j].Orders
		}
		return locations[i].Location < locations[j].Location
	})
	if len(locations) > topN {
		locations = locations[:topN]
	}
	return locations
}
