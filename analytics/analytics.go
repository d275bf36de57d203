// Package analytics derives sales figures from the persisted order scan.
// Aggregation is read-only and idempotent: the same input always produces
// the same summary.
package analytics

import (
	"sort"

	"brewhouse/models"
)

// ItemSales is one row of the top-seller table, keyed by item name.
type ItemSales struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// Summary holds the derived figures for the admin dashboard.
type Summary struct {
	TotalRevenue      float64     `json:"totalRevenue"`
	TotalOrders       int         `json:"totalOrders"`
	AverageOrderValue float64     `json:"averageOrderValue"`
	TopItems          []ItemSales `json:"topItems"`
	PeakHour          int         `json:"peakHour"`
}

// Aggregate computes the summary over a slice of persisted orders. Orders
// with a missing total contribute 0 revenue but still count. Item revenue
// uses the persisted item price, never a recomputed one. The peak hour
// tie-break is the hour encountered first while walking the orders in
// slice order; keep it that way so repeated runs agree.
func Aggregate(orders []models.Order) Summary {
	s := Summary{TotalOrders: len(orders), TopItems: []ItemSales{}}

	sales := make(map[string]*ItemSales)
	var salesOrder []string

	hourCounts := make(map[int]int)
	var hourOrder []int

	for _, order := range orders {
		s.TotalRevenue += order.Total

		for _, item := range order.Items {
			if item.Drink.Name == "" {
				continue
			}
			row, ok := sales[item.Drink.Name]
			if !ok {
				row = &ItemSales{Name: item.Drink.Name}
				sales[item.Drink.Name] = row
				salesOrder = append(salesOrder, item.Drink.Name)
			}
			row.Count += item.Quantity
			row.Revenue += item.Drink.Price * float64(item.Quantity)
		}

		hour := order.Timestamp.Hour()
		if _, seen := hourCounts[hour]; !seen {
			hourOrder = append(hourOrder, hour)
		}
		hourCounts[hour]++
	}

	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}

	for _, name := range salesOrder {
		s.TopItems = append(s.TopItems, *sales[name])
	}
	sort.SliceStable(s.TopItems, func(i, j int) bool {
		return s.TopItems[i].Count > s.TopItems[j].Count
	})
	if len(s.TopItems) > 5 {
		s.TopItems = s.TopItems[:5]
	}

	best := -1
	for _, hour := range hourOrder {
		if best == -1 || hourCounts[hour] > hourCounts[best] {
			best = hour
		}
	}
	if best >= 0 {
		s.PeakHour = best
	}
	return s
}
