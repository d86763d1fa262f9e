package models

import "time"

// Scope narrows which sales records a computation applies to.
// Either field may be empty; an empty scope matches all records.
type Scope struct {
	ProductID  string `json:"product_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// IsEmpty reports whether the scope applies no filtering at all.
func (s Scope) IsEmpty() bool {
	return s.ProductID == "" && s.CategoryID == ""
}

// SalesMetadata carries optional context captured at sale time.
type SalesMetadata struct {
	Season           string `bson:"season,omitempty" json:"season,omitempty"`
	WeatherCondition string `bson:"weatherCondition,omitempty" json:"weather_condition,omitempty"`
	SpecialEvent     string `bson:"specialEvent,omitempty" json:"special_event,omitempty"`
	DayOfWeek        string `bson:"dayOfWeek,omitempty" json:"day_of_week,omitempty"`
	IsHoliday        bool   `bson:"isHoliday,omitempty" json:"is_holiday,omitempty"`
}

// SalesRecord is one historical sales observation. Records are written by the
// order-fulfillment path and are read-only here.
type SalesRecord struct {
	ID                string        `bson:"_id,omitempty" json:"id,omitempty"`
	ProductID         string        `bson:"productId" json:"product_id"`
	ShopID            string        `bson:"shopId" json:"shop_id"`
	CategoryID        string        `bson:"categoryId" json:"category_id"`
	Date              time.Time     `bson:"date" json:"date"`
	Quantity          float64       `bson:"quantity" json:"quantity"`
	Revenue           float64       `bson:"revenue" json:"revenue"`
	OrderCount        int           `bson:"orderCount" json:"order_count"`
	AverageOrderValue float64       `bson:"averageOrderValue" json:"average_order_value"`
	Metadata          SalesMetadata `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// TrendingItem is one row of the trending-products ranking: sales aggregated
// per product over the ranking window.
type TrendingItem struct {
	ProductID     string  `bson:"_id" json:"product_id"`
	TotalQuantity float64 `bson:"totalQuantity" json:"total_quantity"`
	TotalRevenue  float64 `bson:"totalRevenue" json:"total_revenue"`
	AvgOrderValue float64 `bson:"avgOrderValue" json:"avg_order_value"`
	OrderCount    int     `bson:"orderCount" json:"order_count"`
}
