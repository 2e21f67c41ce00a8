package dto

// DashboardStatsResponse is the staff dashboard rollup. Values may be served
// from a short-TTL cache; CacheHit reports where they came from.
type DashboardStatsResponse struct {
	Students          int64              `json:"students"`
	Employees         int64              `json:"employees"`
	Courses           int64              `json:"courses"`
	PendingBookings   int64              `json:"pending_bookings"`
	ConfirmedBookings int64              `json:"confirmed_bookings"`
	CancelledBookings int64              `json:"cancelled_bookings"`
	Revenue           float64            `json:"revenue"`
	RevenueByMethod   map[string]float64 `json:"revenue_by_method"`
	RecentBookings    []BookingResponse  `json:"recent_bookings"`
	CacheHit          bool               `json:"cache_hit,omitempty"`
}
