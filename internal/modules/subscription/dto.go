package subscription

type PurchaseRequest struct {
	ServiceID    *int64 `json:"service_id"`
	Visits       int    `json:"visits"`
	DurationDays int    `json:"duration_days"`
}
