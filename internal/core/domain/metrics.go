package domain

// PlatformMetrics is the aggregate view shown on the admin dashboard.
type PlatformMetrics struct {
	TotalUsers     int64               `json:"total_users"`
	ActiveUsers    int64               `json:"active_users"`
	SuspendedUsers int64               `json:"suspended_users"`
	TotalSkills    int64               `json:"total_skills"`
	OfferedSkills  int64               `json:"offered_skills"`
	NeededSkills   int64               `json:"needed_skills"`
	ActiveSwaps    int64               `json:"active_swaps"`
	CompletedSwaps int64               `json:"completed_swaps"`
	RecentSwaps    int64               `json:"recent_swaps"`
	SwapsByState   map[SwapState]int64 `json:"swaps_by_state"`
}
