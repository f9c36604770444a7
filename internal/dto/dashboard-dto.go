package dto

type DashboardStatsDTO struct {
	TotalRequests      uint64             `json:"total_requests"`
	PendingRequests    uint64             `json:"pending_requests"`
	InProgressRequests uint64             `json:"in_progress_requests"`
	CompletedRequests  uint64             `json:"completed_requests"`
	TotalEquipment     uint64             `json:"total_equipment"`
	ActiveEquipment    uint64             `json:"active_equipment"`
	RecentRequests     []RepairRequestDTO `json:"recent_requests"`
}
