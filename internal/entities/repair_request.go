package entities

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type RepairRequest struct {
	ID            uint64     `db:"id"`
	RequestNumber string     `db:"request_number"`
	EquipmentID   uint64     `db:"equipment_id"`
	RequesterID   uint64     `db:"requester_id"`
	Title         string     `db:"title"`
	Description   string     `db:"description"`
	Priority      Priority   `db:"priority"`
	Status        Status     `db:"status"`
	AssignedTo    *uint64    `db:"assigned_to"`
	RequestDate   time.Time  `db:"request_date"`
	AssignedDate  *time.Time `db:"assigned_date"`
	CompletedDate *time.Time `db:"completed_date"`
	EstimatedCost *float64   `db:"estimated_cost"`
	ActualCost    *float64   `db:"actual_cost"`
	Remarks       string     `db:"remarks"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

// ApplyStatus sets the status and derives the date side effects shared by
// every status-setting path. Transitions are deliberately not order-enforced:
// any known status may follow any other. Date fields are first-write-wins and
// survive later status regressions.
func (r *RepairRequest) ApplyStatus(status Status, now time.Time) {
	r.Status = status

	switch status {
	case StatusAssigned:
		if r.AssignedDate == nil {
			t := now
			r.AssignedDate = &t
		}
	case StatusCompleted:
		if r.CompletedDate == nil {
			t := now
			r.CompletedDate = &t
		}
	}
}

// RepairHistory is one append-only audit trail entry tied to a request.
// Entries are never updated or individually deleted; they go away only when
// the owning request is destroyed.
type RepairHistory struct {
	ID              uint64    `db:"id"`
	RepairRequestID uint64    `db:"repair_request_id"`
	UpdatedBy       uint64    `db:"updated_by"`
	Status          Status    `db:"status"`
	Comment         string    `db:"comment"`
	CreatedAt       time.Time `db:"created_at"`
}
