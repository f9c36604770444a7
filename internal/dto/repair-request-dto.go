package dto

import "github.com/aarondl/null/v8"

type CreateRepairRequestDTO struct {
	EquipmentID uint64 `json:"equipment" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type AssignRepairRequestDTO struct {
	TechnicianID uint64 `json:"technician_id" validate:"required,gt=0"`
}

type UpdateStatusDTO struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment" validate:"omitempty"`
}

// UpdateRepairRequestDTO is the generic patch body. null/v8 fields distinguish
// "absent" from "explicitly set", which drives the audit rule: an entry is
// appended only when a comment was supplied or status is among the patched
// fields.
type UpdateRepairRequestDTO struct {
	Status        null.String  `json:"status,omitempty"`
	AssignedTo    null.Uint64  `json:"assigned_to,omitempty"`
	EstimatedCost null.Float64 `json:"estimated_cost,omitempty"`
	ActualCost    null.Float64 `json:"actual_cost,omitempty"`
	Remarks       null.String  `json:"remarks,omitempty"`
	Comment       null.String  `json:"comment,omitempty"`
}

type RepairRequestDTO struct {
	ID            uint64        `json:"id"`
	RequestNumber string        `json:"request_number"`
	EquipmentID   uint64        `json:"equipment"`
	EquipmentName string        `json:"equipment_name"`
	EquipmentCode string        `json:"equipment_code"`
	Requester     ShortUserDTO  `json:"requester"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Priority      string        `json:"priority"`
	Status        string        `json:"status"`
	AssignedTo    *ShortUserDTO `json:"assigned_to,omitempty"`
	RequestDate   string        `json:"request_date"`
	AssignedDate  *string       `json:"assigned_date,omitempty"`
	CompletedDate *string       `json:"completed_date,omitempty"`
	EstimatedCost *float64      `json:"estimated_cost,omitempty"`
	ActualCost    *float64      `json:"actual_cost,omitempty"`
	Remarks       string        `json:"remarks,omitempty"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

type RepairHistoryDTO struct {
	ID              uint64 `json:"id"`
	RepairRequestID uint64 `json:"repair_request"`
	UpdatedBy       uint64 `json:"updated_by"`
	UpdatedByName   string `json:"updated_by_name"`
	Status          string `json:"status"`
	Comment         string `json:"comment"`
	CreatedAt       string `json:"created_at"`
}
