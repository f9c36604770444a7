package dto

type EquipmentCategoryDTO struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	EquipmentCount uint64 `json:"equipment_count"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type CreateEquipmentCategoryDTO struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateEquipmentCategoryDTO struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty"`
}

type EquipmentDTO struct {
	ID             uint64  `json:"id"`
	EquipmentCode  string  `json:"equipment_code"`
	Name           string  `json:"name"`
	CategoryID     *uint64 `json:"category,omitempty"`
	CategoryName   string  `json:"category_name,omitempty"`
	Description    string  `json:"description"`
	Location       string  `json:"location"`
	PurchaseDate   *string `json:"purchase_date,omitempty"`
	WarrantyExpiry *string `json:"warranty_expiry,omitempty"`
	Condition      string  `json:"condition"`
	IsActive       bool    `json:"is_active"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type CreateEquipmentDTO struct {
	EquipmentCode  string  `json:"equipment_code" validate:"required,min=2,max=50"`
	Name           string  `json:"name" validate:"required,min=2,max=200"`
	CategoryID     *uint64 `json:"category,omitempty" validate:"omitempty,gt=0"`
	Description    string  `json:"description" validate:"omitempty"`
	Location       string  `json:"location" validate:"required,max=200"`
	PurchaseDate   *string `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry *string `json:"warranty_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Condition      string  `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type UpdateEquipmentDTO struct {
	EquipmentCode  *string `json:"equipment_code,omitempty" validate:"omitempty,min=2,max=50"`
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	CategoryID     *uint64 `json:"category,omitempty" validate:"omitempty,gt=0"`
	Description    *string `json:"description,omitempty"`
	Location       *string `json:"location,omitempty" validate:"omitempty,max=200"`
	PurchaseDate   *string `json:"purchase_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WarrantyExpiry *string `json:"warranty_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Condition      *string `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair poor"`
	IsActive       *bool   `json:"is_active,omitempty"`
}
