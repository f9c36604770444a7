package entities

import "time"

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type EquipmentCategory struct {
	ID          uint64    `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type Equipment struct {
	ID             uint64     `db:"id"`
	EquipmentCode  string     `db:"equipment_code"`
	Name           string     `db:"name"`
	CategoryID     *uint64    `db:"category_id"`
	Description    string     `db:"description"`
	Location       string     `db:"location"`
	PurchaseDate   *time.Time `db:"purchase_date"`
	WarrantyExpiry *time.Time `db:"warranty_expiry"`
	Condition      Condition  `db:"condition"`
	IsActive       bool       `db:"is_active"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}
