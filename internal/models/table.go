package models

import "time"

// Table types mirror the physical floor plan.
const (
	TableTypeNormal2  = "normal_2"
	TableTypeNormal4  = "normal_4"
	TableTypeVIP2     = "vip_2"
	TableTypeVIPLarge = "vip_grande"
)

// Table is one fungible unit of capacity backing a service. The engine never
// assigns a specific table, it only counts how many active ones exist.
type Table struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint `gorm:"uniqueIndex:idx_business_table_name" json:"business_id"`
	ServiceID  uint `json:"service_id"`

	Name        string `gorm:"size:50;uniqueIndex:idx_business_table_name;not null" json:"name"`
	Type        string `gorm:"size:20" json:"type"`
	CapacityMin int    `gorm:"default:1" json:"capacity_min"`
	CapacityMax int    `gorm:"default:2" json:"capacity_max"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
