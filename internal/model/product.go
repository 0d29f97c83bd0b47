package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a single catalog entry. The exposed identifier is a
// server-generated UUID held in ID; the auto-increment PK stays internal and
// is never serialized or accepted from clients.
type Product struct {
	PK          uint      `json:"-" gorm:"primaryKey"`
	ID          string    `json:"id" gorm:"type:varchar(36);uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"type:varchar(100);not null;index"`
	InStock     bool      `json:"inStock" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the UUID identifier. Generation is per-record and
// collision-resistant, so concurrent creates need no coordination.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
