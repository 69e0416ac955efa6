package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductImage is a gallery image. An image may belong to zero or more
// products through the product_pictures join table.
type ProductImage struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Image       string `gorm:"type:varchar(255);not null" json:"image"` // media path
	Description string `gorm:"type:varchar(255)" json:"description"`
}

// Product is a catalog item owned by a user within an organization.
type Product struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Description  string          `gorm:"type:text" json:"description"`
	Comments     string          `gorm:"type:text" json:"comments"`
	Availability bool            `gorm:"default:true" json:"availability"`
	Photo        string          `gorm:"type:varchar(255)" json:"photo"` // media path
	Pictures     []ProductImage  `gorm:"many2many:product_pictures" json:"pictures"`
	UserID       *uint           `gorm:"index" json:"user_id"`
	User         *User           `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	EntrepriseID *uint           `gorm:"index" json:"entreprise_id"`
	Entreprise   *CodeCenter     `gorm:"foreignKey:EntrepriseID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// DisplayName is the audit snapshot for a product.
func (p *Product) DisplayName() string {
	return p.Name
}
