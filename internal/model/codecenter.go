package model

import (
	"time"
)

// CodeCenterPrefix is the two-letter prefix of generated organization codes.
const CodeCenterPrefix = "CC"

// CodeCenter is the tenant/organization entity. Code is assigned once at
// creation (CC001, CC002, ...) and never reassigned; the unique index backs
// the generate-and-retry loop in the service layer.
type CodeCenter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"type:varchar(100)" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
