package model

import (
	"time"
)

// Action type constants
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Action is an immutable audit record of a create/update/delete event on a
// tracked entity. Rows are only ever inserted; there is no update or delete
// path anywhere in the codebase.
type Action struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     *uint  `gorm:"index" json:"user_id"` // Nullable: mutations without an identifiable actor still log
	User       *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ActionType string `gorm:"type:varchar(10);not null;index" json:"action_type"` // CREATE, UPDATE, DELETE
	// ContentType is a free-text entity label ("User", "Product"), ObjectRepr a
	// display snapshot taken at mutation time so the row stays meaningful after
	// the subject has been deleted.
	ContentType string    `gorm:"type:varchar(255);not null" json:"content_type"`
	ObjectRepr  string    `gorm:"type:varchar(255)" json:"object_repr"`
	CreatedAt   time.Time `gorm:"index" json:"timestamp"`
}
