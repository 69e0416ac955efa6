package model

import (
	"time"

	"gorm.io/gorm"
)

// Subscription status values
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// DefaultSubscriptionTerm is applied when a subscription is saved without an
// explicit end date.
const DefaultSubscriptionTerm = 30 * 24 * time.Hour

// Subscription tracks a user's access window. Status is derived, never set by
// callers: every save re-evaluates it against the wall clock.
type Subscription struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	UserID       uint        `gorm:"not null;index" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Name         string      `gorm:"type:varchar(255);not null" json:"name"`
	Description  string      `gorm:"type:text" json:"description"`
	StartDate    time.Time   `json:"start_date"`
	EndDate      time.Time   `json:"end_date"`
	Status       string      `gorm:"type:varchar(10);default:'active'" json:"status"`
	EntrepriseID *uint       `gorm:"index" json:"entreprise_id"`
	Entreprise   *CodeCenter `gorm:"foreignKey:EntrepriseID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeSave fills defaults and recomputes the derived status. Running as a
// GORM hook means any write path, including unrelated field updates, re-checks
// expiry.
func (s *Subscription) BeforeSave(tx *gorm.DB) error {
	if s.StartDate.IsZero() {
		s.StartDate = time.Now()
	}
	if s.EndDate.IsZero() {
		s.EndDate = s.StartDate.Add(DefaultSubscriptionTerm)
	}
	if time.Now().After(s.EndDate) {
		s.Status = SubscriptionExpired
	} else {
		s.Status = SubscriptionActive
	}
	return nil
}

// IsActive reports whether the subscription was active as of its last save.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}
