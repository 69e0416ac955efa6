package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the administration backend. Email is the
// login identifier; the password column only ever holds a bcrypt hash.
type User struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	FirstName     string      `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string      `gorm:"type:varchar(100)" json:"last_name"`
	Email         string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone         string      `gorm:"type:varchar(50)" json:"phone"`
	WhatsappPhone string      `gorm:"type:varchar(50)" json:"whatsapp_phone"`
	Website       string      `gorm:"type:varchar(255)" json:"website"`
	Residence     string      `gorm:"type:varchar(255)" json:"residence"`
	StructureName string      `gorm:"type:varchar(100)" json:"structure_name"`
	ProfilePic    string      `gorm:"type:varchar(255)" json:"profile_picture"` // media path
	Password      string      `gorm:"type:varchar(255);not null" json:"-"`      // bcrypt hash, never serialized
	RoleID        *uint       `gorm:"index" json:"role_id"`
	Role          *Role       `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL" json:"role,omitempty"`
	EntrepriseID  *uint       `gorm:"index" json:"entreprise_id"`
	Entreprise    *CodeCenter `gorm:"foreignKey:EntrepriseID;constraint:OnDelete:SET NULL" json:"entreprise,omitempty"`
	IsActive      bool        `gorm:"default:true" json:"is_active"`
	IsStaff       bool        `gorm:"default:false" json:"is_staff"`
	IsSuperuser   bool        `gorm:"default:false" json:"is_superuser"`
	LastLogin     *time.Time  `json:"last_login"`
	CreatedAt     time.Time   `gorm:"autoCreateTime" json:"date_joined"`
	UpdatedAt     time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// DisplayName is the audit snapshot for a user: the login email.
func (u *User) DisplayName() string {
	return u.Email
}

// RefreshToken records an issued refresh token by its JTI claim. Logout marks
// the row revoked so the token cannot be redeemed again; refresh rotation
// revokes the old row and inserts a new one.
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"` // the token's jti claim
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Revoked   bool      `gorm:"default:false;not null" json:"revoked"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
