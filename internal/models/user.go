package models

import "time"

// User represents an account in the system. Role flags are tiered:
// a super admin manages users and settings, a regular admin manages
// the catalog and orders.
type User struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Username       string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PhoneNumber    string `json:"phone_number"`
	HashedPassword string `json:"-" gorm:"type:varchar(255)"` // No json tag value for security
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	IsAdmin        bool   `json:"is_admin"`
	IsSuperAdmin   bool   `json:"is_super_admin"`

	// Password recovery: a short-lived, single-use code.
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders []Order `json:"-" gorm:"foreignKey:UserID"`
}

// CanManageCatalog reports whether the user may create, update or
// delete catalog entities and view all orders.
func (u *User) CanManageCatalog() bool {
	return u.IsAdmin || u.IsSuperAdmin
}
