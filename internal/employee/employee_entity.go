package employee

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleDirector Role = "director"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleDirector:
		return true
	}
	return false
}

type Employee struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"type:varchar(255);not null"`
	Email    string    `gorm:"type:text;not null;uniqueIndex"`
	Password string    `gorm:"type:text;not null"`
	Role     Role      `gorm:"type:varchar(20);not null;default:'employee'"`

	// ManagerID is a weak reference resolved through the repository,
	// never a pointer to another Employee.
	ManagerID  *uuid.UUID `gorm:"type:uuid;index"`
	Department string     `gorm:"type:varchar(100)"`

	// Invariant: 0 <= RemainingDays <= TotalDays. Only an approved leave
	// request decrements RemainingDays.
	RemainingDays int `gorm:"type:int;not null;default:0"`
	TotalDays     int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
