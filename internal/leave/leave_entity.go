package leave

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Category string

const (
	CategoryVacation  Category = "vacation"
	CategorySick      Category = "sick"
	CategoryPersonal  Category = "personal"
	CategoryMaternity Category = "maternity"
	CategoryOther     Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVacation, CategorySick, CategoryPersonal, CategoryMaternity, CategoryOther:
		return true
	}
	return false
}

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`

	// EmployeeName is denormalized at creation so lists render without a join.
	EmployeeName string   `gorm:"type:varchar(255);not null"`
	Category     Category `gorm:"type:varchar(30);not null;default:'vacation'"`

	// Inclusive calendar range, EndDate >= StartDate.
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`

	// Days always equals the inclusive span between StartDate and EndDate.
	Days   int    `gorm:"type:int;not null;default:1"`
	Reason string `gorm:"type:text;not null"`

	Status      Status    `gorm:"type:varchar(20);not null;default:'pending';index:idx_leave_requests_status"`
	RequestDate time.Time `gorm:"type:date;not null"`

	// Review metadata: set together by the status transition, never
	// individually. A terminal request always carries ReviewedBy and
	// ReviewedAt.
	ReviewedBy *string    `gorm:"type:varchar(255)"`
	ReviewedAt *time.Time `gorm:"type:date"`
	Comments   *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
