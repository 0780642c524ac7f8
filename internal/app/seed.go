package app

import (
	"context"
	"time"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the password every seeded account accepts. The seeded
// directory exists for the login simulation only.
const DemoPassword = "password123"

// SeedDemoData loads the demo directory into the in-memory store: two
// employees reporting to one manager, who reports to the director, plus a
// few historical requests.
func SeedDemoData(
	ctx context.Context,
	employees employee.Repository,
	leaves leave.Repository,
) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	director := employee.Employee{
		ID:            uuid.New(),
		FullName:      "Sophie Bernard",
		Email:         "sophie.bernard@company.com",
		Password:      string(hash),
		Role:          employee.RoleDirector,
		Department:    "Direction",
		RemainingDays: 20,
		TotalDays:     30,
	}
	manager := employee.Employee{
		ID:            uuid.New(),
		FullName:      "Pierre Durand",
		Email:         "pierre.durand@company.com",
		Password:      string(hash),
		Role:          employee.RoleManager,
		ManagerID:     &director.ID,
		Department:    "IT",
		RemainingDays: 15,
		TotalDays:     28,
	}
	jean := employee.Employee{
		ID:            uuid.New(),
		FullName:      "Jean Dupont",
		Email:         "jean.dupont@company.com",
		Password:      string(hash),
		Role:          employee.RoleEmployee,
		ManagerID:     &manager.ID,
		Department:    "Développement",
		RemainingDays: 18,
		TotalDays:     25,
	}
	marie := employee.Employee{
		ID:            uuid.New(),
		FullName:      "Marie Martin",
		Email:         "marie.martin@company.com",
		Password:      string(hash),
		Role:          employee.RoleEmployee,
		ManagerID:     &manager.ID,
		Department:    "Marketing",
		RemainingDays: 12,
		TotalDays:     22,
	}

	for _, e := range []employee.Employee{director, manager, jean, marie} {
		seeded := e
		if err := employees.Create(ctx, &seeded); err != nil {
			return err
		}
	}

	reviewer := manager.FullName
	requests := []leave.LeaveRequest{
		{
			ID:           uuid.New(),
			EmployeeID:   jean.ID,
			EmployeeName: jean.FullName,
			Category:     leave.CategoryPersonal,
			StartDate:    date(2024, 6, 10),
			EndDate:      date(2024, 6, 10),
			Days:         1,
			Reason:       "Rendez-vous médical",
			Status:       leave.StatusApproved,
			RequestDate:  date(2024, 6, 5),
			ReviewedBy:   &reviewer,
			ReviewedAt:   ptrDate(2024, 6, 6),
			Comments:     ptr(""),
		},
		{
			ID:           uuid.New(),
			EmployeeID:   marie.ID,
			EmployeeName: marie.FullName,
			Category:     leave.CategorySick,
			StartDate:    date(2024, 6, 18),
			EndDate:      date(2024, 6, 19),
			Days:         2,
			Reason:       "Grippe",
			Status:       leave.StatusApproved,
			RequestDate:  date(2024, 6, 17),
			ReviewedBy:   &reviewer,
			ReviewedAt:   ptrDate(2024, 6, 17),
			Comments:     ptr(""),
		},
		{
			ID:           uuid.New(),
			EmployeeID:   jean.ID,
			EmployeeName: jean.FullName,
			Category:     leave.CategoryVacation,
			StartDate:    date(2024, 7, 15),
			EndDate:      date(2024, 7, 25),
			Days:         11,
			Reason:       "Vacances d'été en famille",
			Status:       leave.StatusPending,
			RequestDate:  date(2024, 6, 20),
		},
	}
	for _, l := range requests {
		seeded := l
		if err := leaves.Create(ctx, &seeded); err != nil {
			return err
		}
	}

	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptrDate(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func ptr(s string) *string {
	return &s
}
