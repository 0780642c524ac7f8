package leave_test

import (
	"context"
	"testing"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/events"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave"
	leaveerrors "github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotifier struct {
	submitted []events.LeaveRequestSubmittedEvent
	decided   []events.LeaveRequestDecidedEvent
}

func (f *fakeNotifier) RequestSubmitted(ctx context.Context, ev events.LeaveRequestSubmittedEvent) {
	f.submitted = append(f.submitted, ev)
}

func (f *fakeNotifier) RequestDecided(ctx context.Context, ev events.LeaveRequestDecidedEvent) {
	f.decided = append(f.decided, ev)
}

type serviceFixture struct {
	*directoryFixture
	leaves   *leave.MemoryRepository
	notifier *fakeNotifier
	service  leave.Service
}

func setupService(t *testing.T) *serviceFixture {
	t.Helper()
	dir := buildDirectory(t)
	leaves := leave.NewMemoryRepository()
	notifier := &fakeNotifier{}
	svc := leave.NewService(nil, leaves, dir.repo, notifier, nil)
	return &serviceFixture{
		directoryFixture: dir,
		leaves:           leaves,
		notifier:         notifier,
		service:          svc,
	}
}

func (f *serviceFixture) seedRequest(t *testing.T, owner employee.Employee, start, end string, days int, status leave.Status) leave.LeaveRequest {
	t.Helper()
	l := leave.LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   owner.ID,
		EmployeeName: owner.FullName,
		Category:     leave.CategoryVacation,
		StartDate:    day(start),
		EndDate:      day(end),
		Days:         days,
		Reason:       "seeded",
		Status:       status,
		RequestDate:  day(start),
	}
	assert.NoError(t, f.leaves.Create(context.Background(), &l))
	return l
}

func remainingDays(t *testing.T, f *serviceFixture, e employee.Employee) int {
	t.Helper()
	current, err := f.repo.FindByID(context.Background(), e.ID.String())
	assert.NoError(t, err)
	return current.RemainingDays
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := setupService(t)

		resp, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Family event",
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, resp.Days)
		assert.Equal(t, string(leave.StatusPending), resp.Status)
		assert.Equal(t, f.jean.FullName, resp.EmployeeName)
		assert.Equal(t, 15, resp.ProjectedRemaining)
		assert.Len(t, f.notifier.submitted, 1)
		assert.Equal(t, resp.ID, f.notifier.submitted[0].RequestID)

		// Creation never touches the balance.
		assert.Equal(t, 18, remainingDays(t, f, f.jean))
	})

	t.Run("single day request spans one day", func(t *testing.T) {
		f := setupService(t)

		resp, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "personal",
			StartDate: "2024-06-10",
			EndDate:   "2024-06-10",
			Reason:    "Appointment",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Days)
	})

	t.Run("over budget is allowed and flagged", func(t *testing.T) {
		f := setupService(t)

		resp, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "2026-07-01",
			EndDate:   "2026-07-20",
			Reason:    "Long trip",
		})

		assert.NoError(t, err)
		assert.Equal(t, 20, resp.Days)
		assert.Equal(t, -2, resp.ProjectedRemaining)
		assert.Equal(t, string(leave.StatusPending), resp.Status)
	})

	t.Run("end before start", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "2026-03-05",
			EndDate:   "2026-03-01",
			Reason:    "Backwards",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
		assert.Empty(t, f.notifier.submitted)
	})

	t.Run("blank reason", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "   ",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmptyReason)
	})

	t.Run("bad date format", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "03/01/2026",
			EndDate:   "2026-03-03",
			Reason:    "Wrong format",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Create(ctx, f.jean.ID.String(), leave.CreateLeaveRequest{
			Type:      "sabbatical",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Unknown",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidCategory)
	})

	t.Run("unknown actor", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Create(ctx, uuid.New().String(), leave.CreateLeaveRequest{
			Type:      "vacation",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Ghost",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})
}

func TestLeaveService_ListMine(t *testing.T) {
	ctx := context.Background()
	f := setupService(t)

	f.seedRequest(t, f.jean, "2024-06-10", "2024-06-10", 1, leave.StatusApproved)
	f.seedRequest(t, f.marie, "2024-06-18", "2024-06-19", 2, leave.StatusApproved)
	latest := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

	mine, err := f.service.ListMine(ctx, f.jean.ID.String())

	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	// Newest first, only jean's.
	assert.Equal(t, latest.ID.String(), mine[0].ID)
	for _, l := range mine {
		assert.Equal(t, f.jean.ID.String(), l.EmployeeID)
	}
}

func TestLeaveService_ListActionable(t *testing.T) {
	ctx := context.Background()

	t.Run("manager sees only direct reports", func(t *testing.T) {
		f := setupService(t)
		report := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)
		f.seedRequest(t, f.anna, "2024-07-01", "2024-07-02", 2, leave.StatusPending)
		f.seedRequest(t, f.marie, "2024-06-18", "2024-06-19", 2, leave.StatusApproved)

		actionable, err := f.service.ListActionable(ctx, f.manager.ID.String())

		assert.NoError(t, err)
		assert.Len(t, actionable, 1)
		assert.Equal(t, report.ID.String(), actionable[0].ID)
	})

	t.Run("employee sees nothing", func(t *testing.T) {
		f := setupService(t)
		f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		actionable, err := f.service.ListActionable(ctx, f.marie.ID.String())

		assert.NoError(t, err)
		assert.Empty(t, actionable)
	})

	t.Run("director scopes over the whole chain", func(t *testing.T) {
		f := setupService(t)
		f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)
		f.seedRequest(t, f.manager, "2024-08-01", "2024-08-02", 2, leave.StatusPending)
		f.seedRequest(t, f.anna, "2024-07-01", "2024-07-02", 2, leave.StatusPending)

		actionable, err := f.service.ListActionable(ctx, f.director.ID.String())

		assert.NoError(t, err)
		assert.Len(t, actionable, 2)
	})
}

func TestLeaveService_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("approve debits the balance", func(t *testing.T) {
		f := setupService(t)
		req := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		resp, err := f.service.Approve(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{Comments: "Enjoy"})

		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusApproved), resp.Status)
		assert.NotNil(t, resp.ReviewedBy)
		assert.Equal(t, f.manager.FullName, *resp.ReviewedBy)
		assert.NotNil(t, resp.ReviewDate)
		assert.NotNil(t, resp.Comments)
		assert.Equal(t, "Enjoy", *resp.Comments)

		assert.Equal(t, 7, remainingDays(t, f, f.jean))
		assert.Len(t, f.notifier.decided, 1)
		assert.Equal(t, string(leave.StatusApproved), f.notifier.decided[0].Status)
	})

	t.Run("reject keeps the balance", func(t *testing.T) {
		f := setupService(t)
		req := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		resp, err := f.service.Reject(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{Comments: "Busy period"})

		assert.NoError(t, err)
		assert.Equal(t, string(leave.StatusRejected), resp.Status)
		assert.Equal(t, 18, remainingDays(t, f, f.jean))
	})

	t.Run("second decision fails with already decided", func(t *testing.T) {
		f := setupService(t)
		req := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		_, err := f.service.Approve(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})
		assert.NoError(t, err)

		_, err = f.service.Approve(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)

		_, err = f.service.Reject(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})
		assert.ErrorIs(t, err, leaveerrors.ErrAlreadyDecided)

		// Debited exactly once.
		assert.Equal(t, 7, remainingDays(t, f, f.jean))
	})

	t.Run("insufficient balance blocks approval", func(t *testing.T) {
		f := setupService(t)

		short, err := f.repo.FindByID(ctx, f.marie.ID.String())
		assert.NoError(t, err)
		short.RemainingDays = 2
		assert.NoError(t, f.repo.Update(ctx, short))

		req := f.seedRequest(t, f.marie, "2024-09-01", "2024-09-05", 5, leave.StatusPending)

		_, err = f.service.Approve(ctx, f.manager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)
		assert.Equal(t, 2, remainingDays(t, f, f.marie))

		// The request is still pending and can be rejected.
		current, err := f.leaves.FindByID(ctx, req.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, current.Status)
	})

	t.Run("employee role is forbidden", func(t *testing.T) {
		f := setupService(t)
		req := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		_, err := f.service.Approve(ctx, f.marie.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrForbidden)
	})

	t.Run("unrelated manager is forbidden", func(t *testing.T) {
		f := setupService(t)
		req := f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)

		_, err := f.service.Approve(ctx, f.otherManager.ID.String(), req.ID.String(), leave.DecideLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrForbidden)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Approve(ctx, f.manager.ID.String(), uuid.New().String(), leave.DecideLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})

	t.Run("malformed request id", func(t *testing.T) {
		f := setupService(t)

		_, err := f.service.Approve(ctx, f.manager.ID.String(), "not-a-uuid", leave.DecideLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)
	})
}

func TestLeaveService_DashboardStats(t *testing.T) {
	ctx := context.Background()
	f := setupService(t)

	f.seedRequest(t, f.jean, "2024-06-10", "2024-06-10", 1, leave.StatusApproved)
	f.seedRequest(t, f.jean, "2024-05-01", "2024-05-02", 2, leave.StatusRejected)
	f.seedRequest(t, f.jean, "2024-07-15", "2024-07-25", 11, leave.StatusPending)
	f.seedRequest(t, f.marie, "2024-06-18", "2024-06-19", 2, leave.StatusApproved)

	stats, err := f.service.DashboardStats(ctx, f.jean.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, leave.DashboardStats{
		TotalRequests:    3,
		PendingRequests:  1,
		ApprovedRequests: 1,
		RejectedRequests: 1,
		RemainingDays:    18,
	}, stats)
}
