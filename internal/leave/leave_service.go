package leave

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/events"
	leaveerrors "github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave/errors"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/notify"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	StatsCacheKeyPrefix = "dashboard:stats:"
	statsCacheTTL       = 10 * time.Minute
)

func StatsCacheKey(employeeID string) string {
	return StatsCacheKeyPrefix + employeeID
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (CreateLeaveResponse, error)
	ListMine(ctx context.Context, actorID string) ([]LeaveResponse, error)
	ListActionable(ctx context.Context, actorID string) ([]LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	DashboardStats(ctx context.Context, actorID string) (DashboardStats, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	employees employee.Repository
	notifier  notify.Notifier
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

// NewService builds the leave lifecycle service. db may be nil when the
// repositories are in-memory; operations then run without a transaction,
// which is safe because the memory store cannot fail a write after
// validation has passed.
func NewService(
	db *gorm.DB,
	repo Repository,
	employees employee.Repository,
	notifier notify.Notifier,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if notifier == nil {
		notifier = notify.NewLogNotifier(l)
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		notifier:  notifier,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (CreateLeaveResponse, error) {
	s.logger.Debug("create leave request",
		zap.String("actor_id", actorID),
		zap.String("type", req.Type),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	category := Category(req.Type)
	if !category.Valid() {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidCategory
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return CreateLeaveResponse{}, err
	}
	if endDate.Before(startDate) {
		return CreateLeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if strings.TrimSpace(req.Reason) == "" {
		return CreateLeaveResponse{}, leaveerrors.ErrEmptyReason
	}

	actor, err := s.employees.FindByID(ctx, actorID)
	if err != nil {
		return CreateLeaveResponse{}, mapEmployeeError(err)
	}

	days := InclusiveDaySpan(startDate, endDate)
	projected := ProjectedRemaining(*actor, days)
	if projected < 0 {
		// Over-budget requests are allowed at submission and flagged to the
		// caller; only approval hard-blocks.
		s.logger.Warn("projected balance negative",
			zap.String("employee_id", actorID),
			zap.Int("days", days),
			zap.Int("remaining", actor.RemainingDays),
		)
	}

	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   actor.ID,
		EmployeeName: actor.FullName,
		Category:     category,
		StartDate:    startDate,
		EndDate:      endDate,
		Days:         days,
		Reason:       req.Reason,
		Status:       StatusPending,
		RequestDate:  today(),
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.Error(err))
		return CreateLeaveResponse{}, err
	}

	s.invalidateStats(ctx, actor.ID.String())
	s.notifier.RequestSubmitted(ctx, events.LeaveRequestSubmittedEvent{
		EventType:    "leave.request.submitted",
		RequestID:    l.ID.String(),
		EmployeeID:   actor.ID.String(),
		EmployeeName: actor.FullName,
		Days:         days,
		OccurredAt:   time.Now().UTC(),
	})

	s.logger.Info("create leave success",
		zap.String("request_id", l.ID.String()),
		zap.String("employee_id", actorID),
		zap.Int("days", days),
	)
	return CreateLeaveResponse{
		LeaveResponse:      mapToResponse(*l),
		ProjectedRemaining: projected,
	}, nil
}

func (s *service) ListMine(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	requests, err := s.repo.FindAllByEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListActionable(ctx context.Context, actorID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaveerrors.ErrInvalidActorID
	}
	actor, err := s.employees.FindByID(ctx, actorID)
	if err != nil {
		return nil, mapEmployeeError(err)
	}

	pending, err := s.repo.FindAllPending(ctx)
	if err != nil {
		return nil, err
	}

	var visible []LeaveRequest
	for _, l := range pending {
		if CanDecide(ctx, s.employees, *actor, l) {
			visible = append(visible, l)
		}
	}
	return mapToListResponse(visible), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusApproved, req.Comments)
}

func (s *service) Reject(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	return s.decide(ctx, actorID, id, StatusRejected, req.Comments)
}

// decide is the single transition path: pending -> approved|rejected. The
// precondition checks run in a fixed order (not found, forbidden, already
// decided, insufficient balance) and nothing is written until all pass, so a
// failure never leaves partial state.
func (s *service) decide(ctx context.Context, actorID, id string, target Status, comments string) (LeaveResponse, error) {
	s.logger.Debug("decide leave request",
		zap.String("request_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", string(target)),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	var (
		updated *LeaveRequest
		ownerID string
	)
	err := s.inTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		employees := s.employees.WithTx(tx)

		l, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}

		actor, err := employees.FindByID(ctx, actorID)
		if err != nil {
			return mapEmployeeError(err)
		}

		if !DecidesFor(ctx, employees, *actor, l.EmployeeID) {
			s.logger.Warn("decide leave forbidden",
				zap.String("request_id", id),
				zap.String("actor_id", actorID),
			)
			return leaveerrors.ErrForbidden
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrAlreadyDecided
		}

		if target == StatusApproved {
			owner, err := employees.FindByID(ctx, l.EmployeeID.String())
			if err != nil {
				return mapEmployeeError(err)
			}
			if l.Days > owner.RemainingDays {
				s.logger.Warn("decide leave insufficient balance",
					zap.String("request_id", id),
					zap.Int("days", l.Days),
					zap.Int("remaining", owner.RemainingDays),
				)
				return leaveerrors.ErrInsufficientBalance
			}
			debited := ApplyApproval(*owner, *l)
			if err := employees.Update(ctx, &debited); err != nil {
				return err
			}
		}

		reviewer := actor.FullName
		reviewedAt := today()
		l.Status = target
		l.ReviewedBy = &reviewer
		l.ReviewedAt = &reviewedAt
		l.Comments = &comments

		if err := repo.Update(ctx, l); err != nil {
			return err
		}

		updated = l
		ownerID = l.EmployeeID.String()
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.invalidateStats(ctx, ownerID)
	s.notifier.RequestDecided(ctx, events.LeaveRequestDecidedEvent{
		EventType:    "leave.request.decided",
		RequestID:    updated.ID.String(),
		EmployeeID:   ownerID,
		EmployeeName: updated.EmployeeName,
		Status:       string(updated.Status),
		ReviewedBy:   *updated.ReviewedBy,
		OccurredAt:   time.Now().UTC(),
	})

	s.logger.Info("decide leave success",
		zap.String("request_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(*updated), nil
}

func (s *service) DashboardStats(ctx context.Context, actorID string) (DashboardStats, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return DashboardStats{}, leaveerrors.ErrInvalidActorID
	}

	cacheKey := StatsCacheKey(actorID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var stats DashboardStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return stats, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		actor, err := s.employees.FindByID(ctx, actorID)
		if err != nil {
			return nil, mapEmployeeError(err)
		}
		requests, err := s.repo.FindAllByEmployee(ctx, actorID)
		if err != nil {
			return nil, err
		}

		stats := DashboardStats{
			TotalRequests: len(requests),
			RemainingDays: actor.RemainingDays,
		}
		for _, l := range requests {
			switch l.Status {
			case StatusPending:
				stats.PendingRequests++
			case StatusApproved:
				stats.ApprovedRequests++
			case StatusRejected:
				stats.RejectedRequests++
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(stats); err == nil {
				s.rdb.Set(ctx, cacheKey, payload, statsCacheTTL)
			}
		}
		return stats, nil
	})
	if err != nil {
		return DashboardStats{}, err
	}
	return v.(DashboardStats), nil
}

func (s *service) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

func (s *service) invalidateStats(ctx context.Context, employeeID string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, StatsCacheKey(employeeID))
	}
}

func mapEmployeeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrEmployeeNotFound
	}
	return err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}
