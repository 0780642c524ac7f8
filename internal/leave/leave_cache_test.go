package leave_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestDashboardStats_CacheHit(t *testing.T) {
	ctx := context.Background()
	dir := buildDirectory(t)
	rdb, mock := redismock.NewClientMock()

	// A cached payload is served as-is, repositories stay untouched.
	cached := leave.DashboardStats{
		TotalRequests:    5,
		PendingRequests:  2,
		ApprovedRequests: 2,
		RejectedRequests: 1,
		RemainingDays:    9,
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)
	mock.ExpectGet(leave.StatsCacheKey(dir.jean.ID.String())).SetVal(string(payload))

	svc := leave.NewService(nil, leave.NewMemoryRepository(), dir.repo, &fakeNotifier{}, rdb)

	stats, err := svc.DashboardStats(ctx, dir.jean.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, cached, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStats_CacheMissRecomputesAndStores(t *testing.T) {
	ctx := context.Background()
	dir := buildDirectory(t)
	rdb, mock := redismock.NewClientMock()

	leaves := leave.NewMemoryRepository()
	svc := leave.NewService(nil, leaves, dir.repo, &fakeNotifier{}, rdb)

	key := leave.StatsCacheKey(dir.jean.ID.String())
	expected := leave.DashboardStats{RemainingDays: 18}
	payload, err := json.Marshal(expected)
	assert.NoError(t, err)

	mock.ExpectGet(key).RedisNil()
	mock.ExpectSet(key, payload, 10*time.Minute).SetVal("OK")

	stats, err := svc.DashboardStats(ctx, dir.jean.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, expected, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardStats_InvalidatedOnCreate(t *testing.T) {
	ctx := context.Background()
	dir := buildDirectory(t)
	rdb, mock := redismock.NewClientMock()

	leaves := leave.NewMemoryRepository()
	svc := leave.NewService(nil, leaves, dir.repo, &fakeNotifier{}, rdb)

	mock.ExpectDel(leave.StatsCacheKey(dir.jean.ID.String())).SetVal(1)

	_, err := svc.Create(ctx, dir.jean.ID.String(), leave.CreateLeaveRequest{
		Type:      "vacation",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-03",
		Reason:    "Family event",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
