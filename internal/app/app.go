package app

import (
	"context"
	"os"
	"strings"

	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/notify"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildApp wires infrastructure and registers every module on the router.
//
// STORE_DRIVER selects the request store: "postgres" for a durable store,
// anything else (the default) for the in-memory session store seeded with
// the demo directory.
func BuildApp(router *gin.Engine) error {
	var (
		db           *gorm.DB
		leaveRepo    leave.Repository
		employeeRepo employee.Repository
	)

	switch os.Getenv("STORE_DRIVER") {
	case "postgres":
		gormDB, err := connection.ConnectGORMWithRetry(
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
			os.Getenv("DB_SSLMODE"),
			5,
		)
		if err != nil {
			return err
		}
		if err := gormDB.AutoMigrate(&employee.Employee{}, &leave.LeaveRequest{}); err != nil {
			return err
		}
		db = gormDB
		leaveRepo = leave.NewRepository(gormDB)
		employeeRepo = employee.NewRepository(gormDB)
		zap.L().Info("using postgres store")

	default:
		memLeaves := leave.NewMemoryRepository()
		memEmployees := employee.NewMemoryRepository()
		if err := SeedDemoData(context.Background(), memEmployees, memLeaves); err != nil {
			return err
		}
		leaveRepo = memLeaves
		employeeRepo = memEmployees
		zap.L().Info("using in-memory store with demo data")
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		rdb = client
	}

	var notifier notify.Notifier
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		notifier = notify.NewKafkaNotifier(strings.Split(brokers, ","))
		zap.L().Info("notifications published to kafka", zap.String("brokers", brokers))
	} else {
		notifier = notify.NewLogNotifier()
	}

	return registerModules(router, db, leaveRepo, employeeRepo, rdb, notifier)
}
