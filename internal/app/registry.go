package app

import (
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/auth"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/employee"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/leave"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/middleware"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/notify"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	leaveRepo leave.Repository,
	employeeRepo employee.Repository,
	rdb *redis.Client,
	notifier notify.Notifier,
) error {
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	leaveService := leave.NewService(db, leaveRepo, employeeRepo, notifier, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes ---
	router.Use(middleware.RequestID())

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
	}

	return nil
}
