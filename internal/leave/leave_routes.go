package leave

import (
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/middleware"
	"github.com/Niriantsoa01/absence-tracker-intranet-flow/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.POST("", middleware.RBACAuthorize(rbacService, "leave", "create"), handler.Create)
		leaves.GET("/mine", middleware.RBACAuthorize(rbacService, "leave", "read"), handler.ListMine)
		leaves.GET("/actionable", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.ListActionable)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "leave", "decide"), handler.Reject)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware())
	{
		dashboard.GET("/stats", middleware.RBACAuthorize(rbacService, "dashboard", "read"), handler.Stats)
	}
}
