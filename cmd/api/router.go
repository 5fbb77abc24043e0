package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"library-backend/internal/shared"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/container"
)

// SetupRouter wires every HTTP route to its handler. Route groups mirror
// the role model: public, authenticated, and admin-only.
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// ========================================
	// GLOBAL MIDDLEWARE
	// ========================================
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	// Health check for load balancers and probes.
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		})
	})

	v1 := router.Group("/api/v1")

	setupAuthRoutes(v1, c)
	setupUserRoutes(v1, c)
	setupBookRoutes(v1, c)
	setupBorrowRoutes(v1, c)
	setupReservationRoutes(v1, c)
	setupEventRoutes(v1, c)
	setupSuggestionRoutes(v1, c)
	setupNotificationRoutes(v1, c)
	setupAdminRoutes(v1, c)

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/users/me")
	me.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		me.GET("", c.UserHandler.GetProfile)
		me.PUT("", c.UserHandler.UpdateProfile)
		me.PUT("/password", c.UserHandler.ChangePassword)
		me.GET("/summary", c.ReportingHandler.MySummary)
	}
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Catalog browsing is public.
	books := v1.Group("/books")
	{
		books.GET("", c.CatalogHandler.ListBooks)
		books.GET("/:id", c.CatalogHandler.GetBook)
	}
}

func setupBorrowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	borrows := v1.Group("/borrows")
	borrows.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		borrows.POST("", c.CirculationHandler.Borrow)
		borrows.GET("", c.CirculationHandler.ListMyBorrows)
	}

	fines := v1.Group("/fines")
	fines.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		fines.GET("", c.CirculationHandler.ListMyFines)
	}
}

func setupReservationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	reservations := v1.Group("/reservations")
	reservations.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		reservations.POST("", c.ReservationHandler.Create)
		reservations.GET("", c.ReservationHandler.ListMine)
		reservations.DELETE("/:id", c.ReservationHandler.Cancel)
	}
}

func setupEventRoutes(v1 *gin.RouterGroup, c *container.Container) {
	events := v1.Group("/events")
	{
		// Approved events are the public calendar.
		events.GET("", c.EventHandler.ListApproved)

		authed := events.Group("")
		authed.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
		{
			authed.POST("", middleware.RequireRoles(middleware.RoleTeacher), c.EventHandler.Create)
			authed.GET("/mine", middleware.RequireRoles(middleware.RoleTeacher), c.EventHandler.ListMine)
			authed.DELETE("/:id", c.EventHandler.Delete)
		}
	}
}

func setupSuggestionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	suggestions := v1.Group("/suggestions")
	suggestions.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	suggestions.Use(middleware.RequireRoles(middleware.RoleTeacher))
	{
		suggestions.POST("", c.SuggestionHandler.Create)
		suggestions.GET("", c.SuggestionHandler.ListMine)
	}
}

func setupNotificationRoutes(v1 *gin.RouterGroup, c *container.Container) {
	notifications := v1.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		notifications.GET("", c.NotificationHandler.List)
		notifications.GET("/unread-count", c.NotificationHandler.UnreadCount)
		notifications.PATCH("/:id/read", c.NotificationHandler.MarkRead)
		notifications.POST("/read-all", c.NotificationHandler.MarkAllRead)
	}
}

func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/dashboard", c.ReportingHandler.Dashboard)

		admin.GET("/users", c.UserHandler.ListUsers)
		admin.PATCH("/users/:id/role", c.UserHandler.UpdateUserRole)
		admin.PATCH("/users/:id/status", c.UserHandler.UpdateUserStatus)
		admin.DELETE("/users/:id", c.UserHandler.DeleteUser)

		admin.POST("/books", c.CatalogHandler.CreateBook)
		admin.PUT("/books/:id", c.CatalogHandler.UpdateBook)
		admin.DELETE("/books/:id", c.CatalogHandler.DeleteBook)
		admin.POST("/books/:id/cover", c.CatalogHandler.UploadCover)
		admin.POST("/books/:id/copies", c.CatalogHandler.AddCopy)
		admin.PATCH("/copies/:id/status", c.CatalogHandler.UpdateCopyStatus)
		admin.DELETE("/copies/:id", c.CatalogHandler.DeleteCopy)

		admin.GET("/borrows", c.CirculationHandler.ListAllBorrows)
		admin.POST("/borrows/:id/return", c.CirculationHandler.Return)
		admin.GET("/fines", c.CirculationHandler.ListAllFines)
		admin.POST("/fines/:id/pay", c.CirculationHandler.PayFine)

		admin.GET("/reservations", c.ReservationHandler.ListAll)

		admin.GET("/events", c.EventHandler.ListAll)
		admin.POST("/events/:id/approve", c.EventHandler.Approve)
		admin.POST("/events/:id/reject", c.EventHandler.Reject)

		admin.GET("/suggestions", c.SuggestionHandler.ListAll)
		admin.POST("/suggestions/:id/approve", c.SuggestionHandler.Approve)
		admin.POST("/suggestions/:id/reject", c.SuggestionHandler.Reject)

		// Manual trigger for the overdue sweep, same task the scheduler
		// enqueues nightly.
		admin.POST("/jobs/overdue-scan", triggerOverdueScan(c))
	}
}

func triggerOverdueScan(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		payload, err := json.Marshal(shared.OverdueScanPayload{
			BatchSize: c.Config.Jobs.OverdueScanBatchSize,
		})
		if err != nil {
			response.InternalServerError(ctx, "failed to build task payload")
			return
		}

		task := asynq.NewTask(shared.TypeOverdueScan, payload)
		info, err := c.AsynqClient.EnqueueContext(
			ctx.Request.Context(),
			task,
			asynq.Queue(shared.QueueCirculation),
			asynq.MaxRetry(3),
			asynq.Timeout(10*time.Minute),
		)
		if err != nil {
			response.InternalServerError(ctx, "failed to enqueue overdue scan")
			return
		}

		response.Success(ctx, http.StatusAccepted, gin.H{
			"task_id": info.ID,
			"queue":   info.Queue,
		})
	}
}
