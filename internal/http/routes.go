package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"daily-tasks/internal/http/handlers"
	"daily-tasks/internal/http/middleware"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Health    *handlers.HealthHandler
	Tasks     *handlers.TaskHandler
	Recurring *handlers.RecurringHandler
	Scheduler *handlers.SchedulerHandler
	Points    *handlers.PointsHandler
	Memos     *handlers.MemoHandler
}

// NewRouter builds the gin engine with recovery and access logging.
func NewRouter(logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.GinZapMiddleware(logger.Named("http")))
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", h.Health.CheckHealth)

	api := r.Group("/api")
	{
		tasks := api.Group("/tasks")
		tasks.GET("", h.Tasks.ListTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.GET("/daily", h.Tasks.ListDaily)
		tasks.POST("/generate-today", h.Tasks.GenerateToday)

		tasks.GET("/recurring", h.Recurring.List)
		tasks.POST("/recurring", h.Recurring.Create)
		tasks.GET("/recurring/:id", h.Recurring.Get)
		tasks.PUT("/recurring/:id", h.Recurring.Update)
		tasks.DELETE("/recurring/:id", h.Recurring.Delete)

		tasks.GET("/scheduler/status", h.Scheduler.Status)
		tasks.GET("/scheduler/runs", h.Scheduler.Runs)
		tasks.POST("/scheduler/execute", h.Scheduler.Execute)
		tasks.POST("/scheduler/start", h.Scheduler.Start)
		tasks.POST("/scheduler/stop", h.Scheduler.Stop)

		tasks.GET("/:id", h.Tasks.GetTask)
		tasks.PUT("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)

		points := api.Group("/points")
		points.GET("", h.Points.GetPoints)
		points.POST("", h.Points.AddPoints)
		points.GET("/history", h.Points.History)

		memos := api.Group("/memos")
		memos.GET("", h.Memos.List)
		memos.POST("", h.Memos.Create)
		memos.GET("/tags", h.Memos.Tags)
		memos.GET("/:id", h.Memos.Get)
		memos.PUT("/:id", h.Memos.Update)
		memos.DELETE("/:id", h.Memos.Delete)
	}
}
