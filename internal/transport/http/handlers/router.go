package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mlukyanov/task-api/internal/auth/jwt"
	"github.com/mlukyanov/task-api/internal/auth/model"
	"github.com/mlukyanov/task-api/internal/auth/service"
	"github.com/mlukyanov/task-api/internal/ratelimit"
	"github.com/mlukyanov/task-api/internal/task"
	"github.com/mlukyanov/task-api/internal/transport/http/middleware"
)

type RouterDeps struct {
	Logger      *zap.Logger
	Tokens      jwt.TokenManager
	AuthService service.Service
	TaskService task.Service
	AuthLimiter *ratelimit.Limiter
	APILimiter  *ratelimit.Limiter

	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.ErrorHandler(deps.Logger))

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	authH := NewAuthHandler(deps.AuthService)
	taskH := NewTaskHandler(deps.TaskService)

	authLimit := middleware.RateLimit(deps.AuthLimiter)
	apiLimit := middleware.RateLimit(deps.APILimiter)
	authenticate := middleware.Authenticate(deps.Tokens)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimit, authH.Register)
		auth.POST("/login", authLimit, authH.Login)
		auth.POST("/refresh", authLimit, authH.Refresh)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", authenticate, authH.Me)
	}

	tasks := router.Group("/api/tasks", authenticate, apiLimit)
	{
		tasks.GET("", taskH.List)
		tasks.POST("", taskH.Create)
		tasks.GET("/:id", taskH.Get)
		tasks.PATCH("/:id", taskH.Update)
		tasks.DELETE("/:id", taskH.Delete)
	}

	admin := router.Group("/api/admin", authenticate, middleware.Authorize(model.RoleAdmin))
	{
		admin.GET("/users", authH.ListUsers)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound,
			middleware.NewErrorResponse("NOT_FOUND", "Endpoint not found", nil))
	})

	return router
}
