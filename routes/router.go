package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modae/teamup/config"
	"github.com/modae/teamup/controllers"
	"github.com/modae/teamup/middleware"
	"github.com/modae/teamup/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Access log goes to its own rolling file so request noise stays out
	// of the application log.
	al, err := utils.NewRollingFileLogger(cfg.AccessLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.GinAccessLog(al))
		r.Use(utils.GinRecovery(al))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postingController := controllers.NewPostingController(db)
	participationController := controllers.NewParticipationController(db)
	commentController := controllers.NewCommentController(db)
	userController := controllers.NewUserController(db)
	adminController := controllers.NewAdminController(db)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	postings := api.Group("/postings")
	postings.GET("", postingController.List)
	postings.GET("/:postingId", postingController.Get)
	postings.POST("/search", postingController.Search)
	postings.POST("", middleware.AuthRequired(), postingController.Create)
	postings.PUT("/:postingId", middleware.AuthRequired(), postingController.Update)
	postings.DELETE("/:postingId", middleware.AuthRequired(), postingController.Delete)

	comments := api.Group("/postings/:postingId/comment")
	comments.GET("", commentController.List)
	comments.POST("", middleware.AuthRequired(), commentController.Create)
	comments.PUT("/:commentId", middleware.AuthRequired(), commentController.Update)
	comments.DELETE("/:commentId", middleware.AuthRequired(), commentController.Delete)

	participation := api.Group("/participation/:postingId")
	participation.Use(middleware.AuthRequired())
	participation.GET("", participationController.List)
	participation.POST("", participationController.Join)
	participation.DELETE("", participationController.Leave)
	participation.GET("/check", participationController.Check)
	participation.GET("/me", participationController.Me)
	participation.POST("/approve/:participationId", participationController.Approve)
	participation.DELETE("/user/:participationId", participationController.Reject)

	users := api.Group("/users")
	users.GET("/me", middleware.AuthRequired(), authController.Me)
	users.GET("/:userId", userController.Get)
	users.GET("/:userId/authored", userController.Authored)
	users.GET("/:userId/joined", userController.Joined)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	admin.GET("/users", adminController.ListUsers)
	admin.PUT("/users/:userId/role", adminController.UpdateRole)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
