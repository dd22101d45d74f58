package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ikapo/CBoard-API/config"
	"github.com/ikapo/CBoard-API/controllers"
	"github.com/ikapo/CBoard-API/middleware"
	"github.com/ikapo/CBoard-API/models"
	"github.com/ikapo/CBoard-API/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(store *models.Store, images *utils.ImageStore) *gin.Engine {
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

	// Access logging goes to its own rolling file, separate from the app log
	accessLogger, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(accessLogger))
		r.Use(utils.RecoveryWithZap(accessLogger))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded images are served straight from the flat image directory
	r.Static("/img", images.Dir())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	postController := controllers.NewPostController(store, images)
	commentController := controllers.NewCommentController(store, images)

	write := r.Group("")
	write.Use(middleware.RateLimitMiddleware())
	write.POST("/newpost", postController.NewPost)
	write.POST("/newcomment", commentController.NewComment)

	r.GET("/board/:num", postController.GetBoard)
	r.GET("/post/:post_id", postController.GetPost)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
