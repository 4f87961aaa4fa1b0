package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/phonedex/phonedex-backend/internal/api/handlers"
	"github.com/phonedex/phonedex-backend/internal/api/middleware"
	"github.com/phonedex/phonedex-backend/internal/config"
	"github.com/phonedex/phonedex-backend/internal/repository"
	"github.com/phonedex/phonedex-backend/internal/services"
	"github.com/phonedex/phonedex-backend/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Repositories
	phoneRepo := repository.NewPhoneRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	phoneService := services.NewPhoneService(phoneRepo)
	reviewService := services.NewReviewService(phoneRepo)
	discussionService := services.NewDiscussionService(discussionRepo)
	userService := services.NewUserService(userRepo)
	imageService := services.NewImageService(cfg.AWSRegion, cfg.AWSBucket, cfg.AWSAccessKey, cfg.AWSSecretKey)

	// Handlers
	phoneHandler := handlers.NewPhoneHandler(phoneService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	discussionHandler := handlers.NewDiscussionHandler(discussionService)
	userHandler := handlers.NewUserHandler(userService)
	imageHandler := handlers.NewImageHandler(imageService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	api := router.Group("/api")
	auth := middleware.AuthMiddleware(cfg)

	// Phone catalog (public reads)
	phones := api.Group("/phones")
	{
		phones.GET("", phoneHandler.List)
		phones.GET("/:phone_id", phoneHandler.Get)

		// Reviews live under their phone
		phones.GET("/:phone_id/reviews", reviewHandler.ListForPhone)
		phones.GET("/:phone_id/reviews/summary", reviewHandler.Summary)
		phones.POST("/:phone_id/reviews", auth, reviewHandler.Create)
		phones.PUT("/:phone_id/reviews/:review_id/vote", auth, reviewHandler.Vote)
		phones.DELETE("/:phone_id/reviews/:review_id", auth, reviewHandler.Delete)
	}

	// Discussions
	discussions := api.Group("/discussions")
	{
		discussions.GET("", discussionHandler.List)
		discussions.POST("", auth, discussionHandler.Create)
		discussions.GET("/:id", discussionHandler.Get)
		discussions.PUT("/:id/vote", auth, discussionHandler.Vote)
		discussions.DELETE("/:id", auth, discussionHandler.Delete)
		discussions.GET("/:id/replies", discussionHandler.Replies)
		discussions.POST("/:id/replies", auth, discussionHandler.AddReply)
	}

	replies := api.Group("/replies")
	{
		replies.PUT("/:replyId/vote", auth, discussionHandler.VoteReply)
		replies.DELETE("/:replyId", auth, discussionHandler.DeleteReply)
	}

	// Account profile
	users := api.Group("/users", auth)
	{
		users.POST("/sync", userHandler.Sync)
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
	}

	// Image uploads
	api.POST("/images", auth, imageHandler.Upload)

	// Admin catalog management
	admin := api.Group("/admin", auth, middleware.AdminOnly())
	{
		admin.POST("/phones", phoneHandler.Create)
		admin.PUT("/phones/:phone_id", phoneHandler.Update)
		admin.DELETE("/phones/:phone_id", phoneHandler.Delete)
		admin.GET("/stats", phoneHandler.Stats)
	}

	logger.Info("Routes initialized successfully")
}
