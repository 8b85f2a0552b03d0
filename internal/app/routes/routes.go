package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sesa/portal/internal/app/controllers"
	"github.com/sesa/portal/internal/app/models/dto"
	"github.com/sesa/portal/internal/middleware"
	"github.com/sesa/portal/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	resourceController *controllers.ResourceController,
	articleController *controllers.ArticleController,
	interactionController *controllers.InteractionController,
	profileController *controllers.ProfileController,
	adminController *controllers.AdminController,
	chatController *controllers.ChatController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public browsing routes ---
	// A valid token personalizes the response (likedByMe and download
	// attribution) but is never required here.
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		departments := public.Group("/departments")
		{
			departments.GET("", departmentController.GetAllDepartments)
			departments.GET("/:id", departmentController.GetDepartment)
		}

		resources := public.Group("/resources")
		{
			resources.GET("", resourceController.ListResources)
			resources.GET("/:id", resourceController.GetResource)
			resources.POST("/:id/download", resourceController.DownloadResource)
		}

		articles := public.Group("/articles")
		{
			articles.GET("", articleController.ListArticles)
			articles.GET("/:id", articleController.GetArticle)
			articles.GET("/:id/comments", interactionController.GetComments)
		}
	}

	// --- Authenticated member routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		me := authenticated.Group("/me")
		{
			me.GET("/profile", profileController.GetMyProfile)
			me.PUT("/profile", profileController.UpdateMyProfile)
			me.GET("/bookmarks", interactionController.GetBookmarks)
			me.GET("/downloads", interactionController.GetDownloads)
		}

		authenticated.GET("/members", profileController.GetMembers)

		authenticated.POST("/articles/:id/like", interactionController.ToggleLike)
		authenticated.POST("/articles/:id/comments", interactionController.AddComment)
		authenticated.DELETE("/comments/:id", interactionController.DeleteComment)
		authenticated.POST("/resources/:id/bookmark", interactionController.ToggleBookmark)

		chat := authenticated.Group("/departments/:id/chat")
		{
			chat.GET("/ws", wsHandler.HandleConnection)
			chat.GET("/messages", chatController.GetHistory)
		}
	}

	// --- Admin back-office routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
	{
		admin.GET("/stats", adminController.GetStats)

		admin.GET("/users", adminController.ListUsers)
		admin.POST("/users/:id/roles", adminController.GrantRole)
		admin.DELETE("/users/:id/roles/:role", adminController.RevokeRole)
		admin.PUT("/users/:id/active", adminController.SetUserActive)

		admin.POST("/departments", departmentController.CreateDepartment)
		admin.PUT("/departments/:id", departmentController.UpdateDepartment)
		admin.DELETE("/departments/:id", departmentController.DeleteDepartment)

		admin.POST("/resources", resourceController.CreateResource)
		admin.PUT("/resources/:id", resourceController.UpdateResource)
		admin.PUT("/resources/:id/file", resourceController.ReplaceResourceFile)
		admin.DELETE("/resources/:id", resourceController.DeleteResource)

		admin.GET("/articles", articleController.ListAllArticles)
		admin.GET("/articles/:id", articleController.GetArticleDraft)
		admin.POST("/articles", articleController.CreateArticle)
		admin.PUT("/articles/:id", articleController.UpdateArticle)
		admin.DELETE("/articles/:id", articleController.DeleteArticle)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
