package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanvir/noteshare/internal/app/controllers"
	"github.com/tanvir/noteshare/internal/middleware"
)

// RegisterRoutes mounts all API endpoints under /api/v1.
//
// Listing and single-note reads are public but run OptionalAuth so the
// personalized flags can be computed for logged-in callers. Everything that
// writes requires a valid token; catalog writes additionally require staff.
func RegisterRoutes(router *gin.Engine, ctrl *controllers.Controllers, authMw *middleware.AuthMiddleware) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Authentication
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrl.AuthController.Register)
		auth.POST("/login", ctrl.AuthController.Login)
		auth.POST("/refresh", ctrl.AuthController.RefreshToken)
	}

	// Notes
	notes := v1.Group("/notes")
	{
		notes.GET("", authMw.OptionalAuth(), ctrl.NoteController.GetAllNotes)
		notes.GET("/my", authMw.JWTAuth(), ctrl.NoteController.GetMyNotes)
		notes.GET("/:id", authMw.OptionalAuth(), ctrl.NoteController.GetNoteByID)

		notes.POST("", authMw.JWTAuth(), ctrl.NoteController.CreateNote)
		notes.PUT("/:id", authMw.JWTAuth(), ctrl.NoteController.UpdateNote)
		notes.DELETE("/:id", authMw.JWTAuth(), ctrl.NoteController.DeleteNote)

		notes.POST("/:id/download", authMw.JWTAuth(), ctrl.NoteController.DownloadNote)
		notes.POST("/:id/toggle-like", authMw.JWTAuth(), ctrl.NoteController.ToggleLike)
		notes.POST("/:id/toggle-bookmark", authMw.JWTAuth(), ctrl.NoteController.ToggleBookmark)
	}

	// Ratings
	ratings := v1.Group("/ratings")
	{
		ratings.GET("", ctrl.RatingController.GetRatings)
		ratings.GET("/:id", ctrl.RatingController.GetRating)
		ratings.POST("", authMw.JWTAuth(), ctrl.RatingController.CreateRating)
		ratings.PUT("/:id", authMw.JWTAuth(), ctrl.RatingController.UpdateRating)
		ratings.DELETE("/:id", authMw.JWTAuth(), ctrl.RatingController.DeleteRating)
	}

	// Comments
	comments := v1.Group("/comments")
	{
		comments.GET("", ctrl.CommentController.GetComments)
		comments.GET("/:id", ctrl.CommentController.GetComment)
		comments.POST("", authMw.JWTAuth(), ctrl.CommentController.CreateComment)
		comments.PUT("/:id", authMw.JWTAuth(), ctrl.CommentController.UpdateComment)
		comments.DELETE("/:id", authMw.JWTAuth(), ctrl.CommentController.DeleteComment)
	}

	// Catalog
	v1.GET("/faculties", ctrl.CatalogController.GetFaculties)
	v1.GET("/departments", ctrl.CatalogController.GetDepartments)
	v1.GET("/courses", ctrl.CatalogController.GetCourses)
	v1.GET("/categories", ctrl.CatalogController.GetCategories)
	v1.POST("/departments", authMw.JWTAuth(), authMw.StaffRequired(), ctrl.CatalogController.CreateDepartment)
	v1.POST("/courses", authMw.JWTAuth(), authMw.StaffRequired(), ctrl.CatalogController.CreateCourse)
}
