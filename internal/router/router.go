package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"book-review-backend/internal/shared/middleware"
	"book-review-backend/internal/shared/response"
	"book-review-backend/pkg/container"
)

// Setup builds the HTTP engine with global middleware and every route.
func Setup(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.Metrics(),
	)

	router.GET("/", func(ctx *gin.Context) {
		response.Message(ctx, http.StatusOK, "Book Review API is running")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupBookRoutes(api, c)
		setupReviewRoutes(api, c)
	}

	return router
}

func setupBookRoutes(api *gin.RouterGroup, c *container.Container) {
	books := api.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.POST("", c.BookHandler.CreateBook)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
		books.GET("/:id/reviews", c.ReviewHandler.GetBookReviews)
	}
}

func setupReviewRoutes(api *gin.RouterGroup, c *container.Container) {
	reviews := api.Group("/reviews")
	{
		reviews.POST("", c.ReviewHandler.CreateReview)
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.PUT("/:id", c.ReviewHandler.UpdateReview)
		reviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}
